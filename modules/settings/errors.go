package settings

import "errors"

var (
	ErrNotFound   = errors.New("settings: not found")
	ErrLoad       = errors.New("settings: failed to load")
	ErrSave       = errors.New("settings: failed to save")
	ErrUpload     = errors.New("settings: failed to store avatar")
	ErrNoStorage  = errors.New("settings: avatar uploads are not configured")
	ErrUnknownKey = errors.New("settings: empty user key")
)
