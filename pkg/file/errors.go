package file

import "errors"

var (
	ErrNilFileHeader      = errors.New("file: header is nil")
	ErrInvalidPath        = errors.New("file: invalid path")
	ErrFileNotFound       = errors.New("file: not found")
	ErrFileTooLarge       = errors.New("file: too large")
	ErrMIMETypeNotAllowed = errors.New("file: type not allowed")
	ErrOpenFile           = errors.New("file: failed to open")
	ErrReadFile           = errors.New("file: failed to read")
	ErrWriteFile          = errors.New("file: failed to write")
	ErrDeleteFile         = errors.New("file: failed to delete")
	ErrInvalidConfig      = errors.New("file: invalid configuration")
	ErrLoadAWSConfig      = errors.New("file: failed to load aws config")
	ErrAccessDenied       = errors.New("file: access denied")
	ErrUnavailable        = errors.New("file: storage temporarily unavailable")
)
