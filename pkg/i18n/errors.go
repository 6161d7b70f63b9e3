package i18n

import "errors"

var (
	ErrLoadCatalog       = errors.New("i18n.load_catalog")
	ErrNoDefaultLanguage = errors.New("i18n.no_default_language")
)
