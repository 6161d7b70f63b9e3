// Package locales embeds the translation catalogs loaded by pkg/i18n.
package locales

import "embed"

//go:embed *.yaml
var FS embed.FS
