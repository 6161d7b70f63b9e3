// Package i18n loads YAML translation catalogs and negotiates the request
// language with golang.org/x/text/language.
//
//	tr, err := i18n.New(locales.FS)
//	router.Use(i18n.Middleware(tr))
//	msg := tr.Tc(ctx, "auth.invalid_credentials", "email", "soar@soar.com")
package i18n
