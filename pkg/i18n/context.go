package i18n

import (
	"context"
	"log/slog"
)

type localeContextKey struct{}

func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the request locale, or DefaultLanguage when unset.
func GetLocale(ctx context.Context) string {
	if ctx == nil {
		return DefaultLanguage
	}
	if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
		return locale
	}
	return DefaultLanguage
}

// LoggerExtractor adds "locale" to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		locale, _ := ctx.Value(localeContextKey{}).(string)
		if locale == "" {
			return slog.Attr{}, false
		}
		return slog.String("locale", locale), true
	}
}
