package main

import (
	"time"

	"github.com/dmitrymomot/soar/modules/dashboard"
	"github.com/dmitrymomot/soar/modules/settings"
	"github.com/dmitrymomot/soar/pkg/config"
	"github.com/dmitrymomot/soar/pkg/cookie"
	"github.com/dmitrymomot/soar/pkg/file"
	"github.com/dmitrymomot/soar/pkg/httpserver"
	"github.com/dmitrymomot/soar/svc/auth"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	Name             string        `env:"APP_NAME" envDefault:"soar"`
	DefaultLanguage  string        `env:"APP_DEFAULT_LANGUAGE" envDefault:"en"`
	ReadinessTimeout time.Duration `env:"APP_READINESS_TIMEOUT" envDefault:"3s"`
	// ProxyHeaders are trusted for the client address, e.g. X-Forwarded-For.
	ProxyHeaders     []string      `env:"APP_PROXY_HEADERS"`
}

// configs groups every section read at startup. Database sections are
// loaded later, only for the settings store that needs them.
type configs struct {
	App       appConfig
	HTTP      httpserver.Config
	Cookie    cookie.Config
	Auth      auth.Config
	Dashboard dashboard.Config
	Settings  settings.Config
	File      file.Config
}

func loadConfigs() (configs, error) {
	var c configs
	for _, load := range []func() error{
		func() error { return config.Load(&c.App) },
		func() error { return config.Load(&c.HTTP) },
		func() error { return config.Load(&c.Cookie) },
		func() error { return config.Load(&c.Auth) },
		func() error { return config.Load(&c.Dashboard) },
		func() error { return config.Load(&c.Settings) },
		func() error { return config.Load(&c.File) },
	} {
		if err := load(); err != nil {
			return configs{}, err
		}
	}
	return c, nil
}
