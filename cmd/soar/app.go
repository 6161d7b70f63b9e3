package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/locales"
	"github.com/dmitrymomot/soar/modules/account"
	"github.com/dmitrymomot/soar/modules/dashboard"
	"github.com/dmitrymomot/soar/modules/settings"
	"github.com/dmitrymomot/soar/pkg/config"
	"github.com/dmitrymomot/soar/pkg/cookie"
	"github.com/dmitrymomot/soar/pkg/environment"
	"github.com/dmitrymomot/soar/pkg/file"
	"github.com/dmitrymomot/soar/pkg/httpserver"
	"github.com/dmitrymomot/soar/pkg/i18n"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/mongo"
	"github.com/dmitrymomot/soar/pkg/pg"
	"github.com/dmitrymomot/soar/pkg/redis"
	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
	"github.com/dmitrymomot/soar/views"
)

var ErrCookieSecretRequired = errors.New("COOKIE_SECRETS is required outside development")

// app holds the wired modules and everything that must be released on exit.
type app struct {
	cfg        configs
	env        environment.Environment
	log        *slog.Logger
	translator *i18n.Translator
	cookies    *cookie.Manager
	files      file.Storage

	errorHandler handler.ErrorHandler
	account      *account.Module
	dashboard    *dashboard.Module
	settings     *settings.Module

	checks  []httpserver.Check
	closers []func(context.Context)
}

func newApp(ctx context.Context, cfg configs, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, env: environment.Parse(cfg.App.Env), log: log}

	tr, err := i18n.New(locales.FS,
		i18n.WithDefaultLanguage(cfg.App.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	a.translator = tr

	if a.cookies, err = a.cookieManager(); err != nil {
		return nil, err
	}

	a.errorHandler = handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
		Translate: func(r *http.Request, key string, args ...string) string {
			return tr.Tc(r.Context(), key, args...)
		},
	})

	authSvc := auth.NewService(auth.NewMemoryStore(),
		auth.WithConfig(cfg.Auth),
		auth.WithEnvironment(a.env),
		auth.WithTranslator(tr),
		auth.WithLogger(log),
	)
	a.account = account.NewModule(authSvc, a.cookies,
		account.Views{LoginPage: views.LoginPage, LoginForm: views.LoginForm},
		a.errorHandler,
		account.WithLogger(log),
		account.WithTranslator(tr),
		account.WithNavigationDelay(cfg.Auth.NavigationDelay),
	)

	a.dashboard = dashboard.NewModule(
		dashboard.NewService(dashboard.WithConfig(cfg.Dashboard), dashboard.WithLogger(log)),
		dashboard.Views{Page: views.DashboardPage},
		a.errorHandler,
	)

	if a.files, err = file.New(ctx, cfg.File); err != nil {
		return nil, fmt.Errorf("init file storage: %w", err)
	}

	store, err := a.settingsStore(ctx)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	settingsSvc := settings.NewService(store,
		settings.WithConfig(cfg.Settings),
		settings.WithLogger(log),
		settings.WithFileStorage(a.files),
		settings.WithLanguages(tr.Languages()...),
	)
	a.settings = settings.NewModule(settingsSvc,
		settings.Views{Page: views.SettingsPage},
		a.errorHandler,
		settings.WithTranslator(tr),
		settings.WithNotifier(func(w http.ResponseWriter, r *http.Request) toast.Notifier {
			return toast.NewMulti(
				[]toast.Deliverer{toast.NewFlash(a.cookies.Jar(w, r)), toast.NewLogger(log)},
				toast.WithLogger(log),
			)
		}),
	)

	return a, nil
}

// cookieManager falls back to a random secret in development so the app
// starts without setup. Sessions do not survive a restart in that mode.
func (a *app) cookieManager() (*cookie.Manager, error) {
	cfg := a.cfg.Cookie
	if a.env.IsProduction() {
		cfg.Secure = true
	}
	if len(cfg.SecretList()) == 0 {
		if a.env != environment.Development {
			return nil, ErrCookieSecretRequired
		}
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate cookie secret: %w", err)
		}
		cfg.Secrets = hex.EncodeToString(buf)
		a.log.Warn("COOKIE_SECRETS is empty, using a random secret",
			logger.Component("cookie"),
		)
	}
	m, err := cookie.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init cookie manager: %w", err)
	}
	return m, nil
}

// settingsStore connects the backend named by SETTINGS_STORE and registers
// its readiness check.
func (a *app) settingsStore(ctx context.Context) (settings.Store, error) {
	switch a.cfg.Settings.Store {
	case "", settings.StoreMemory:
		return settings.NewMemoryStore(), nil

	case settings.StorePostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) { pool.Close() })
		if err := settings.Migrate(ctx, pool, cfg, a.log); err != nil {
			return nil, fmt.Errorf("migrate settings: %w", err)
		}
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
		return settings.NewPostgresStore(pool), nil

	case settings.StoreRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) { _ = client.Close() })
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		return settings.NewRedisStore(client, cfg.KeyPrefix, 0), nil

	case settings.StoreMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := mongo.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		a.closers = append(a.closers, func(ctx context.Context) { _ = client.Disconnect(ctx) })
		a.checks = append(a.checks, httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)})
		return settings.NewMongoStore(client.Database(cfg.Database)), nil

	default:
		return nil, fmt.Errorf("unknown settings store %q", a.cfg.Settings.Store)
	}
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}
