// Command soar serves the Soar financial dashboard: the mock login, the
// protected dashboard and settings pages, and their JSON APIs.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/soar/pkg/clientip"
	"github.com/dmitrymomot/soar/pkg/environment"
	"github.com/dmitrymomot/soar/pkg/httpserver"
	"github.com/dmitrymomot/soar/pkg/i18n"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.New().Error("soar stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfigs()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(environment.Parse(cfg.App.Env), cfg.App.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
			i18n.LoggerExtractor(),
		),
	)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close(context.WithoutCancel(ctx))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	log.Info("starting server", logger.Component("http"), logger.Event("start"))
	if err := srv.Run(ctx, a.routes()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
