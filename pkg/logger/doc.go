// Package logger builds *slog.Logger instances with functional options.
//
// WithEnvironment selects format and level per deployment environment, and
// WithContextExtractors injects request-scoped values (request id, locale,
// environment) into every record logged with a context:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "soar"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "login succeeded", logger.Component("auth"), logger.UserEmail(email))
//
// The attribute helpers keep key names consistent across packages.
package logger
