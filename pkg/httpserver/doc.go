// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown, plus liveness and readiness handlers for orchestrators.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil { ... }
package httpserver
