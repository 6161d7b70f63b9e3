// Package clientip resolves the address of the client behind a request and
// keeps it in the context for logging.
//
// Forwarding headers are ignored unless WithProxyHeaders names them; only
// enable it behind a proxy that overwrites those headers.
//
//	r.Use(clientip.Middleware(clientip.WithProxyHeaders("X-Forwarded-For")))
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
