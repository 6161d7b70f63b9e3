// Package requestid tags every HTTP request with a correlation id that is
// echoed in the X-Request-ID response header and injected into log records.
package requestid
