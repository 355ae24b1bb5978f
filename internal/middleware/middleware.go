// Package middleware holds the echo middleware shared by every route:
// request ids, the request-scoped logger, request logging, CORS, rate
// limiting, panic recovery, New Relic tracing and the global error handler.
package middleware
