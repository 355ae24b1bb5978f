// Package errs defines the error shapes returned to API clients.
//
// HTTPError carries a machine-friendly code, a message and the HTTP status;
// FieldError lists per-field validation problems. The global error handler
// renders both as JSON.
package errs
