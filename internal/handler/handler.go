// Package handler is the HTTP layer of the vehicle API.
//
// Handlers bind path parameters and bodies through the validation package,
// call the vehicle service and write its envelope. Framework failures are
// returned as errors and rendered by the global error handler.
package handler
