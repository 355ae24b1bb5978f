// Package lib holds supporting code outside the request layers: the
// Asynq background jobs, the Resend email client and test fixtures.
package lib
