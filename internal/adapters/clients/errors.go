// Package clients provides the instrumented HTTP client the console tool
// uses to reach a running journal service.
package clients

import "errors"

// Transport-level failures. The acl package translates them into domain
// errors before they reach application code.
var (
	// ErrCircuitOpen is returned without contacting the server while the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
