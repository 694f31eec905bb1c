package httpengine

import (
	"fmt"

	"github.com/rohmanhakim/fuzzhammer/pkg/failure"
)

// SendError wraps a transport failure. Transient network conditions
// (timeout, connection refused, EOF mid-read) are recoverable and go
// through pkg/retry; a malformed request after substitution is fatal and
// aborts that one assignment without retry.
type SendError struct {
	URL       string
	Cause     error
	Retryable bool
}

func (e *SendError) Error() string {
	return fmt.Sprintf("httpengine: send %s: %v", e.URL, e.Cause)
}

func (e *SendError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *SendError) IsRetryable() bool { return e.Retryable }

func (e *SendError) Unwrap() error { return e.Cause }
