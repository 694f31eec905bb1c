package result

import "github.com/rohmanhakim/fuzzhammer/pkg/failure"

// SinkClosedError is returned when Write is called after Close.
type SinkClosedError struct{}

func (e *SinkClosedError) Error() string {
	return "result: sink is closed"
}

func (e *SinkClosedError) Severity() failure.Severity {
	return failure.SeverityFatal
}
