package config

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/fuzzhammer/pkg/failure"
)

// Sentinel errors for the JSON config-file path, wrapped with %w at the
// call site so callers can still errors.Is against the category.
var (
	ErrFileDoesNotExist  = errors.New("config file does not exist")
	ErrReadConfigFail    = errors.New("failed to read config file")
	ErrConfigParsingFail = errors.New("failed to parse config file")
)

// ValidationError is a fatal, startup-time construction error: the engine
// halts before issuing any request, and the CLI maps it to exit code 1.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Severity() failure.Severity { return failure.SeverityFatal }
