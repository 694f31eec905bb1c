package dispatch

import (
	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/rohmanhakim/fuzzhammer/internal/httpengine"
	"github.com/rohmanhakim/fuzzhammer/internal/ratelimit"
	"github.com/rohmanhakim/fuzzhammer/internal/recurse"
	"github.com/rohmanhakim/fuzzhammer/internal/result"
	"github.com/rohmanhakim/fuzzhammer/internal/stats"
	"github.com/rohmanhakim/fuzzhammer/internal/stopcond"
	"github.com/rohmanhakim/fuzzhammer/internal/telemetry"
)

// Deps wires the Dispatcher to the rest of the engine's components. Every
// field is shared, read-only (or independently synchronized) state per the
// "shared immutable configuration" rule; the Dispatcher never mutates Client,
// Classifier, or Limiter, only the handles that already own their own
// synchronization (Stats, Stop, Recurse).
type Deps struct {
	Client     httpengine.Client
	Classifier *classify.Classifier
	Limiter    *ratelimit.Limiter
	Stats      *stats.Statistics
	Stop       *stopcond.Observer
	Sink       result.Sink
	Telemetry  *telemetry.Recorder

	// Recurse is nil when recursion is disabled.
	Recurse *recurse.Manager
}
