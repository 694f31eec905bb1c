// Package config assembles the shared, immutable RunConfig every component
// of a scan reads from: wordlists, combination mode, concurrency/rate
// knobs, encoders, matcher/filter trees, and the calibration and stop
// condition toggles. Built once via Builder, then passed by reference with
// no further synchronization, per the engine's "shared immutable
// configuration" rule.
package config

import (
	"time"

	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/rohmanhakim/fuzzhammer/internal/encode"
	"github.com/rohmanhakim/fuzzhammer/internal/payload"
	"github.com/rohmanhakim/fuzzhammer/internal/stopcond"
)

// DelayRange is a fixed or randomized-in-range inter-request delay.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

// RunConfig is the fully validated, read-only configuration for one scan.
type RunConfig struct {
	URLTemplate string
	Method      string
	Headers     map[string]string
	Cookie      string
	Body        string

	Wordlists []payload.Wordlist
	Mode      payload.Mode

	Threads int
	Rate    float64
	Delay   DelayRange

	Extensions []string
	Encoders   map[string][]encode.Name

	Match  classify.Side
	Filter classify.Side

	IgnoreBody bool

	Recursion      bool
	RecursionDepth int

	Calibrate       bool
	CalibrateProbes int

	StopConditions stopcond.Config
}
