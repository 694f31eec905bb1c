package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/fuzzhammer/internal/calibrate"
	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/rohmanhakim/fuzzhammer/internal/encode"
	"github.com/rohmanhakim/fuzzhammer/internal/payload"
	"github.com/rohmanhakim/fuzzhammer/internal/stopcond"
)

// Builder accumulates RunConfig fields fluently; Build validates the whole
// and returns a ValidationError naming the first field that fails, never a
// partially-built RunConfig.
type Builder struct {
	cfg RunConfig
}

// NewBuilder starts a Builder with the engine's defaults: GET, one thread,
// unlimited rate, clusterbomb mode.
func NewBuilder() *Builder {
	return &Builder{cfg: RunConfig{
		Method:          "GET",
		Threads:         1,
		Mode:            payload.Clusterbomb,
		CalibrateProbes: calibrate.DefaultProbeCount,
		Headers:         map[string]string{},
		Encoders:        map[string][]encode.Name{},
	}}
}

func (b *Builder) URL(template string) *Builder {
	b.cfg.URLTemplate = template
	return b
}

func (b *Builder) Method(method string) *Builder {
	if method != "" {
		b.cfg.Method = method
	}
	return b
}

func (b *Builder) Header(key, value string) *Builder {
	b.cfg.Headers[key] = value
	return b
}

func (b *Builder) Cookie(cookie string) *Builder {
	b.cfg.Cookie = cookie
	return b
}

func (b *Builder) Body(body string) *Builder {
	b.cfg.Body = body
	return b
}

func (b *Builder) AddWordlist(w payload.Wordlist) *Builder {
	b.cfg.Wordlists = append(b.cfg.Wordlists, w)
	return b
}

func (b *Builder) Mode(mode payload.Mode) *Builder {
	b.cfg.Mode = mode
	return b
}

func (b *Builder) Threads(n int) *Builder {
	b.cfg.Threads = n
	return b
}

func (b *Builder) Rate(rps float64) *Builder {
	b.cfg.Rate = rps
	return b
}

// Delay parses "<float>" or "<float>-<float>" seconds into a DelayRange.
func (b *Builder) Delay(spec string) *Builder {
	b.cfg.Delay = parseDelay(spec)
	return b
}

func parseDelay(spec string) DelayRange {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DelayRange{}
	}
	if idx := strings.IndexByte(spec, '-'); idx > 0 {
		lo, errLo := strconv.ParseFloat(spec[:idx], 64)
		hi, errHi := strconv.ParseFloat(spec[idx+1:], 64)
		if errLo == nil && errHi == nil {
			return DelayRange{
				Min: time.Duration(lo * float64(time.Second)),
				Max: time.Duration(hi * float64(time.Second)),
			}
		}
		return DelayRange{}
	}
	v, err := strconv.ParseFloat(spec, 64)
	if err != nil {
		return DelayRange{}
	}
	d := time.Duration(v * float64(time.Second))
	return DelayRange{Min: d, Max: d}
}

func (b *Builder) Extensions(exts []string) *Builder {
	b.cfg.Extensions = exts
	return b
}

func (b *Builder) Encoder(keyword string, names []encode.Name) *Builder {
	b.cfg.Encoders[keyword] = names
	return b
}

func (b *Builder) Match(side classify.Side) *Builder {
	b.cfg.Match = side
	return b
}

func (b *Builder) Filter(side classify.Side) *Builder {
	b.cfg.Filter = side
	return b
}

func (b *Builder) IgnoreBody(v bool) *Builder {
	b.cfg.IgnoreBody = v
	return b
}

func (b *Builder) Recursion(enabled bool, depth int) *Builder {
	b.cfg.Recursion = enabled
	b.cfg.RecursionDepth = depth
	return b
}

func (b *Builder) Calibrate(enabled bool, probes int) *Builder {
	b.cfg.Calibrate = enabled
	if probes > 0 {
		b.cfg.CalibrateProbes = probes
	}
	return b
}

func (b *Builder) StopConditions(cfg stopcond.Config) *Builder {
	b.cfg.StopConditions = cfg
	return b
}

// Build validates the accumulated fields and returns the finished
// RunConfig. Validation failures are fatal ValidationErrors, consistent
// with the engine's exit-code-1 startup-failure contract.
func (b *Builder) Build() (RunConfig, *ValidationError) {
	cfg := b.cfg

	if strings.TrimSpace(cfg.URLTemplate) == "" {
		return RunConfig{}, &ValidationError{Field: "url", Message: "URL template is required"}
	}
	if len(cfg.Wordlists) == 0 {
		return RunConfig{}, &ValidationError{Field: "wordlist", Message: "at least one wordlist is required"}
	}
	if !containsAnyKeyword(cfg.URLTemplate, cfg.Wordlists) {
		return RunConfig{}, &ValidationError{Field: "url", Message: "URL template does not contain any loaded wordlist keyword"}
	}
	if cfg.Threads < 1 {
		return RunConfig{}, &ValidationError{Field: "threads", Message: "threads must be >= 1"}
	}
	if cfg.Rate < 0 {
		return RunConfig{}, &ValidationError{Field: "rate", Message: "rate must be >= 0"}
	}
	if cfg.RecursionDepth < 0 {
		return RunConfig{}, &ValidationError{Field: "recursion_depth", Message: "recursion depth must be >= 0"}
	}

	return cfg, nil
}

func containsAnyKeyword(urlTemplate string, wordlists []payload.Wordlist) bool {
	for _, w := range wordlists {
		if strings.Contains(urlTemplate, w.Keyword) {
			return true
		}
	}
	return false
}
