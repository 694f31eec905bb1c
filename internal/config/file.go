package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/rohmanhakim/fuzzhammer/internal/encode"
	"github.com/rohmanhakim/fuzzhammer/internal/payload"
	"github.com/rohmanhakim/fuzzhammer/internal/stopcond"
	"github.com/rohmanhakim/fuzzhammer/internal/wordlist"
)

// configDTO is the on-disk JSON shape of a RunConfig. It covers the
// RunConfig fields only; the CLI's url-file, output, timeout, redirect,
// TLS, proxy and max-attempts flags have no file field. Every field is
// optional; an absent field keeps the Builder's default.
type configDTO struct {
	URL        string            `json:"url"`
	Method     string            `json:"method,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Cookie     string            `json:"cookie,omitempty"`
	Body       string            `json:"body,omitempty"`
	Wordlists  []string          `json:"wordlists,omitempty"`
	Mode       string            `json:"mode,omitempty"`
	Threads    int               `json:"threads,omitempty"`
	Rate       float64           `json:"rate,omitempty"`
	Delay      string            `json:"delay,omitempty"`
	Extensions []string          `json:"extensions,omitempty"`
	// Encoders maps a loaded keyword to its comma-separated encoder chain,
	// e.g. {"FUZZ": "urlencode,base64"}.
	Encoders map[string]string `json:"encoders,omitempty"`

	Match  classify.SideSpec `json:"match,omitempty"`
	Filter classify.SideSpec `json:"filter,omitempty"`

	IgnoreBody bool `json:"ignore_body,omitempty"`

	Recursion      bool `json:"recursion,omitempty"`
	RecursionDepth int  `json:"recursion_depth,omitempty"`

	Calibrate       bool `json:"calibrate,omitempty"`
	CalibrateProbes int  `json:"calibrate_probes,omitempty"`

	StopOnError         bool `json:"stop_on_error,omitempty"`
	StopOn403Saturation bool `json:"stop_on_403_saturation,omitempty"`
}

// newConfigFromDTO builds a RunConfig from a parsed configDTO, reusing the
// same Builder + Build() validation the CLI-flags path goes through — a
// config file is just another way of populating the Builder, not a
// parallel validation path.
func newConfigFromDTO(dto configDTO) (RunConfig, error) {
	b := NewBuilder().
		URL(dto.URL).
		Method(dto.Method).
		Cookie(dto.Cookie).
		Body(dto.Body).
		Rate(dto.Rate).
		Delay(dto.Delay).
		Extensions(dto.Extensions).
		IgnoreBody(dto.IgnoreBody).
		Recursion(dto.Recursion, dto.RecursionDepth).
		Calibrate(dto.Calibrate, dto.CalibrateProbes).
		StopConditions(stopcond.Config{
			StopOnError:         dto.StopOnError,
			StopOn403Saturation: dto.StopOn403Saturation,
		})

	// Threads keeps the Builder's default of 1 when the file omits it;
	// Threads(0) would otherwise fail Build()'s >=1 validation.
	if dto.Threads > 0 {
		b = b.Threads(dto.Threads)
	}
	if dto.Mode != "" {
		b = b.Mode(payload.ParseMode(dto.Mode))
	}
	for k, v := range dto.Headers {
		b = b.Header(k, v)
	}
	for _, spec := range dto.Wordlists {
		w, cerr := wordlist.LoadSpec(spec)
		if cerr != nil {
			return RunConfig{}, fmt.Errorf("wordlist %q: %w", spec, cerr)
		}
		b = b.AddWordlist(w)
	}
	for keyword, chain := range dto.Encoders {
		b = b.Encoder(keyword, parseEncoderChain(chain))
	}

	match, err := classify.ParseSide(dto.Match)
	if err != nil {
		return RunConfig{}, fmt.Errorf("match: %w", err)
	}
	filter, err := classify.ParseSide(dto.Filter)
	if err != nil {
		return RunConfig{}, fmt.Errorf("filter: %w", err)
	}
	b = b.Match(match).Filter(filter)

	cfg, verr := b.Build()
	if verr != nil {
		return RunConfig{}, verr
	}
	return cfg, nil
}

// LoadFile reads and validates a RunConfig from a JSON file at path.
func LoadFile(path string) (RunConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return RunConfig{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	var dto configDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return RunConfig{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(dto)
}

func parseEncoderChain(chain string) []encode.Name {
	var names []encode.Name
	for _, part := range strings.Split(chain, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		names = append(names, encode.Name(part))
	}
	return names
}
