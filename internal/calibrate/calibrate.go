// Package calibrate implements the Calibrator: a dynamic 404-like baseline
// discovery step run before the main scan, and the suppression check the
// Dispatcher applies to every subsequent response.
//
// Baselines are modal values rather than mean/stddev spreads: a single
// body shape repeated across most probes is the fingerprint of a templated
// not-found page, and an exact-match test against it is cheaper and harder
// to fool than a statistical deviation test.
package calibrate

const (
	// DefaultProbeCount is K, the number of synthetic probes issued when
	// none is configured.
	DefaultProbeCount = 5

	minSamplesForBaseline = 3
	modalThreshold        = 0.60
)

// Probe is one synthetic calibration sample drawn from the target.
type Probe struct {
	StatusCode int
	BodyLength int
	LineCount  int
	WordCount  int
}

// Baseline records the modal value of a single metric, present only when
// that value occurred in at least modalThreshold of the collected samples.
type Baseline struct {
	Value    int
	Fraction float64
}

// Baselines holds the per-metric suppression fingerprints a Calibrator
// inferred. A zero-value Baselines suppresses nothing.
type Baselines struct {
	Size  *Baseline
	Lines *Baseline
	Words *Baseline
}

// Infer computes modal baselines from probes. Fewer than minSamplesForBaseline
// probes makes Infer a no-op (returns an empty Baselines).
func Infer(probes []Probe) Baselines {
	if len(probes) < minSamplesForBaseline {
		return Baselines{}
	}

	sizes := make([]int, len(probes))
	lines := make([]int, len(probes))
	words := make([]int, len(probes))
	for i, p := range probes {
		sizes[i] = p.BodyLength
		lines[i] = p.LineCount
		words[i] = p.WordCount
	}

	return Baselines{
		Size:  modalBaseline(sizes),
		Lines: modalBaseline(lines),
		Words: modalBaseline(words),
	}
}

func modalBaseline(values []int) *Baseline {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	modeValue, modeCount := 0, 0
	for v, c := range counts {
		if c > modeCount || (c == modeCount && v < modeValue) {
			modeValue, modeCount = v, c
		}
	}

	fraction := float64(modeCount) / float64(len(values))
	if fraction < modalThreshold {
		return nil
	}
	return &Baseline{Value: modeValue, Fraction: fraction}
}

// Suppressed reports whether size, lines, or words matches a recorded
// baseline, regardless of status code. An unset baseline never suppresses.
func (b Baselines) Suppressed(size, lines, words int) bool {
	if b.Size != nil && b.Size.Value == size {
		return true
	}
	if b.Lines != nil && b.Lines.Value == lines {
		return true
	}
	if b.Words != nil && b.Words.Value == words {
		return true
	}
	return false
}
