package dispatch

import (
	"context"

	"github.com/rohmanhakim/fuzzhammer/internal/calibrate"
	"github.com/rohmanhakim/fuzzhammer/internal/httpengine"
)

// calibrateBaselines issues probeCount synthetic requests against
// urlTemplate (with every loaded keyword replaced by a fresh, unlikely-to-
// exist token) and infers per-metric suppression baselines from the
// responses. A probe whose transport fails is simply skipped — calibration
// degrades to fewer samples rather than aborting the scan.
func calibrateBaselines(ctx context.Context, client httpengine.Client, urlTemplate, method string, keywords []string, probeCount int) calibrate.Baselines {
	probes := make([]calibrate.Probe, 0, probeCount)

	for i := 0; i < probeCount; i++ {
		token, err := calibrate.ProbeToken()
		if err != nil {
			continue
		}

		values := make(map[string]string, len(keywords))
		for _, kw := range keywords {
			values[kw] = token
		}
		url := substitute(urlTemplate, values)

		resp, cerr := client.Send(ctx, httpengine.Request{URL: url, Method: method})
		if cerr != nil {
			continue
		}

		bodyLength, lineCount, wordCount := deriveMetrics(resp.Body, false)
		probes = append(probes, calibrate.Probe{
			StatusCode: resp.StatusCode,
			BodyLength: bodyLength,
			LineCount:  lineCount,
			WordCount:  wordCount,
		})
	}

	return calibrate.Infer(probes)
}
