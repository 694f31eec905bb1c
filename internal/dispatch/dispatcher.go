// Package dispatch implements the Dispatcher: the bounded-concurrency
// execution engine that takes a materialized set of PayloadAssignments,
// substitutes them into a request template, fans requests out across a
// worker pool gated by the RateLimiter, classifies each response, and
// streams accepted Results to the ResultSink. It also owns extension
// expansion, inter-request delay shaping, and feeding the recursion
// manager.
package dispatch

import (
	"context"
	"math/rand"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/rohmanhakim/fuzzhammer/internal/calibrate"
	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/rohmanhakim/fuzzhammer/internal/config"
	"github.com/rohmanhakim/fuzzhammer/internal/httpengine"
	"github.com/rohmanhakim/fuzzhammer/internal/payload"
	"github.com/rohmanhakim/fuzzhammer/internal/result"
	"github.com/rohmanhakim/fuzzhammer/internal/telemetry"
)

// Dispatcher drives one scan: every assignment the PayloadGenerator yields,
// across every recursion level, until the generator (and, if recursion is
// enabled, the recursion queue) is exhausted or a StopCondition fires.
type Dispatcher struct {
	cfg  config.RunConfig
	deps Deps
	pool pond.Pool

	rng       *rand.Rand
	baselines calibrate.Baselines
}

// New constructs a Dispatcher for one RunConfig. The worker pool is sized
// to cfg.Threads; the RateLimiter applies the same bound again plus the
// independent RPS throttle.
func New(cfg config.RunConfig, deps Deps) *Dispatcher {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	d := &Dispatcher{
		cfg:  cfg,
		deps: deps,
		pool: pond.NewPool(threads),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if deps.Stats != nil {
		deps.Stats.BindPool(d.pool)
	}
	return d
}

// Run executes the full scan: optional calibration, the base-depth pass,
// then (if recursion is enabled) every descent the scan's own responses
// feed back into the recursion manager's queue, in FIFO order.
func (d *Dispatcher) Run(ctx context.Context) {
	defer d.deps.Sink.Close()
	defer d.pool.StopAndWait()

	if d.cfg.Calibrate {
		d.runCalibration(ctx)
	}

	d.runLevel(ctx, d.cfg.URLTemplate, 0)

	if d.deps.Recurse == nil {
		return
	}
	for {
		if d.deps.Stop.Aborted() {
			return
		}
		descent, ok := d.deps.Recurse.Next()
		if !ok {
			return
		}
		d.runLevel(ctx, descent.URL(), descent.Depth())
	}
}

func (d *Dispatcher) runCalibration(ctx context.Context) {
	keywords := make([]string, len(d.cfg.Wordlists))
	for i, w := range d.cfg.Wordlists {
		keywords[i] = w.Keyword
	}
	d.baselines = calibrateBaselines(ctx, d.deps.Client, d.cfg.URLTemplate, d.cfg.Method, keywords, d.cfg.CalibrateProbes)
}

// runLevel materializes the full assignment set for one URL template (the
// base scan, or one recursion descent) and dispatches each concurrently,
// bounded by the worker pool, until the set is exhausted.
func (d *Dispatcher) runLevel(ctx context.Context, urlTemplate string, depth int) {
	gen := payload.New(d.cfg.Wordlists, d.cfg.Mode)
	total := gen.Total()
	assignments := make([]payload.Assignment, 0, total)
	for {
		a, ok := gen.Next()
		if !ok {
			break
		}
		assignments = append(assignments, a)
	}

	group := d.pool.NewGroup()
	for _, a := range assignments {
		if d.deps.Stop.Aborted() {
			break
		}
		a := a
		group.Submit(func() {
			d.dispatchOne(ctx, urlTemplate, a, depth)
		})
	}
	group.Wait()
}

// dispatchOne runs the full per-assignment pipeline: acquire a permit,
// drop the assignment if the scan has been aborted meanwhile, apply the
// configured delay, encode and substitute, build every extension variant's
// concrete URL, and send each in turn.
func (d *Dispatcher) dispatchOne(ctx context.Context, urlTemplate string, a payload.Assignment, depth int) {
	guard, err := d.deps.Limiter.Acquire(ctx)
	if err != nil {
		return
	}
	defer guard.Release()

	if d.deps.Stop.Aborted() {
		return
	}

	d.applyDelay()

	values := encodeAssignment(a, d.cfg.Encoders)
	baseURL := substitute(urlTemplate, values)
	headers := substituteHeaders(d.cfg.Headers, values)
	cookie := substitute(d.cfg.Cookie, values)
	body := substitute(d.cfg.Body, values)

	for _, url := range expandExtensions(baseURL, d.cfg.Extensions) {
		d.sendOne(ctx, a, url, headers, cookie, body, depth)
	}
}

// applyDelay sleeps for the configured inter-request delay, a uniformly
// sampled duration in [Min, Max] (or exactly Min when they're equal).
func (d *Dispatcher) applyDelay() {
	delay := d.cfg.Delay
	if delay.Min <= 0 && delay.Max <= 0 {
		return
	}
	if delay.Max <= delay.Min {
		time.Sleep(delay.Min)
		return
	}
	span := delay.Max - delay.Min
	time.Sleep(delay.Min + time.Duration(d.rng.Int63n(int64(span))))
}

// sendOne issues one concrete request, classifies the response, and emits
// a Result if it's accepted. HttpClient failures are swallowed here: no
// Result, counters advance, the error counter increments, StopConditions
// observes the outcome.
func (d *Dispatcher) sendOne(ctx context.Context, a payload.Assignment, url string, headers map[string]string, cookie, body string, depth int) {
	req := httpengine.Request{
		URL:        url,
		Method:     d.cfg.Method,
		Headers:    headers,
		Cookie:     cookie,
		Body:       body,
		IgnoreBody: d.cfg.IgnoreBody,
	}

	resp, cerr := d.deps.Client.Send(ctx, req)
	d.deps.Stats.IncCompleted()

	if cerr != nil {
		d.deps.Stats.IncErrored()
		d.deps.Stop.Observe(0, true)
		d.record(telemetry.RequestEvent{URL: url, Cause: telemetry.CauseConnect, At: time.Now()})
		return
	}

	d.deps.Stop.Observe(resp.StatusCode, false)

	bodyLength, lineCount, wordCount := deriveMetrics(resp.Body, d.cfg.IgnoreBody)
	elapsedMS := resp.Elapsed.Milliseconds()

	if d.baselines.Suppressed(bodyLength, lineCount, wordCount) {
		d.record(telemetry.RequestEvent{URL: url, StatusCode: resp.StatusCode, Suppressed: true, ElapsedMS: elapsedMS, At: time.Now()})
		return
	}

	classified := classifyResponse(resp.StatusCode, resp.Body, bodyLength, lineCount, wordCount, elapsedMS)
	if !d.deps.Classifier.Classify(classified) {
		d.record(telemetry.RequestEvent{URL: url, StatusCode: resp.StatusCode, ElapsedMS: elapsedMS, At: time.Now()})
		return
	}

	d.deps.Stats.IncMatched()
	r := result.New(url, a, resp.StatusCode, bodyLength, lineCount, wordCount, elapsedMS, time.Now())
	d.deps.Sink.Write(r)
	d.record(telemetry.RequestEvent{URL: url, StatusCode: resp.StatusCode, Matched: true, ElapsedMS: elapsedMS, At: time.Now()})

	d.maybeRecurse(resp.StatusCode, resp.ContentType, url, depth)
}

// maybeRecurse submits the next descent when recursion is enabled, the
// response falls in the 2xx/3xx band, and its content-type suggests
// structured content. Dedup and depth bounding are the recursion manager's
// own job (Submit returns false silently for either case).
func (d *Dispatcher) maybeRecurse(statusCode int, contentType, acceptedURL string, depth int) {
	if d.deps.Recurse == nil {
		return
	}
	if !isRecursable(statusCode) || !looksStructured(contentType) {
		return
	}
	d.deps.Recurse.Submit(buildRecursionTemplate(acceptedURL), depth+1)
}

func (d *Dispatcher) record(e telemetry.RequestEvent) {
	if d.deps.Telemetry == nil {
		return
	}
	d.deps.Telemetry.Record(e)
}

// SetBaselines overrides the calibration baselines directly, bypassing
// runCalibration. Used by callers that calibrate ahead of time (or tests)
// instead of letting Run's cfg.Calibrate step own it.
func (d *Dispatcher) SetBaselines(b calibrate.Baselines) {
	d.baselines = b
}

func classifyResponse(statusCode int, body string, bodyLength, lineCount, wordCount int, elapsedMS int64) classify.Response {
	return classify.Response{
		StatusCode: statusCode,
		Body:       body,
		BodyLength: bodyLength,
		LineCount:  lineCount,
		WordCount:  wordCount,
		ElapsedMS:  elapsedMS,
	}
}
