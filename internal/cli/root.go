// Package cli wires the cobra command tree to the engine: flag binding,
// RunConfig assembly, and the runtime construction of every Dispatcher
// dependency (HttpClient, RateLimiter, StopConditions, Classifier, Sink,
// Recurse manager). It is the only layer that converts a ClassifiedError
// into a process exit code.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohmanhakim/fuzzhammer/internal/build"
	"github.com/rohmanhakim/fuzzhammer/internal/classify"
	"github.com/rohmanhakim/fuzzhammer/internal/config"
	"github.com/rohmanhakim/fuzzhammer/internal/dispatch"
	"github.com/rohmanhakim/fuzzhammer/internal/encode"
	"github.com/rohmanhakim/fuzzhammer/internal/httpengine"
	"github.com/rohmanhakim/fuzzhammer/internal/payload"
	"github.com/rohmanhakim/fuzzhammer/internal/ratelimit"
	"github.com/rohmanhakim/fuzzhammer/internal/recurse"
	"github.com/rohmanhakim/fuzzhammer/internal/result"
	"github.com/rohmanhakim/fuzzhammer/internal/stats"
	"github.com/rohmanhakim/fuzzhammer/internal/stopcond"
	"github.com/rohmanhakim/fuzzhammer/internal/telemetry"
	"github.com/rohmanhakim/fuzzhammer/internal/wordlist"
	"github.com/rohmanhakim/fuzzhammer/pkg/fileutil"
	"github.com/rohmanhakim/fuzzhammer/pkg/hashutil"
	"github.com/rohmanhakim/fuzzhammer/pkg/retry"
	"github.com/rohmanhakim/fuzzhammer/pkg/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "fuzzhammer",
	Short: "A concurrent HTTP fuzzer.",
	Long: `fuzzhammer substitutes wordlist values into a URL template, dispatches
the resulting requests under a bounded-concurrency, rate-limited worker
pool, classifies each response against a matcher/filter specification, and
streams accepted results as newline-delimited JSON.`,
	RunE:          runFuzz,
	Version:       build.FullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func runFuzz(cmd *cobra.Command, args []string) error {
	cfgs, err := buildConfigs()
	if err != nil {
		return err
	}

	retryParam := retry.NewRetryParam(
		100*time.Millisecond,
		50*time.Millisecond,
		time.Now().UnixNano(),
		maxAttempts,
		timeutil.NewBackoffParam(100*time.Millisecond, 2.0, 2*time.Second),
	)
	client := httpengine.NewClient(httpengine.Param{
		Timeout:            timeout,
		FollowRedirects:    followRedirects,
		InsecureSkipVerify: insecureSkipVerify,
		ProxyURL:           proxyURL,
	}, retryParam)

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()
	encoder := json.NewEncoder(out)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	for _, cfg := range cfgs {
		runScan(ctx, cfg, client, encoder)
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}

// runScan executes one full scan of a single URL template, streaming its
// accepted results through encoder and printing a summary line to stderr.
func runScan(ctx context.Context, cfg config.RunConfig, client httpengine.Client, encoder *json.Encoder) {
	var recurseMgr *recurse.Manager
	if cfg.Recursion {
		recurseMgr = recurse.NewManager(cfg.RecursionDepth, hashutil.HashAlgoSHA256)
	}

	sink := result.NewChannelSink(256)
	deps := dispatch.Deps{
		Client:     client,
		Classifier: classify.New(cfg.Match, cfg.Filter),
		Limiter:    ratelimit.New(cfg.Threads, cfg.Rate),
		Stats:      stats.New(int64(payload.New(cfg.Wordlists, cfg.Mode).Total())),
		Stop:       stopcond.New(cfg.StopConditions),
		Sink:       sink,
		Telemetry:  telemetry.NewRecorder(),
		Recurse:    recurseMgr,
	}

	d := dispatch.New(cfg, deps)

	done := make(chan struct{})
	started := time.Now()
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	for r := range sink.Results() {
		if err := encoder.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "fuzzhammer: failed to encode result: %v\n", err)
		}
	}
	<-done

	summary := telemetry.Summarize(deps.Telemetry.Drain(), time.Since(started), deps.Stop.Aborted())
	fmt.Fprintf(os.Stderr, "url=%s completed=%d matched=%d errored=%d suppressed=%d aborted=%t duration=%s\n",
		cfg.URLTemplate, summary.TotalCompleted, summary.TotalMatched, summary.TotalErrored,
		summary.TotalSuppressed, summary.Aborted, summary.Duration)
}

// openOutput resolves where the result stream goes: the file named by
// --output (its parent directory created if missing) or stdout.
func openOutput() (io.Writer, func(), error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}
	if dir := filepath.Dir(output); dir != "." {
		if cerr := fileutil.EnsureDir(dir); cerr != nil {
			return nil, nil, fmt.Errorf("output: %w", cerr)
		}
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// buildConfigs assembles one RunConfig per scan: a single one from a JSON
// config file or the --url flag, or one per line of --url-file.
func buildConfigs() ([]config.RunConfig, error) {
	if cfgFile != "" {
		cfg, err := config.LoadFile(cfgFile)
		if err != nil {
			return nil, err
		}
		return []config.RunConfig{cfg}, nil
	}

	templates := []string{urlTemplate}
	if urlFile != "" {
		loaded, err := loadURLFile(urlFile)
		if err != nil {
			return nil, err
		}
		templates = loaded
	}

	cfgs := make([]config.RunConfig, 0, len(templates))
	for _, tpl := range templates {
		cfg, err := buildConfig(tpl)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// loadURLFile reads URL templates one per line, skipping blank lines and
// '#'-prefixed comments.
func loadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("url-file: %w", err)
	}
	defer f.Close()

	var templates []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		templates = append(templates, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("url-file: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("url-file %s contains no URL templates", path)
	}
	return templates, nil
}

// buildConfig assembles one RunConfig from the bound CLI flags for a single
// URL template.
func buildConfig(urlTpl string) (config.RunConfig, error) {
	match, err := classify.ParseSide(classify.SideSpec{
		Mode:   matchMode,
		Status: matchStatus,
		Lines:  matchLines,
		Size:   matchSize,
		Words:  matchWords,
		Regex:  matchRegex,
		Time:   matchTime,
	})
	if err != nil {
		return config.RunConfig{}, fmt.Errorf("match: %w", err)
	}
	filter, err := classify.ParseSide(classify.SideSpec{
		Mode:   filterMode,
		Status: filterStatus,
		Lines:  filterLines,
		Size:   filterSize,
		Words:  filterWords,
		Regex:  filterRegex,
		Time:   filterTime,
	})
	if err != nil {
		return config.RunConfig{}, fmt.Errorf("filter: %w", err)
	}

	b := config.NewBuilder().
		URL(urlTpl).
		Method(method).
		Cookie(cookie).
		Body(body).
		Rate(rate).
		Delay(delay).
		Extensions(extensions).
		Mode(payload.ParseMode(mode)).
		Match(match).
		Filter(filter).
		IgnoreBody(ignoreBody).
		Recursion(recursion, recursionDepth).
		Calibrate(calibrate, calibrateProbes).
		StopConditions(stopcond.Config{
			StopOnError:         stopOnError,
			StopOn403Saturation: stopOn403Saturation,
		})

	if threads > 0 {
		b = b.Threads(threads)
	}
	for k, v := range parseHeaders(headers) {
		b = b.Header(k, v)
	}
	for _, spec := range wordlists {
		w, cerr := wordlist.LoadSpec(spec)
		if cerr != nil {
			return config.RunConfig{}, fmt.Errorf("wordlist %q: %w", spec, cerr)
		}
		b = b.AddWordlist(w)
	}
	for _, spec := range encoders {
		keyword, names := encode.ParseSpec(spec)
		b = b.Encoder(keyword, names)
	}

	cfg, verr := b.Build()
	if verr != nil {
		return config.RunConfig{}, verr
	}
	return cfg, nil
}

// parseHeaders splits each "Name: value" flag occurrence into a map entry.
func parseHeaders(raw []string) map[string]string {
	out := make(map[string]string, len(raw))
	for _, h := range raw {
		idx := strings.IndexByte(h, ':')
		if idx < 0 {
			continue
		}
		out[strings.TrimSpace(h[:idx])] = strings.TrimSpace(h[idx+1:])
	}
	return out
}
