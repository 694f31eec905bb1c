package cli

import "time"

// Package-level flag vars bound in init() on rootCmd's persistent flag set.
var (
	cfgFile string
	output  string

	urlTemplate string
	urlFile     string
	method      string
	headers     []string
	cookie      string
	body        string

	wordlists  []string
	mode       string
	extensions []string
	encoders   []string

	threads int
	rate    float64
	delay   string

	matchStatus string
	matchLines  string
	matchSize   string
	matchWords  string
	matchRegex  []string
	matchTime   string
	matchMode   string

	filterStatus string
	filterLines  string
	filterSize   string
	filterWords  string
	filterRegex  []string
	filterTime   string
	filterMode   string

	ignoreBody bool

	recursion      bool
	recursionDepth int

	calibrate       bool
	calibrateProbes int

	stopOnError         bool
	stopOn403Saturation bool

	timeout            time.Duration
	followRedirects    bool
	insecureSkipVerify bool
	proxyURL           string

	maxAttempts int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (JSON)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "", "write results to this file instead of stdout")

	rootCmd.PersistentFlags().StringVar(&urlTemplate, "url", "", "request URL template containing a keyword placeholder")
	rootCmd.PersistentFlags().StringVar(&urlFile, "url-file", "", "file of URL templates, one per line, scanned in order")
	rootCmd.PersistentFlags().StringVar(&method, "method", "GET", "HTTP method")
	rootCmd.PersistentFlags().StringArrayVar(&headers, "header", nil, "request header \"Name: value\" (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&cookie, "cookie", "", "Cookie header template")
	rootCmd.PersistentFlags().StringVar(&body, "body", "", "request body template")

	rootCmd.PersistentFlags().StringArrayVar(&wordlists, "wordlist", nil, "wordlist spec \"path[:KEYWORD]\" (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "clusterbomb", "combination mode: clusterbomb, pitchfork, sniper")
	rootCmd.PersistentFlags().StringArrayVar(&extensions, "extension", nil, "extension suffix to append to every URL (can be repeated)")
	rootCmd.PersistentFlags().StringArrayVar(&encoders, "encoder", nil, "\"KEYWORD:enc1,enc2\" encoder chain (can be repeated)")

	rootCmd.PersistentFlags().IntVar(&threads, "threads", 1, "maximum concurrent in-flight requests")
	rootCmd.PersistentFlags().Float64Var(&rate, "rate", 0, "maximum requests per second (0 for unlimited)")
	rootCmd.PersistentFlags().StringVar(&delay, "delay", "", "inter-request delay in seconds, fixed (\"0.5\") or ranged (\"0.1-0.5\")")

	rootCmd.PersistentFlags().StringVar(&matchStatus, "match-status", "", "match status codes/ranges, e.g. \"200,301-302\"")
	rootCmd.PersistentFlags().StringVar(&matchLines, "match-lines", "", "match line counts/ranges")
	rootCmd.PersistentFlags().StringVar(&matchSize, "match-size", "", "match body-length counts/ranges")
	rootCmd.PersistentFlags().StringVar(&matchWords, "match-words", "", "match word counts/ranges")
	rootCmd.PersistentFlags().StringArrayVar(&matchRegex, "match-regex", nil, "match body regex (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&matchTime, "match-time", "", "match response time, e.g. \">500\"")
	rootCmd.PersistentFlags().StringVar(&matchMode, "match-mode", "or", "combine mode across active match families: and, or")

	rootCmd.PersistentFlags().StringVar(&filterStatus, "filter-status", "", "filter status codes/ranges")
	rootCmd.PersistentFlags().StringVar(&filterLines, "filter-lines", "", "filter line counts/ranges")
	rootCmd.PersistentFlags().StringVar(&filterSize, "filter-size", "", "filter body-length counts/ranges")
	rootCmd.PersistentFlags().StringVar(&filterWords, "filter-words", "", "filter word counts/ranges")
	rootCmd.PersistentFlags().StringArrayVar(&filterRegex, "filter-regex", nil, "filter body regex (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&filterTime, "filter-time", "", "filter response time, e.g. \"<50\"")
	rootCmd.PersistentFlags().StringVar(&filterMode, "filter-mode", "or", "combine mode across active filter families: and, or")

	rootCmd.PersistentFlags().BoolVar(&ignoreBody, "ignore-body", false, "skip reading response bodies")

	rootCmd.PersistentFlags().BoolVar(&recursion, "recursion", false, "recurse into accepted directory-shaped responses")
	rootCmd.PersistentFlags().IntVar(&recursionDepth, "recursion-depth", 1, "maximum recursion depth")

	rootCmd.PersistentFlags().BoolVar(&calibrate, "calibrate", false, "probe for a false-positive baseline before scanning")
	rootCmd.PersistentFlags().IntVar(&calibrateProbes, "calibrate-probes", 0, "number of calibration probes (0 for the engine default)")

	rootCmd.PersistentFlags().BoolVar(&stopOnError, "stop-on-error", false, "abort the scan on the first transport error")
	rootCmd.PersistentFlags().BoolVar(&stopOn403Saturation, "stop-on-403-saturation", false, "abort the scan once 403 responses saturate")

	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	rootCmd.PersistentFlags().BoolVar(&followRedirects, "follow-redirects", false, "follow HTTP redirects instead of reporting them directly")
	rootCmd.PersistentFlags().BoolVar(&insecureSkipVerify, "insecure", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&proxyURL, "proxy", "", "proxy URL for outgoing requests")

	rootCmd.PersistentFlags().IntVar(&maxAttempts, "max-attempts", 3, "maximum attempts per request, including the first, for transient transport errors")
}
