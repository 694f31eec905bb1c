package dispatch

import (
	"strings"

	"github.com/rohmanhakim/fuzzhammer/internal/encode"
	"github.com/rohmanhakim/fuzzhammer/internal/payload"
)

// recursionKeyword is the literal token appended to an accepted URL to
// build the next recursion level's template.
const recursionKeyword = "FUZZ"

// encodeAssignment applies each keyword's configured encoder chain to its
// chosen word, producing the literal substitution values for one request.
func encodeAssignment(a payload.Assignment, encoders map[string][]encode.Name) map[string]string {
	out := make(map[string]string, len(a))
	for keyword, value := range a {
		out[keyword] = encode.Chain(encoders[keyword], value)
	}
	return out
}

// substitute performs the textual find-and-replace of every keyword token
// in s with its encoded value. A keyword absent from the assignment (e.g.
// a Sniper-mode request touching only one of several loaded keywords) is
// left untouched.
func substitute(s string, values map[string]string) string {
	if s == "" || len(values) == 0 {
		return s
	}
	for keyword, value := range values {
		s = strings.ReplaceAll(s, keyword, value)
	}
	return s
}

func substituteHeaders(headers map[string]string, values map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = substitute(v, values)
	}
	return out
}

// withExtension inserts ext (a leading "." implied if absent) immediately
// after the path component of rawURL, preserving any query string or
// fragment that follows.
func withExtension(rawURL, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		return rawURL[:idx] + ext + rawURL[idx:]
	}
	return rawURL + ext
}

// expandExtensions builds the full list of concrete URLs for one
// substituted request: the base URL, followed by one URL per configured
// extension suffix.
func expandExtensions(baseURL string, extensions []string) []string {
	urls := make([]string, 0, 1+len(extensions))
	urls = append(urls, baseURL)
	for _, ext := range extensions {
		urls = append(urls, withExtension(baseURL, ext))
	}
	return urls
}

// deriveMetrics computes body length, line count, and word count from a
// response body. When ignoreBody is set the caller never reads a body, so
// every derived count is defined as 0.
func deriveMetrics(body string, ignoreBody bool) (bodyLength, lineCount, wordCount int) {
	if ignoreBody || body == "" {
		return 0, 0, 0
	}
	bodyLength = len(body)
	lineCount = len(strings.Split(body, "\n"))
	wordCount = len(strings.Fields(body))
	return bodyLength, lineCount, wordCount
}

// looksStructured reports whether a Content-Type header suggests content
// worth recursing into (HTML, XML, JSON directory-listing-shaped bodies).
// Binary and plain-text content-types never trigger a descent.
func looksStructured(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "html") || strings.Contains(ct, "json") || strings.Contains(ct, "xml")
}

// isRecursable reports whether a status code falls in the 2xx/3xx band
// recursive descent is gated on.
func isRecursable(statusCode int) bool {
	return statusCode >= 200 && statusCode < 400
}

// buildRecursionTemplate is the new URL template for one descent: the
// accepted URL with "/FUZZ" appended, re-entering the same core at a
// deeper level.
func buildRecursionTemplate(acceptedURL string) string {
	return strings.TrimRight(acceptedURL, "/") + "/" + recursionKeyword
}
