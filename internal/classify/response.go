// Package classify implements the ResponseClassifier: a pure matcher/filter
// predicate tree over six criterion families (status, lines, size, words,
// regex, time), composed into a single show/hide decision.
package classify

// Response is the fixed tuple of observations the classifier evaluates.
// When IgnoreBody is set by the caller building it, Body is empty and the
// derived counts are 0; ElapsedMS is still measured.
type Response struct {
	StatusCode int
	Body       string
	BodyLength int
	LineCount  int
	WordCount  int
	ElapsedMS  int64
}
