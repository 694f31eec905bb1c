package result

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Result is an accepted classification event: the originating assignment,
// the URL it produced, the observed response metrics, and when it happened.
// Fields are unexported; construct via New and read via the getters so the
// caller can't mutate a Result after it's been handed to a Sink.
type Result struct {
	url         string
	assignment  map[string]string
	statusCode  int
	bodyLength  int
	lineCount   int
	wordCount   int
	elapsedMS   int64
	observedAt  time.Time
}

// New builds a Result. assignment is copied defensively.
func New(url string, assignment map[string]string, statusCode, bodyLength, lineCount, wordCount int, elapsedMS int64, observedAt time.Time) Result {
	copied := make(map[string]string, len(assignment))
	for k, v := range assignment {
		copied[k] = v
	}
	return Result{
		url:        url,
		assignment: copied,
		statusCode: statusCode,
		bodyLength: bodyLength,
		lineCount:  lineCount,
		wordCount:  wordCount,
		elapsedMS:  elapsedMS,
		observedAt: observedAt,
	}
}

func (r Result) URL() string           { return r.url }
func (r Result) StatusCode() int       { return r.statusCode }
func (r Result) BodyLength() int       { return r.bodyLength }
func (r Result) LineCount() int        { return r.lineCount }
func (r Result) WordCount() int        { return r.wordCount }
func (r Result) ElapsedMS() int64      { return r.elapsedMS }
func (r Result) ObservedAt() time.Time { return r.observedAt }

// Assignment returns a defensive copy of the keyword→value mapping.
func (r Result) Assignment() map[string]string {
	copied := make(map[string]string, len(r.assignment))
	for k, v := range r.assignment {
		copied[k] = v
	}
	return copied
}

// AssignmentString renders the assignment as a stable "key=value" list,
// sorted by keyword, for the serialized result record.
func (r Result) AssignmentString() string {
	keys := make([]string, 0, len(r.assignment))
	for k := range r.assignment {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + r.assignment[k]
	}
	return strings.Join(pairs, " ")
}

// jsonResult is the wire shape Sink consumers see.
type jsonResult struct {
	KeywordAssignments string    `json:"keyword_assignments"`
	URL                string    `json:"url"`
	StatusCode         int       `json:"status_code"`
	BodyLength         int       `json:"body_length"`
	Lines              int       `json:"lines"`
	Words              int       `json:"words"`
	ResponseTimeMS     int64     `json:"response_time_ms"`
	Timestamp          time.Time `json:"timestamp"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonResult{
		KeywordAssignments: r.AssignmentString(),
		URL:                r.url,
		StatusCode:         r.statusCode,
		BodyLength:         r.bodyLength,
		Lines:              r.lineCount,
		Words:              r.wordCount,
		ResponseTimeMS:     r.elapsedMS,
		Timestamp:          r.observedAt,
	})
}
