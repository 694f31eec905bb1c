// Package result implements the ResultSink: the stream of accepted
// classification events the Dispatcher forwards, one at a time, to
// whatever downstream writer the CLI wires up.
package result

import (
	"sync"

	"github.com/rohmanhakim/fuzzhammer/pkg/failure"
)

// Sink receives one Result at a time, in completion order (never batched).
type Sink interface {
	Write(r Result) failure.ClassifiedError
	Close() error
}

// ChannelSink is the default Sink: it forwards onto a buffered channel a
// consumer (the CLI's printer/serializer) drains independently.
type ChannelSink struct {
	mu     sync.Mutex
	ch     chan Result
	closed bool
}

// NewChannelSink creates a ChannelSink with the given channel buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan Result, buffer)}
}

func (s *ChannelSink) Write(r Result) failure.ClassifiedError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &SinkClosedError{}
	}
	s.ch <- r
	return nil
}

// Results returns the receive-only channel consumers drain.
func (s *ChannelSink) Results() <-chan Result {
	return s.ch
}

func (s *ChannelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.ch)
	return nil
}
