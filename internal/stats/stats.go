// Package stats implements the Statistics component: a wait-free,
// multi-producer tally of request outcomes, with derived metrics computed
// from a point-in-time snapshot rather than kept continuously consistent.
package stats

import (
	"sync/atomic"
	"time"
)

// poolGauge is the slice of pond.Pool this package reads for live
// concurrency gauges, narrowed to just the two methods Statistics needs —
// the worker pool itself remains owned by internal/dispatch.
type poolGauge interface {
	RunningWorkers() int64
	WaitingTasks() uint64
}

// Statistics is safe for concurrent use; every mutator is a single atomic
// increment. Readers observe a Snapshot whose fields are each individually
// consistent but not mutually atomic with one another.
type Statistics struct {
	total     int64
	completed int64
	matched   int64
	errored   int64
	bytesSent int64
	bytesRecv int64
	startedAt time.Time
	pool      poolGauge
}

// New starts the clock and records total as the number of requests the
// current run will issue (used for progress-percent derivation).
func New(total int64) *Statistics {
	return &Statistics{
		total:     total,
		startedAt: time.Now(),
	}
}

// BindPool attaches the worker pool backing the current run, so
// RunningWorkers/QueuedCount reflect its live state instead of reading as
// zero. Optional: a Statistics with no bound pool reports zero for both.
func (s *Statistics) BindPool(p poolGauge) {
	s.pool = p
}

func (s *Statistics) IncCompleted()        { atomic.AddInt64(&s.completed, 1) }
func (s *Statistics) IncMatched()          { atomic.AddInt64(&s.matched, 1) }
func (s *Statistics) IncErrored()          { atomic.AddInt64(&s.errored, 1) }
func (s *Statistics) AddBytesSent(n int64) { atomic.AddInt64(&s.bytesSent, n) }
func (s *Statistics) AddBytesRecv(n int64) { atomic.AddInt64(&s.bytesRecv, n) }

// Snapshot is a point-in-time read of every counter.
type Snapshot struct {
	Total          int64
	Completed      int64
	Matched        int64
	Errored        int64
	BytesSent      int64
	BytesRecv      int64
	Elapsed        time.Duration
	RunningWorkers int64
	QueuedCount    uint64
}

func (s *Statistics) Snapshot() Snapshot {
	snap := Snapshot{
		Total:     atomic.LoadInt64(&s.total),
		Completed: atomic.LoadInt64(&s.completed),
		Matched:   atomic.LoadInt64(&s.matched),
		Errored:   atomic.LoadInt64(&s.errored),
		BytesSent: atomic.LoadInt64(&s.bytesSent),
		BytesRecv: atomic.LoadInt64(&s.bytesRecv),
		Elapsed:   time.Since(s.startedAt),
	}
	if s.pool != nil {
		snap.RunningWorkers = s.pool.RunningWorkers()
		snap.QueuedCount = s.pool.WaitingTasks()
	}
	return snap
}

// RequestsPerSecond derives throughput from the snapshot's own elapsed
// window; a near-zero elapsed avoids a divide blowup by reporting 0.
func (sn Snapshot) RequestsPerSecond() float64 {
	secs := sn.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(sn.Completed) / secs
}

// MatchRate is matched/completed, 0 if nothing has completed yet.
func (sn Snapshot) MatchRate() float64 {
	if sn.Completed == 0 {
		return 0
	}
	return float64(sn.Matched) / float64(sn.Completed)
}

// ProgressPercent is completed/total*100, 0 if total is unknown (0).
func (sn Snapshot) ProgressPercent() float64 {
	if sn.Total == 0 {
		return 0
	}
	return float64(sn.Completed) / float64(sn.Total) * 100
}
