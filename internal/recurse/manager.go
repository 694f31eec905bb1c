package recurse

import (
	"net/url"
	"sync"

	"github.com/rohmanhakim/fuzzhammer/pkg/hashutil"
	"github.com/rohmanhakim/fuzzhammer/pkg/urlutil"
)

// Manager is a dedup-before-enqueue BFS over recursive descents: a visited
// set of normalized URLs plus a FIFO of pending descents, both guarded by a
// single mutex. Coarse locking is acceptable because contention here is
// dwarfed by network latency.
//
// Visited membership is keyed on a hash of the canonicalized URL rather than
// the raw string, so large recursive scans keep a constant-size key
// regardless of URL length.
type Manager struct {
	maxDepth int
	algo     hashutil.HashAlgo

	mu      sync.Mutex
	visited Set[string]
	pending FIFOQueue[Descent]
}

// NewManager constructs a recursion Manager bounded to maxDepth. algo selects
// the hash used for visited-set keys (HashAlgoSHA256 or HashAlgoBLAKE3);
// BLAKE3 is preferable for very large recursive scans where hashing
// throughput matters.
func NewManager(maxDepth int, algo hashutil.HashAlgo) *Manager {
	return &Manager{
		maxDepth: maxDepth,
		algo:     algo,
		visited:  NewSet[string](),
		pending:  *NewFIFOQueue[Descent](),
	}
}

// Submit admits a candidate descent if it is within maxDepth and has not
// been visited before. Returns false if the descent was dropped (depth
// exceeded or already visited), in which case no state was changed.
func (m *Manager) Submit(rawURL string, depth int) bool {
	if depth > m.maxDepth {
		return false
	}

	key, err := m.dedupKey(rawURL)
	if err != nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visited.Contains(key) {
		return false
	}
	m.visited.Add(key)
	m.pending.Enqueue(NewDescent(rawURL, depth))
	return true
}

// Next pops the next pending descent in FIFO order. ok is false once the
// queue is drained.
func (m *Manager) Next() (descent Descent, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.Dequeue()
}

// Pending reports the number of descents not yet dequeued.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.Size()
}

// VisitedCount reports how many distinct normalized URLs have been admitted.
func (m *Manager) VisitedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visited.Size()
}

func (m *Manager) dedupKey(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	canonical := urlutil.Canonicalize(*parsed)
	return hashutil.HashBytes([]byte(canonical.String()), m.algo)
}
