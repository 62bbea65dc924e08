// Package shadow keeps an in-memory mirror of the load table so the UI
// can reflect edits immediately and reconcile them against refreshes.
package shadow

import (
	"strings"
	"sync"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
)

// Counts summarizes the shadow list for the filter bar and the
// diagnostics view.
type Counts struct {
	// All is the total number of loads.
	All int

	// ByStatus maps every canonical status to its load count. The map
	// always carries a key for each canonical value, zero or not.
	ByStatus map[string]int

	// Unrecognized counts loads whose status normalizes outside the
	// canonical set (excluding the empty string).
	Unrecognized int

	// Inconsistent is set when the canonical per-status counts do not
	// add back up to the total, i.e. at least one load carries a status
	// outside the canonical set.
	Inconsistent bool
}

// List is a concurrency-safe shadow copy of the load table. Status
// edits are applied optimistically through BeginStatusChange and either
// confirmed or rolled back once the remote write resolves. A per-load
// write sequence guards against a stale rollback clobbering a newer
// edit to the same load.
type List struct {
	mu    sync.Mutex
	loads []model.Load
	seqs  map[string]uint64
}

// NewList returns an empty shadow list.
func NewList() *List {
	return &List{seqs: make(map[string]uint64)}
}

// Replace swaps in a freshly fetched snapshot. Pending-edit bookkeeping
// survives so in-flight rollbacks against the previous snapshot are
// still sequence-checked.
func (l *List) Replace(loads []model.Load) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loads = make([]model.Load, len(loads))
	copy(l.loads, loads)
}

// Loads returns a copy of the current shadow contents.
func (l *List) Loads() []model.Load {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Load, len(l.loads))
	copy(out, l.loads)
	return out
}

// Get returns the load with the given business identifier.
func (l *List) Get(loadID string) (model.Load, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ld := range l.loads {
		if ld.LoadID == loadID {
			return ld, true
		}
	}
	return model.Load{}, false
}

// ApplyStatus sets the status of a load directly, without optimistic
// bookkeeping. Unknown load ids are a silent no-op so a refresh racing
// with a delete cannot fail the caller.
func (l *List) ApplyStatus(loadID, newStatus string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setStatusLocked(loadID, newStatus)
}

// BeginStatusChange applies newStatus optimistically and returns the
// previous raw status together with the write sequence number the
// caller must present to Rollback. ok is false when the load is not in
// the shadow list.
func (l *List) BeginStatusChange(loadID, newStatus string) (previous string, seq uint64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.loads {
		if l.loads[i].LoadID == loadID {
			previous = l.loads[i].Status
			l.loads[i].Status = newStatus
			l.seqs[loadID]++
			return previous, l.seqs[loadID], true
		}
	}
	return "", 0, false
}

// Rollback restores the pre-edit status recorded by BeginStatusChange,
// but only when seq is still the latest write to that load. A newer
// edit supersedes the failed one and must not be clobbered.
func (l *List) Rollback(loadID, previous string, seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seqs[loadID] != seq {
		return false
	}
	return l.setStatusLocked(loadID, previous)
}

func (l *List) setStatusLocked(loadID, newStatus string) bool {
	for i := range l.loads {
		if l.loads[i].LoadID == loadID {
			l.loads[i].Status = newStatus
			return true
		}
	}
	return false
}

// Counts tallies the shadow list by normalized status.
func (l *List) Counts() Counts {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := Counts{
		All:      len(l.loads),
		ByStatus: make(map[string]int, len(status.Canonical)),
	}
	for _, s := range status.Canonical {
		c.ByStatus[s] = 0
	}

	canonicalSum := 0
	for _, ld := range l.loads {
		n := status.Normalize(ld.Status)
		if status.IsCanonical(n) {
			c.ByStatus[n]++
			canonicalSum++
			continue
		}
		if n != "" {
			c.Unrecognized++
		}
	}

	// Any load outside the canonical set, unrecognized or empty, keeps
	// the per-status counts from adding back up to the total.
	c.Inconsistent = canonicalSum != c.All
	return c
}

// Filter returns the loads matching both the status filter and the
// free-text query. An empty statusFilter matches every status; the
// query matches case-insensitively against the load number, broker
// name, and broker load number.
func (l *List) Filter(statusFilter, query string) []model.Load {
	l.mu.Lock()
	defer l.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))

	var out []model.Load
	for _, ld := range l.loads {
		if statusFilter != "" && status.Normalize(ld.Status) != statusFilter {
			continue
		}
		if query != "" && !matchesQuery(ld, query) {
			continue
		}
		out = append(out, ld)
	}
	return out
}

func matchesQuery(ld model.Load, query string) bool {
	return strings.Contains(strings.ToLower(ld.LoadID), query) ||
		strings.Contains(strings.ToLower(ld.BrokerName), query) ||
		strings.Contains(strings.ToLower(ld.BrokerLoadNumber), query)
}
