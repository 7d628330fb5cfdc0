// Package stats tracks per-provider operational counters for diagnostics
package stats

import (
	"sync"
	"time"

	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

// Snapshot is a read-only view of one provider's counters. SuccessRate
// and AvgLatency are derived on read, never stored.
type Snapshot struct {
	Provider    providers.Name `json:"provider"`
	Calls       int64          `json:"calls"`
	Errors      int64          `json:"errors"`
	SuccessRate float64        `json:"success_rate"`
	AvgLatency  time.Duration  `json:"avg_latency"`
}

type counters struct {
	calls        int64
	errors       int64
	totalLatency time.Duration // accumulated on success only
}

// Tracker records call outcomes per provider. Safe for concurrent use;
// each record is atomic, so error counts never exceed call counts under
// any interleaving.
type Tracker struct {
	mu         sync.Mutex
	byProvider map[providers.Name]*counters
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{byProvider: make(map[providers.Name]*counters)}
}

// Record registers one dispatch attempt against a provider. The call
// count always increments; the error count increments on failure;
// latency accumulates on success only, so failed calls do not skew the
// average success latency.
func (t *Tracker) Record(provider providers.Name, success bool, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.byProvider[provider]
	if c == nil {
		c = &counters{}
		t.byProvider[provider] = c
	}

	c.calls++
	if success {
		c.totalLatency += latency
	} else {
		c.errors++
	}
}

// Snapshot returns the current counters for one provider. A provider
// with zero calls yields a zero snapshot with a 0 success rate.
func (t *Tracker) Snapshot(provider providers.Name) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked(provider)
}

// All returns snapshots for the given providers in the given order
func (t *Tracker) All(names []providers.Name) []Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Snapshot, 0, len(names))
	for _, name := range names {
		out = append(out, t.snapshotLocked(name))
	}
	return out
}

func (t *Tracker) snapshotLocked(provider providers.Name) Snapshot {
	snap := Snapshot{Provider: provider}
	c := t.byProvider[provider]
	if c == nil || c.calls == 0 {
		return snap
	}

	snap.Calls = c.calls
	snap.Errors = c.errors
	snap.SuccessRate = float64(c.calls-c.errors) / float64(c.calls)
	if successes := c.calls - c.errors; successes > 0 {
		snap.AvgLatency = c.totalLatency / time.Duration(successes)
	}
	return snap
}
