// Package diag provides optional, non-blocking diagnostics for a
// taskpool.Pool. Nothing here affects scheduling; it only observes it.
package diag

import (
	"cmp"
	"context"
	"sync"
	"time"

	"github.com/addrummond/heap"

	"github.com/nwcmb/taskpool"
)

// slowRecord is one completed unit's timing, the unit the teacher's own
// internal/sim/estimate.go keeps in its event heap, repurposed here as a
// reporting-only record instead of a simulation input.
type slowRecord struct {
	name     string
	unit     uint32
	duration time.Duration
}

func (a *slowRecord) Cmp(b *slowRecord) int {
	return cmp.Compare(a.duration, b.duration)
}

// SlowUnits tracks the K longest-running unit invocations observed
// across however many wrapped UnitFuncs feed it, using a bounded min-heap
// so the running set never holds more than K entries: once full, a new
// sample is only kept if it outlasts the current shortest of the K
// tracked entries, which is then evicted.
//
// This is purely observational; it never influences scheduling order or
// fairness between tasks.
type SlowUnits struct {
	mu sync.Mutex
	k  int
	h  heap.Heap[slowRecord, heap.Min]
}

// NewSlowUnits returns a tracker retaining the k slowest samples seen.
func NewSlowUnits(k int) *SlowUnits {
	return &SlowUnits{k: k}
}

// Wrap instruments fn to report each unit's duration to su, identifying
// the task by name in the resulting records.
func (su *SlowUnits) Wrap(name string, fn taskpool.UnitFunc) taskpool.UnitFunc {
	return func(ctx context.Context, unitIndex uint32, payload any) error {
		start := time.Now()
		err := fn(ctx, unitIndex, payload)
		su.observe(name, unitIndex, time.Since(start))
		return err
	}
}

func (su *SlowUnits) observe(name string, unit uint32, d time.Duration) {
	su.mu.Lock()
	defer su.mu.Unlock()

	rec := slowRecord{name: name, unit: unit, duration: d}
	if heap.Len(&su.h) < su.k {
		heap.PushOrderable(&su.h, rec)
		return
	}
	if shortest, ok := heap.Peek(&su.h); ok && d > shortest.duration {
		heap.PopOrderable(&su.h)
		heap.PushOrderable(&su.h, rec)
	}
}

// Slowest returns the currently tracked samples, longest duration first.
func (su *SlowUnits) Slowest() []Sample {
	su.mu.Lock()
	defer su.mu.Unlock()

	out := make([]Sample, 0, heap.Len(&su.h))
	var drained []slowRecord
	for heap.Len(&su.h) > 0 {
		rec, _ := heap.PopOrderable(&su.h)
		drained = append(drained, rec)
	}
	for i := len(drained) - 1; i >= 0; i-- {
		r := drained[i]
		out = append(out, Sample{Task: r.name, Unit: r.unit, Duration: r.duration})
		heap.PushOrderable(&su.h, r)
	}
	return out
}

// Sample is one reported slow-unit observation.
type Sample struct {
	Task     string
	Unit     uint32
	Duration time.Duration
}
