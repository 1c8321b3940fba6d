package taskpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// UnitFunc is the work performed by one unit of a task. ctx carries the
// calling worker's identity, retrievable with [ThreadID]. unitIndex is in
// [0, size) and is unique within a single task but is not necessarily
// handed out in ascending order. payload is whatever was passed to
// SubmitDep/Submit, unchanged.
type UnitFunc func(ctx context.Context, unitIndex uint32, payload any) error

// Deleter releases resources associated with a task's payload. It runs
// exactly once on normal completion, or on abandonment if the owning pool
// is destroyed while the task is still in the ready queue. A task that is
// still waiting on an unfinished parent when the pool is destroyed never
// runs, and its deleter is not called.
type Deleter func(payload any)

// Task is a handle to submitted work. A fresh handle carries two
// references: one held by the caller, one held internally by the
// scheduler until the task finishes or is abandoned. [Task.Release] drops
// the caller's reference; [Task.Wait] and [Task.WaitAndRelease] block
// until the task (and transitively, when applicable, its unit callbacks)
// have all completed.
//
// A Task is only ever touched under its owning pool's mutex, except for
// err and refCount which are updated with atomics so that a finishing
// worker and a waiting caller never need to coordinate through the pool
// lock for those two fields alone.
type Task struct {
	pool *Pool

	fn      UnitFunc
	payload any
	deleter Deleter

	size             uint32
	unitsUnclaimed   uint32
	unitsRemaining   uint32
	parentsRemaining int
	children         []*Task
	done             bool

	refCount atomic.Int32
	err      atomic.Pointer[error]
}

var taskPool = sync.Pool{
	New: func() any { return new(Task) },
}

func newTask(pool *Pool, size uint32, fn UnitFunc, payload any, deleter Deleter) *Task {
	t := taskPool.Get().(*Task)
	t.pool = pool
	t.fn = fn
	t.payload = payload
	t.deleter = deleter
	// size == 0 (an artificial, dependency-only task) is still accounted
	// for as exactly one unit internally, even though that unit is never
	// claimed by a worker running real callback code — fn is expected to
	// be nil in that case, but nothing here requires it.
	units := size
	if units == 0 {
		units = 1
	}
	t.size = size
	t.unitsUnclaimed = units
	t.unitsRemaining = units
	t.parentsRemaining = 0
	t.children = t.children[:0]
	t.done = false
	t.refCount.Store(2) // submitter + scheduler
	t.err.Store(nil)
	return t
}

// release drops one reference, recycling the Task once the count reaches
// zero. Grounded on the psgwf.Workflow ref/unref pattern: every path that
// can be the last to touch a Task calls this exactly once.
func (t *Task) release() {
	if t.refCount.Add(-1) == 0 {
		taskPool.Put(t)
	}
}

// trySetErr records err as the task's result if no error has been
// recorded yet. First writer wins; later callers' errors are discarded.
// This mirrors the CAS-retry idiom used for the teacher's in-flight
// counters, adapted from a saturating counter to a single-write slot.
func (t *Task) trySetErr(err error) {
	if err == nil {
		return
	}
	for {
		cur := t.err.Load()
		if cur != nil {
			return
		}
		if t.err.CompareAndSwap(nil, &err) {
			return
		}
	}
}
