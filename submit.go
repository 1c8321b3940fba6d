package taskpool

import (
	"context"
	"fmt"
	"runtime/debug"
)

// SubmitDep submits a task of size units depending on parents. A nil
// entry in parents, or a parent that has already completed, contributes
// nothing to the dependency count. The returned handle is nil when the
// task qualified for the fast path (§ package doc) and already ran
// synchronously before SubmitDep returned; callers that don't need a
// handle can ignore the return value either way.
//
// pool may be nil, in which case a lazily-created process-wide default
// pool sized with [Auto] is used.
func SubmitDep(pool *Pool, parents []*Task, size uint32, fn UnitFunc, payload any, deleter Deleter) *Task {
	pool = resolvePool(pool)

	if size == 1 && allNil(parents) {
		runInline(fn, payload, deleter)
		return nil
	}

	t := newTask(pool, size, fn, payload, deleter)

	pool.mu.Lock()
	for _, parent := range parents {
		if parent == nil {
			continue
		}
		if parent.done {
			continue
		}
		t.parentsRemaining++
		parent.children = append(parent.children, t)
	}
	ready := t.parentsRemaining == 0
	if ready {
		pool.ready.PushBack(t)
	}
	pool.mu.Unlock()

	if ready {
		pool.workAvail.Signal()
	}
	return t
}

// Submit is SubmitDep with no parents.
func Submit(pool *Pool, size uint32, fn UnitFunc, payload any, deleter Deleter) *Task {
	return SubmitDep(pool, nil, size, fn, payload, deleter)
}

func allNil(parents []*Task) bool {
	for _, p := range parents {
		if p != nil {
			return false
		}
	}
	return true
}

// runInline executes a fast-path task's single unit on the calling
// goroutine. unitIndex is always 0; ThreadID(ctx) reports 0 since no
// worker is involved.
func runInline(fn UnitFunc, payload any, deleter Deleter) {
	if fn != nil {
		if err := callUnit(context.Background(), fn, 0, payload); err != nil {
			// There is no handle to carry this error to a waiter; a
			// fast-pathed task has, by construction, no observer other
			// than the caller that just invoked it inline.
			_ = err
		}
	}
	if deleter != nil {
		deleter(payload)
	}
}

// callUnit runs fn, converting a panic into ErrTaskPanic the same way a
// returned error is handled.
func callUnit(ctx context.Context, fn UnitFunc, unitIndex uint32, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrTaskPanic, r, debug.Stack())
		}
	}()
	return fn(ctx, unitIndex, payload)
}
