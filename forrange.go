package taskpool

import "context"

// ForRange splits [begin, end) into one taskpool unit per index and
// blocks until every call to fn has returned, re-raising the first error
// any of them produced. It is a thin convenience layer over SubmitDep
// and Wait, corresponding to the blocked_range/parallel_for helpers the
// original C++ header built on top of its C task API.
func ForRange(ctx context.Context, pool *Pool, begin, end uint32, fn func(ctx context.Context, i uint32) error) error {
	if end <= begin {
		return nil
	}
	size := end - begin
	if size == 1 {
		// A single-index range would otherwise take the fast path, whose
		// nil-handle return would silently drop fn's error.
		return fn(ctx, begin)
	}
	task := Submit(pool, size, func(ctx context.Context, unitIndex uint32, _ any) error {
		return fn(ctx, begin+unitIndex)
	}, nil, nil)
	return task.WaitAndRelease(ctx)
}

// Do runs fn once per worker unit, fire-and-forget, corresponding to
// parallel_do_async: it returns immediately with a handle the caller may
// release without ever waiting, or pass as a parent to further work.
// When n is 1 the task takes the fast path instead: fn runs inline before
// Do returns, the returned handle is nil, and fn's error is discarded.
func Do(pool *Pool, n uint32, fn func(ctx context.Context, i uint32) error) *Task {
	return Submit(pool, n, func(ctx context.Context, unitIndex uint32, _ any) error {
		return fn(ctx, unitIndex)
	}, nil, nil)
}
