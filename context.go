package taskpool

import "context"

// Auto means "use a size derived from the number of usable CPU cores",
// mirroring ENOKI_THREAD_AUTO from the C original. Passed to [NewPool] or
// [Pool.SetSize].
const Auto = ^uint32(0)

type threadIDKey struct{}

// ThreadID returns the 1-based index of the worker goroutine executing
// the current unit callback, in [1, Size()]. Go has no goroutine-local
// storage equivalent to the C library's thread-local pool_thread_id(), so
// the id travels explicitly through ctx, the same way the teacher's job
// package threads a task marker through context to identify the current
// task from within a callback.
//
// ThreadID returns 0 when ctx was not derived from a worker's callback
// context — in particular, for a task that ran inline via the fast path.
func ThreadID(ctx context.Context) uint32 {
	id, _ := ctx.Value(threadIDKey{}).(uint32)
	return id
}

func withThreadID(ctx context.Context, id uint32) context.Context {
	return context.WithValue(ctx, threadIDKey{}, id)
}
