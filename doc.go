// Package taskpool provides a small, embeddable thread pool for data-parallel
// work. A task is composed of one or more independent work units; tasks may
// declare other tasks as parents, forming an arbitrary dependency DAG that
// the pool resolves as parents complete.
//
// Tasks are fire-and-forget until the caller needs their result: [SubmitDep]
// (or its no-parent convenience [Submit]) returns a [Task] handle that can be
// passed as a parent to further submissions, waited on with [Task.Wait], or
// simply released with [Task.Release] without ever being waited on. A task
// whose size is 1 and which has no non-nil parents runs inline on the
// submitting goroutine before SubmitDep returns, and SubmitDep returns a nil
// handle, avoiding pool overhead for trivial work. A non-nil parent, even one
// that is already done, sends the task through the ready queue instead.
//
// Unlike a goroutine-per-task worker pool, taskpool spawns a fixed number of
// worker goroutines up front (see [NewPool]) and dispatches ready tasks to
// them from a single mutex-guarded FIFO. This keeps the pool's footprint
// predictable, which matters when it is embedded inside a larger CPU-bound
// system (a renderer, a numerical solver) that is already managing its own
// thread budget.
package taskpool
