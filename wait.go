package taskpool

import "context"

// Release drops the caller's reference to t. It is safe to call without
// ever waiting; the scheduler's own reference keeps the task alive until
// it finishes (or is abandoned) regardless. Calling Release twice on the
// same handle, or any use of t afterward, is undefined behavior.
func (t *Task) Release() {
	if t == nil {
		return
	}
	t.release()
}

// Wait blocks until t's units have all completed, then returns the first
// error recorded by any of them (nil if none failed, or if t is an
// artificial task). ctx cancellation interrupts the wait and returns
// ctx.Err(), leaving t otherwise unaffected and still waitable.
//
// If ctx identifies the calling goroutine as a pool worker (see
// [ThreadID]) — the case when a unit callback submits a task and then
// waits on it — Wait helps drain the pool's ready queue itself instead
// of only blocking: whenever the queue is non-empty it unlocks, claims
// and runs one unit, then re-locks and rechecks t.done. This is what
// keeps a unit callback that waits on its own submitted work from
// deadlocking a pool that has no other idle worker to make progress for
// it (e.g. a pool of size 1).
//
// Wait does not consume the caller's reference; call [Task.Release]
// separately, or use [Task.WaitAndRelease].
func (t *Task) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}

	if ctx.Done() != nil {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				t.pool.mu.Lock()
				t.pool.taskDone.Broadcast()
				t.pool.mu.Unlock()
			case <-stop:
			}
		}()
	}

	helping := ThreadID(ctx) != 0
	p := t.pool

	p.mu.Lock()
	for !t.done {
		if helping && p.ready.Len() > 0 {
			helpee, unitIndex := p.claimLocked()
			p.mu.Unlock()
			p.runUnit(ctx, helpee, unitIndex)
			p.mu.Lock()
			continue
		}
		if err := ctx.Err(); err != nil {
			p.mu.Unlock()
			return err
		}
		p.taskDone.Wait()
	}
	p.mu.Unlock()

	if errp := t.err.Load(); errp != nil {
		return *errp
	}
	return nil
}

// WaitAndRelease waits on t and then releases the caller's reference
// regardless of the outcome, including on a context error.
func (t *Task) WaitAndRelease(ctx context.Context) error {
	if t == nil {
		return nil
	}
	err := t.Wait(ctx)
	t.Release()
	return err
}
