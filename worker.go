package taskpool

import "context"

func (p *Pool) workerLoop(id uint32) {
	defer p.wg.Done()
	ctx := withThreadID(context.Background(), id)

	for {
		p.mu.Lock()
		for !p.shutdown && p.ready.Len() == 0 {
			p.workAvail.Wait()
		}
		if p.shutdown {
			p.mu.Unlock()
			return
		}

		t, unitIndex := p.claimLocked()
		p.mu.Unlock()

		p.runUnit(ctx, t, unitIndex)
	}
}

// claimLocked pops one unit of work off the front of the ready queue.
// Callers must hold p.mu and must have already confirmed p.ready is
// non-empty. Shared by workerLoop and Task.Wait's cooperative
// help-while-waiting path so both claim units the same way.
func (p *Pool) claimLocked() (*Task, uint32) {
	t := p.ready.Front()
	unitIndex := t.unitsUnclaimed - 1
	t.unitsUnclaimed--
	if t.unitsUnclaimed == 0 {
		p.ready.PopFront()
	}
	return t, unitIndex
}

// runUnit executes one claimed unit of t and, if it was the last
// outstanding unit, finalizes the task.
func (p *Pool) runUnit(ctx context.Context, t *Task, unitIndex uint32) {
	if t.fn != nil {
		if err := callUnit(ctx, t.fn, unitIndex, t.payload); err != nil {
			t.trySetErr(err)
		}
	}

	p.mu.Lock()
	t.unitsRemaining--
	finished := t.unitsRemaining == 0
	var deleter Deleter
	var payload any
	if finished {
		deleter, payload = p.finalizeLocked(t)
	}
	p.mu.Unlock()

	if finished {
		// Run the deleter and drop the scheduler's reference before
		// announcing completion, so a waiter woken by the broadcast never
		// races the deleter over the payload.
		if deleter != nil {
			deleter(payload)
		}
		t.release()
		p.taskDone.Broadcast()
	}
}

// finalizeLocked marks t done and propagates completion to its
// children — pushing any whose last pending parent was t onto the ready
// queue — and returns the deleter/payload pair to invoke once the
// caller has released the pool mutex. Must be called with p.mu held.
func (p *Pool) finalizeLocked(t *Task) (Deleter, any) {
	t.done = true

	var newlyReady bool
	for _, c := range t.children {
		c.parentsRemaining--
		if c.parentsRemaining == 0 {
			p.ready.PushBack(c)
			newlyReady = true
		}
	}
	t.children = nil

	if newlyReady {
		p.workAvail.Broadcast()
	}
	return t.deleter, t.payload
}
