package taskpool

import (
	"runtime"
	"sync"

	"github.com/gammazero/deque"
	"github.com/nwcmb/taskpool/internal/state"
)

// Pool is a fixed-size goroutine pool that runs [Task] units pulled from
// a single shared FIFO. Unlike a goroutine-per-task design, worker
// goroutines are long-lived: NewPool starts them up front and they block
// on a condition variable between units of work, so the pool's footprint
// is predictable regardless of how many tasks pass through it.
type Pool struct {
	mu        sync.Mutex
	workAvail sync.Cond
	taskDone  sync.Cond
	ready     deque.Deque[*Task]
	shutdown  bool
	destroyed bool
	wg        sync.WaitGroup
	size      state.DynamicValue[uint32]
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

func resolvePool(pool *Pool) *Pool {
	if pool != nil {
		return pool
	}
	defaultPoolOnce.Do(func() {
		defaultPool = NewPool(Auto)
	})
	return defaultPool
}

// NewPool creates and starts a pool with the given number of worker
// goroutines. Pass [Auto] to size it from runtime.GOMAXPROCS.
func NewPool(size uint32) *Pool {
	p := &Pool{}
	p.workAvail.L = &p.mu
	p.taskDone.L = &p.mu
	p.spawn(resolveSize(size))
	return p
}

// Size returns the pool's current worker count.
func (p *Pool) Size() uint32 {
	n, _ := p.size.Load()
	return n
}

// SetSize changes the number of worker goroutines. Any task already
// queued or in flight is unaffected; SetSize only changes how many
// workers are available to drain the queue. Concurrent with [Pool.Destroy]
// on the same pool is undefined behavior, same as concurrent SetSize
// calls racing each other.
func (p *Pool) SetSize(n uint32) {
	p.quiesce()
	p.spawn(resolveSize(n))
}

// Destroy stops all workers and discards any task still queued or
// waiting on parents. Queued tasks are abandoned (§4.6): their deleter,
// if any, still runs, and their scheduler reference is still dropped, but
// their children are never notified. Destroying a pool while a caller
// elsewhere holds a handle to one of its abandoned tasks and is waiting
// on it is undefined behavior — the wait will never return.
func (p *Pool) Destroy() {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.destroyed = true
	p.mu.Unlock()

	p.quiesce()
	p.abandonQueued()
}

func (p *Pool) quiesce() {
	p.mu.Lock()
	p.shutdown = true
	p.workAvail.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) spawn(n uint32) {
	p.mu.Lock()
	p.shutdown = false
	p.mu.Unlock()
	p.size.Store(n)
	p.wg.Add(int(n))
	for id := uint32(1); id <= n; id++ {
		go p.workerLoop(id)
	}
}

// abandonQueued drains whatever is left in the ready queue after all
// workers have exited, running each task's deleter and dropping its
// scheduler reference without ever marking it done or notifying
// children. Tasks still waiting on a pending parent are left exactly as
// they are: unreachable, ineligible ever to run, destined to be
// collected with the rest of the pool's graph once nothing references
// them.
func (p *Pool) abandonQueued() {
	p.mu.Lock()
	var abandoned []*Task
	for p.ready.Len() > 0 {
		abandoned = append(abandoned, p.ready.PopFront())
	}
	p.mu.Unlock()

	for _, t := range abandoned {
		if t.deleter != nil {
			t.deleter(t.payload)
		}
		t.release()
	}
}

func resolveSize(n uint32) uint32 {
	if n != Auto {
		return n
	}
	if procs := runtime.GOMAXPROCS(0); procs > 0 {
		return uint32(procs)
	}
	return 1
}
