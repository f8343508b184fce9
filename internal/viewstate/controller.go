package viewstate

import (
	"context"
	"sync"
)

// Outcome reports what a fetch cycle produced. Applied is false when the
// cycle was superseded by a newer one or the controller was unmounted before
// the result arrived; State then holds the controller's current state.
type Outcome[T any] struct {
	State      State[T]
	Generation uint64
	Applied    bool
}

// Controller is the shared machinery behind the page controllers. Every
// fetch cycle gets a fresh generation and its own cancel func; only the
// newest cycle of a mounted controller may change the state.
type Controller[T any] struct {
	mu         sync.Mutex
	state      State[T]
	generation uint64
	cancel     context.CancelFunc
	mounted    bool
	key        string
}

// State returns the current state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the id of the newest cycle.
func (c *Controller[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Key returns the parameter of the newest cycle.
func (c *Controller[T]) Key() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// Mounted reports whether results may still be applied.
func (c *Controller[T]) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Mount starts a new page visit: the state resets to Loading and any older
// cycle is invalidated. Mounting a mounted controller is a no-op.
func (c *Controller[T]) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return
	}
	c.stopLocked()
	c.mounted = true
	c.state = Loading[T]()
}

// Unmount cancels the in-flight cycle; results arriving afterwards are
// dropped.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.mounted = false
}

func (c *Controller[T]) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
}

// begin opens a new cycle for key. It cancels the previous one and enters
// Loading.
func (c *Controller[T]) begin(parent context.Context, key string) (context.Context, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return parent, c.generation, false
	}
	c.stopLocked()
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.key = key
	c.state = Loading[T]()
	return ctx, c.generation, true
}

// settle applies next when gen is still the newest cycle.
func (c *Controller[T]) settle(gen uint64, next State[T]) Outcome[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted || gen != c.generation {
		return Outcome[T]{State: c.state, Generation: gen}
	}
	c.state = next
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return Outcome[T]{State: next, Generation: gen, Applied: true}
}

func (c *Controller[T]) rejected(gen uint64) Outcome[T] {
	return Outcome[T]{State: c.State(), Generation: gen}
}
