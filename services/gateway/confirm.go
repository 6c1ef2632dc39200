package gateway

import (
	"context"
	"errors"
	"sync"
)

var ErrNothingPending = errors.New("no pending confirmation")

// Confirmation is a single pending-action slot. Opening a new confirmation discards
// the previous one without running it.
type Confirmation struct {
	mu       sync.Mutex
	targetID string
	pending  func(ctx context.Context) error
}

// Open stores fn as the pending action for targetID.
func (c *Confirmation) Open(targetID string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targetID = targetID
	c.pending = fn
}

// Pending returns the target of the pending action, if any.
func (c *Confirmation) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetID, c.pending != nil
}

// Confirm clears the slot and runs the pending action.
func (c *Confirmation) Confirm(ctx context.Context) error {
	c.mu.Lock()
	fn := c.pending
	c.targetID, c.pending = "", nil
	c.mu.Unlock()

	if fn == nil {
		return ErrNothingPending
	}
	return fn(ctx)
}

// Dismiss clears the slot without running the pending action.
func (c *Confirmation) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targetID, c.pending = "", nil
}
