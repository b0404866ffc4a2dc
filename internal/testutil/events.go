// internal/testutil/events.go
package testutil

import (
	"context"
	"sync"

	"github.com/dalemusser/collabhub/internal/app/system/events"
)

// CaptureEmitter records emitted events for assertions. Safe for
// concurrent use.
type CaptureEmitter struct {
	mu     sync.Mutex
	events []events.Event
}

// NewCaptureEmitter returns an empty CaptureEmitter.
func NewCaptureEmitter() *CaptureEmitter {
	return &CaptureEmitter{}
}

func (c *CaptureEmitter) Emit(_ context.Context, e events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of everything emitted so far.
func (c *CaptureEmitter) Events() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.Event, len(c.events))
	copy(out, c.events)
	return out
}

// ByType returns emitted events of one type.
func (c *CaptureEmitter) ByType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range c.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
