// Package coretest provides in-memory transports for tests.
package coretest

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Huddle/internal/core"
)

// Received is a decoded outbound frame.
type Received struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// FakeConn records every frame it is sent. Capacity < 0 means unbounded.
type FakeConn struct {
	mu       sync.Mutex
	frames   []core.Frame
	Capacity int
	closed   bool
}

func NewFakeConn() *FakeConn {
	return &FakeConn{Capacity: -1}
}

func (c *FakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.Capacity >= 0 && len(c.frames) >= c.Capacity {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *FakeConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *FakeConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Events decodes everything received so far.
func (c *FakeConn) Events() []Received {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Received, 0, len(c.frames))
	for _, f := range c.frames {
		var r Received
		if err := json.Unmarshal(f, &r); err == nil {
			out = append(out, r)
		}
	}
	return out
}

// Types lists received event types in order.
func (c *FakeConn) Types() []string {
	evs := c.Events()
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

// Last returns the most recent event of type typ.
func (c *FakeConn) Last(typ string) (Received, bool) {
	evs := c.Events()
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Type == typ {
			return evs[i], true
		}
	}
	return Received{}, false
}

func (c *FakeConn) Reset() {
	c.mu.Lock()
	c.frames = nil
	c.mu.Unlock()
}
