// Package orch serializes every inbound event against the shared registry.
// One mutex is held for each logical operation, so two join/leave sequences
// never interleave their broadcasts. Outbound sends only enqueue.
package orch

import (
	"sync"
	"time"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// TimestampLayout renders chat timestamps as a locale-style time of day.
const TimestampLayout = "3:04:05 PM"

type Orchestrator struct {
	mu       sync.Mutex
	Registry *app.Registry
	Sessions core.SessionTable
	Now      func() time.Time

	states map[domain.ConnID]domain.ConnState
}

func New(reg *app.Registry, sessions core.SessionTable) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		Sessions: sessions,
		Now:      time.Now,
		states:   make(map[domain.ConnID]domain.ConnState),
	}
}

// State reports the lifecycle state of sid. Unknown connections are Disconnected.
func (o *Orchestrator) State(sid domain.ConnID) domain.ConnState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if st, ok := o.states[sid]; ok {
		return st
	}
	return domain.StateDisconnected
}

// Roster is a consistent snapshot of online display names.
func (o *Orchestrator) Roster() []domain.DisplayName {
	return o.Registry.ListDisplayNames()
}
