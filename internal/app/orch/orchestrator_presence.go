package orch

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Callers hold o.mu, so the roster reflects the mutation just applied.

func (o *Orchestrator) announceJoin(p domain.Participant) {
	o.Sessions.Unicast(p.ID, core.Event{Type: core.EvWelcome, Data: p.Name})
	o.Sessions.BroadcastExcept(p.ID, core.Event{Type: core.EvUserJoined, Data: p.Name})
	o.broadcastRoster()
}

func (o *Orchestrator) announceLeave(p domain.Participant) {
	o.Sessions.BroadcastExcept(p.ID, core.Event{Type: core.EvUserLeft, Data: p.Name})
	o.broadcastRoster()
}

func (o *Orchestrator) broadcastRoster() {
	o.Sessions.Broadcast(core.Event{Type: core.EvUpdateUsers, Data: o.Registry.ListDisplayNames()})
}
