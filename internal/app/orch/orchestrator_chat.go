package orch

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

// PostMessage stamps body with the sender's name and server time and sends it
// to everyone, sender included. Unregistered senders are dropped.
func (o *Orchestrator) PostMessage(sid domain.ConnID, body string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.Registry.FindByID(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("message from unregistered connection dropped")
		return
	}
	o.Sessions.Broadcast(core.Event{Type: core.EvNewMessage, Data: core.ChatMessage{
		Username:  p.Name,
		Message:   body,
		Timestamp: o.Now().Format(TimestampLayout),
	}})
}

// SetTyping tells everyone but the sender that it started or stopped typing.
func (o *Orchestrator) SetTyping(sid domain.ConnID, typing bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.Registry.FindByID(sid)
	if !ok {
		return
	}
	typ := core.EvStopTyping
	if typing {
		typ = core.EvUserTyping
	}
	o.Sessions.BroadcastExcept(sid, core.Event{Type: typ, Data: p.Name})
}
