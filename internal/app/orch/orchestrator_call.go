package orch

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

// Call signaling is a blind relay: no call state is kept and payloads are
// forwarded unmodified. Unresolvable targets are dropped.

// Invite rings the participant called to.
func (o *Orchestrator) Invite(sid domain.ConnID, to domain.DisplayName) {
	o.mu.Lock()
	defer o.mu.Unlock()

	caller, ok := o.Registry.FindByID(sid)
	if !ok {
		o.dropped(sid, core.EvCallUser, "caller not registered")
		return
	}
	callee, ok := o.Registry.FindByName(to)
	if !ok {
		o.dropped(sid, core.EvCallUser, "callee not found")
		return
	}
	o.Sessions.Unicast(callee.ID, core.Event{Type: core.EvIncomingCall, Data: core.CallPeer{
		From:   caller.Name,
		FromID: caller.ID,
	}})
}

// Accept tells the original caller that sid picked up.
func (o *Orchestrator) Accept(sid domain.ConnID, callerID domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	accepter, ok := o.Registry.FindByID(sid)
	if !ok {
		o.dropped(sid, core.EvAcceptCall, "accepter not registered")
		return
	}
	caller, ok := o.Registry.FindByID(callerID)
	if !ok {
		o.dropped(sid, core.EvAcceptCall, "caller not found")
		return
	}
	o.Sessions.Unicast(caller.ID, core.Event{Type: core.EvCallAccepted, Data: core.CallPeer{
		From:   accepter.Name,
		FromID: accepter.ID,
	}})
}

func (o *Orchestrator) RelayOffer(sid, to domain.ConnID, offer json.RawMessage) {
	o.forward(sid, to, core.Event{Type: core.EvWebrtcOffer, Data: core.OfferRelay{Offer: offer, From: sid}})
}

func (o *Orchestrator) RelayAnswer(sid, to domain.ConnID, answer json.RawMessage) {
	o.forward(sid, to, core.Event{Type: core.EvWebrtcAnswer, Data: core.AnswerRelay{Answer: answer, From: sid}})
}

func (o *Orchestrator) RelayCandidate(sid, to domain.ConnID, candidate json.RawMessage) {
	o.forward(sid, to, core.Event{Type: core.EvIceCandidate, Data: core.CandidateRelay{Candidate: candidate, From: sid}})
}

// EndCall also serves as a decline when sent before the call was accepted.
func (o *Orchestrator) EndCall(sid, to domain.ConnID) {
	o.forward(sid, to, core.Event{Type: core.EvCallEnded, Data: core.CallEnded{From: sid}})
}

func (o *Orchestrator) forward(sid, to domain.ConnID, ev core.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	target, ok := o.Registry.FindByID(to)
	if !ok {
		o.dropped(sid, ev.Type, "target not found")
		return
	}
	o.Sessions.Unicast(target.ID, ev)
}

func (o *Orchestrator) dropped(sid domain.ConnID, typ, reason string) {
	log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("type", typ).Str("reason", reason).Msg("signal dropped")
}
