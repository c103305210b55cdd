package orch

import (
	"context"
	"errors"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) OnConnect(sid domain.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Sessions.Bind(sid, conn, cancel)
	o.states[sid] = domain.StateConnected
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("connected")
}

// Join moves a Connected connection to Joined under rawName.
// A taken name leaves the connection Connected and only the sender hears about it.
func (o *Orchestrator) Join(sid domain.ConnID, rawName string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch st, ok := o.states[sid]; {
	case !ok:
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("join from unknown connection")
		return
	case st == domain.StateJoined:
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("join ignored, already joined")
		return
	}

	name, err := domain.ParseDisplayName(rawName)
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("join rejected")
		o.Sessions.Unicast(sid, core.Event{Type: core.EvError, Data: core.ErrorInfo{Message: err.Error()}})
		return
	}

	p, err := o.Registry.Register(sid, name)
	if err != nil {
		if errors.Is(err, domain.ErrNameTaken) {
			log.Info().Str("module", "orch").Str("sid", string(sid)).Str("name", string(name)).Msg("username taken")
			o.Sessions.Unicast(sid, core.Event{Type: core.EvUsernameTaken})
			return
		}
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("register")
		return
	}
	o.states[sid] = domain.StateJoined
	o.announceJoin(p)
}

// OnDisconnect is the only cancellation path. It is safe to call more than once.
func (o *Orchestrator) OnDisconnect(sid domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.states[sid]
	if !ok {
		return
	}
	delete(o.states, sid)
	o.Sessions.Unbind(sid)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_state", st.String()).Msg("disconnected")

	if st != domain.StateJoined {
		return
	}
	if p, ok := o.Registry.Unregister(sid); ok {
		o.announceLeave(p)
	}
}
