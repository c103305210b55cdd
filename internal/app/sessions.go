package app

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Sessions holds every live transport, joined or not, and fans events out to them.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*sessionEntry
	Policy   Policy
}

var _ core.SessionTable = (*Sessions)(nil)

func NewSessions(policy Policy) *Sessions {
	if policy == nil {
		policy = SimplePolicy{Action: KickMember}
	}
	return &Sessions{
		sessions: make(map[domain.ConnID]*sessionEntry),
		Policy:   policy,
	}
}

func (s *Sessions) Bind(sid domain.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("bound session")
}

func (s *Sessions) Unbind(sid domain.ConnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("unbind session")
}

func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Sessions) Unicast(to domain.ConnID, ev core.Event) {
	frame, ok := encode(ev)
	if !ok {
		return
	}
	s.mu.RLock()
	e, found := s.sessions[to]
	s.mu.RUnlock()
	if !found {
		log.Debug().Str("module", "app.sessions").Str("sid", string(to)).Str("type", ev.Type).Msg("unicast target gone")
		return
	}
	s.deliver(to, e, frame)
}

func (s *Sessions) Broadcast(ev core.Event) {
	s.BroadcastExcept("", ev)
}

func (s *Sessions) BroadcastExcept(except domain.ConnID, ev core.Event) {
	frame, ok := encode(ev)
	if !ok {
		return
	}
	s.mu.RLock()
	targets := make(map[domain.ConnID]*sessionEntry, len(s.sessions))
	for sid, e := range s.sessions {
		if sid != except {
			targets[sid] = e
		}
	}
	s.mu.RUnlock()

	sent := 0
	for sid, e := range targets {
		if s.deliver(sid, e, frame) {
			sent++
		}
	}
	log.Debug().Str("module", "app.sessions").Str("type", ev.Type).Str("except", string(except)).Int("sent_to", sent).Int("targets", len(targets)).Msg("broadcast result")
}

func (s *Sessions) deliver(sid domain.ConnID, e *sessionEntry, frame core.Frame) bool {
	err := e.Conn.TrySend(frame)
	if err == nil {
		return true
	}
	if !errors.Is(err, core.ErrBackpressure) {
		log.Debug().Err(err).Str("module", "app.sessions").Str("sid", string(sid)).Msg("send on dead connection")
		return false
	}
	switch s.Policy.OnBackPressure(sid) {
	case KickMember:
		log.Warn().Str("module", "app.sessions").Str("sid", string(sid)).Msg("slow peer, closing connection")
		if e.Cancel != nil {
			e.Cancel()
		}
		e.Conn.Close()
	case DropFrame:
		log.Warn().Str("module", "app.sessions").Str("sid", string(sid)).Msg("slow peer, dropping frame")
	case NoAction:
	}
	return false
}

func encode(ev core.Event) (core.Frame, bool) {
	frame, err := ev.Encode()
	if err != nil {
		log.Error().Err(err).Str("module", "app.sessions").Str("type", ev.Type).Msg("encode event")
		return nil, false
	}
	return frame, true
}
