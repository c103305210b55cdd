package app

import (
	"fmt"
	"sync"

	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Registry is the source of truth for who is online.
// Display names are unique among live participants.
type Registry struct {
	mu     sync.RWMutex
	order  []domain.ConnID
	byID   map[domain.ConnID]domain.Participant
	byName map[domain.DisplayName]domain.ConnID
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[domain.ConnID]domain.Participant),
		byName: make(map[domain.DisplayName]domain.ConnID),
	}
}

func (r *Registry) Register(sid domain.ConnID, name domain.DisplayName) (domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return domain.Participant{}, fmt.Errorf("register %q: %w", name, domain.ErrNameTaken)
	}
	if _, ok := r.byID[sid]; ok {
		return domain.Participant{}, fmt.Errorf("register %s: %w", sid, domain.ErrAlreadyJoined)
	}
	p := domain.Participant{ID: sid, Name: name}
	r.byID[sid] = p
	r.byName[name] = sid
	r.order = append(r.order, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("name", string(name)).Msg("registered participant")
	return p, nil
}

// Unregister is idempotent; ok is false when sid was not registered.
func (r *Registry) Unregister(sid domain.ConnID) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[sid]
	if !ok {
		return domain.Participant{}, false
	}
	delete(r.byID, sid)
	delete(r.byName, p.Name)
	r.order = lo.Without(r.order, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("name", string(p.Name)).Msg("unregistered participant")
	return p, true
}

func (r *Registry) FindByID(sid domain.ConnID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[sid]
	return p, ok
}

func (r *Registry) FindByName(name domain.DisplayName) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.byName[name]
	if !ok {
		return domain.Participant{}, false
	}
	return r.byID[sid], true
}

// ListDisplayNames returns names in join order.
func (r *Registry) ListDisplayNames() []domain.DisplayName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.order, func(sid domain.ConnID, _ int) domain.DisplayName {
		return r.byID[sid].Name
	})
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
