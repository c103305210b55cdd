package core

import (
	"context"

	"github.com/dkeye/Huddle/internal/domain"
)

// Sink delivers outbound events. Delivery is best-effort and never blocks.
type Sink interface {
	Unicast(to domain.ConnID, ev Event)
	Broadcast(ev Event)
	BroadcastExcept(except domain.ConnID, ev Event)
}

// SessionTable is the set of live transports, addressable as a Sink.
type SessionTable interface {
	Sink
	Bind(sid domain.ConnID, conn SignalConnection, cancel context.CancelFunc)
	Unbind(sid domain.ConnID)
	Count() int
}
