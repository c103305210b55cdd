package app

import (
	"testing"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/core/coretest"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/stretchr/testify/require"
)

func bindFake(s *Sessions) (domain.ConnID, *coretest.FakeConn) {
	sid := domain.NewConnID()
	conn := coretest.NewFakeConn()
	s.Bind(sid, conn, nil)
	return sid, conn
}

func TestSessions_Fanout(t *testing.T) {
	req := require.New(t)
	sessions := NewSessions(nil)
	a, connA := bindFake(sessions)
	_, connB := bindFake(sessions)
	_, connC := bindFake(sessions)

	sessions.Broadcast(core.Event{Type: "all"})
	sessions.BroadcastExcept(a, core.Event{Type: "others"})
	sessions.Unicast(a, core.Event{Type: "one"})

	req.Equal([]string{"all", "one"}, connA.Types())
	req.Equal([]string{"all", "others"}, connB.Types())
	req.Equal([]string{"all", "others"}, connC.Types())
	req.Equal(3, sessions.Count())
}

func TestSessions_UnicastUnknownTarget(t *testing.T) {
	sessions := NewSessions(nil)
	_, conn := bindFake(sessions)

	sessions.Unicast(domain.NewConnID(), core.Event{Type: "lost"})

	require.Empty(t, conn.Types())
}

func TestSessions_Unbind(t *testing.T) {
	req := require.New(t)
	sessions := NewSessions(nil)
	a, connA := bindFake(sessions)
	_, connB := bindFake(sessions)

	sessions.Unbind(a)
	sessions.Broadcast(core.Event{Type: "after"})

	req.Empty(connA.Types())
	req.Equal([]string{"after"}, connB.Types())
	req.Equal(1, sessions.Count())
}

func TestSessions_SlowPeer_Kick(t *testing.T) {
	req := require.New(t)
	sessions := NewSessions(SimplePolicy{Action: KickMember})
	canceled := false
	slow := coretest.NewFakeConn()
	slow.Capacity = 0
	sessions.Bind(domain.NewConnID(), slow, func() { canceled = true })
	_, fast := bindFake(sessions)

	// When the slow peer cannot take a frame
	sessions.Broadcast(core.Event{Type: "tick"})

	// Then it is closed while the fast peer is unaffected
	req.True(slow.Closed())
	req.True(canceled)
	req.Equal([]string{"tick"}, fast.Types())
}

func TestSessions_SlowPeer_Drop(t *testing.T) {
	req := require.New(t)
	sessions := NewSessions(SimplePolicy{Action: DropFrame})
	slow := coretest.NewFakeConn()
	slow.Capacity = 1
	sessions.Bind(domain.NewConnID(), slow, nil)

	sessions.Broadcast(core.Event{Type: "first"})
	sessions.Broadcast(core.Event{Type: "second"})

	req.False(slow.Closed())
	req.Equal([]string{"first"}, slow.Types())
}

func TestParsePolicy(t *testing.T) {
	req := require.New(t)

	p, err := ParsePolicy("kick")
	req.NoError(err)
	req.Equal(KickMember, p.OnBackPressure(""))

	p, err = ParsePolicy("")
	req.NoError(err)
	req.Equal(KickMember, p.OnBackPressure(""))

	p, err = ParsePolicy("drop")
	req.NoError(err)
	req.Equal(DropFrame, p.OnBackPressure(""))

	_, err = ParsePolicy("explode")
	req.Error(err)
}
