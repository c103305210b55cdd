package signal

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/app/orch"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/core/coretest"
	"github.com/stretchr/testify/require"
)

func newChatRoom(t *testing.T) (*SignalWSController, *coretest.FakeConn, *coretest.FakeConn) {
	t.Helper()
	o := orch.New(app.NewRegistry(), app.NewSessions(nil))
	alice, bob := coretest.NewFakeConn(), coretest.NewFakeConn()
	o.OnConnect("a", alice, nil)
	o.Join("a", "alice")
	o.OnConnect("b", bob, nil)
	o.Join("b", "bob")
	alice.Reset()
	bob.Reset()
	return NewSignalWSController(o, nil, Options{}), alice, bob
}

func TestHandleChatMessage_RelaysEmptyBody(t *testing.T) {
	for name, data := range map[string]json.RawMessage{
		"empty message": json.RawMessage(`{"message":""}`),
		"no message":    json.RawMessage(`{}`),
		"no data":       nil,
	} {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctl, alice, bob := newChatRoom(t)

			// When alice sends a chat frame without a body
			ctl.handleChatMessage("a", data)

			// Then everyone still gets it, stamped with her name
			for _, c := range []*coretest.FakeConn{alice, bob} {
				ev, ok := c.Last(core.EvNewMessage)
				req.True(ok)
				var msg core.ChatMessage
				req.NoError(json.Unmarshal(ev.Data, &msg))
				req.Equal("alice", string(msg.Username))
				req.Empty(msg.Message)
				req.NotEmpty(msg.Timestamp)
			}
		})
	}
}

func TestHandleChatMessage_MalformedDropped(t *testing.T) {
	ctl, alice, bob := newChatRoom(t)

	ctl.handleChatMessage("a", json.RawMessage(`{"message":`))

	require.Empty(t, alice.Types())
	require.Empty(t, bob.Types())
}
