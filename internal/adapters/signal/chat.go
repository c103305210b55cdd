package signal

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	sid domain.ConnID,
	conn *WsSignalConn,
	data json.RawMessage,
) {
	var name string
	if len(data) == 0 || json.Unmarshal(data, &name) != nil {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", name).Msg("join")
	ctl.Orch.Join(sid, name)
}

func (ctl *SignalWSController) handleChatMessage(sid domain.ConnID, data json.RawMessage) {
	var p chatPayload
	if len(data) == 0 {
		ctl.Orch.PostMessage(sid, p.Message)
		return
	}
	if err := decodePayload(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("chat message dropped")
		return
	}
	ctl.Orch.PostMessage(sid, p.Message)
}
