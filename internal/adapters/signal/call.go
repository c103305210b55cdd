package signal

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleCallUser(sid domain.ConnID, data json.RawMessage) {
	var p callUserPayload
	if !ctl.decodeSignal(sid, "callUser", data, &p) {
		return
	}
	ctl.Orch.Invite(sid, domain.DisplayName(p.To))
}

func (ctl *SignalWSController) handleAcceptCall(sid domain.ConnID, data json.RawMessage) {
	var p acceptCallPayload
	if !ctl.decodeSignal(sid, "acceptCall", data, &p) {
		return
	}
	ctl.Orch.Accept(sid, domain.ConnID(p.CallerID))
}

func (ctl *SignalWSController) handleOffer(sid domain.ConnID, data json.RawMessage) {
	var p offerPayload
	if !ctl.decodeSignal(sid, "webrtcOffer", data, &p) {
		return
	}
	ctl.Orch.RelayOffer(sid, domain.ConnID(p.To), p.Offer)
}

func (ctl *SignalWSController) handleAnswer(sid domain.ConnID, data json.RawMessage) {
	var p answerPayload
	if !ctl.decodeSignal(sid, "webrtcAnswer", data, &p) {
		return
	}
	ctl.Orch.RelayAnswer(sid, domain.ConnID(p.To), p.Answer)
}

func (ctl *SignalWSController) handleCandidate(sid domain.ConnID, data json.RawMessage) {
	var p candidatePayload
	if !ctl.decodeSignal(sid, "iceCandidate", data, &p) {
		return
	}
	ctl.Orch.RelayCandidate(sid, domain.ConnID(p.To), p.Candidate)
}

func (ctl *SignalWSController) handleEndCall(sid domain.ConnID, data json.RawMessage) {
	var p endCallPayload
	if !ctl.decodeSignal(sid, "endCall", data, &p) {
		return
	}
	ctl.Orch.EndCall(sid, domain.ConnID(p.To))
}

// decodeSignal drops malformed signaling frames without telling the sender.
func (ctl *SignalWSController) decodeSignal(sid domain.ConnID, typ string, data json.RawMessage, v any) bool {
	if err := decodePayload(data, v); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("type", typ).Msg("bad signal payload")
		return false
	}
	return true
}
