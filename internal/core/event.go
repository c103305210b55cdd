package core

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/domain"
)

// Inbound event names.
const (
	EvJoinUser     = "joinUser"
	EvChatMessage  = "chatMessage"
	EvUserTyping   = "userTyping"
	EvStopTyping   = "stopTyping"
	EvCallUser     = "callUser"
	EvAcceptCall   = "acceptCall"
	EvWebrtcOffer  = "webrtcOffer"
	EvWebrtcAnswer = "webrtcAnswer"
	EvIceCandidate = "iceCandidate"
	EvEndCall      = "endCall"
)

// Outbound event names. userTyping, stopTyping, webrtcOffer, webrtcAnswer
// and iceCandidate reuse the inbound names.
const (
	EvWelcome       = "welcome"
	EvUsernameTaken = "usernameTaken"
	EvUserJoined    = "userJoined"
	EvUserLeft      = "userLeft"
	EvUpdateUsers   = "updateUsers"
	EvNewMessage    = "newMessage"
	EvIncomingCall  = "incomingCall"
	EvCallAccepted  = "callAccepted"
	EvCallEnded     = "callEnded"
	EvError         = "error"
)

// Envelope is the inbound frame shape.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is the outbound frame shape.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func (e Event) Encode() (Frame, error) {
	return json.Marshal(e)
}

type ChatMessage struct {
	Username  domain.DisplayName `json:"username"`
	Message   string             `json:"message"`
	Timestamp string             `json:"timestamp"`
}

// CallPeer is carried by incomingCall and callAccepted.
type CallPeer struct {
	From   domain.DisplayName `json:"from"`
	FromID domain.ConnID      `json:"fromId"`
}

type OfferRelay struct {
	Offer json.RawMessage `json:"offer"`
	From  domain.ConnID   `json:"from"`
}

type AnswerRelay struct {
	Answer json.RawMessage `json:"answer"`
	From   domain.ConnID   `json:"from"`
}

type CandidateRelay struct {
	Candidate json.RawMessage `json:"candidate"`
	From      domain.ConnID   `json:"from"`
}

type CallEnded struct {
	From domain.ConnID `json:"from"`
}

type ErrorInfo struct {
	Message string `json:"message"`
}
