package domain

// ConnState is the lifecycle position of one connection.
// Connected -> Joined -> Disconnected, or Connected -> Disconnected.
type ConnState int

const (
	StateConnected ConnState = iota
	StateJoined
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
