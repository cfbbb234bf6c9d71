package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing      Action = "ping"
	ActionHeartbeat Action = "heartbeat"
	ActionViolation Action = "violation"
)

// RequestPayload is the single client message shape; unused fields stay
// empty depending on the action.
type RequestPayload struct {
	Action Action `json:"action"`
	// Kind and Detail describe a violation event.
	Kind   string `json:"kind,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventAck       Event = "ack"
	EventPong      Event = "pong"
	EventCancelled Event = "cancelled"
)

// ViolationAck reports the new violation count after a violation action.
type ViolationAck struct {
	Event          Event `json:"event"`
	TabSwitchCount int   `json:"tab_switch_count"`
	Cancelled      bool  `json:"cancelled"`
}

type AckResponse struct {
	Event Event `json:"event"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
