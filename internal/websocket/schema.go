package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionAckRead Action = "ack_read"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// AckReadRequest marks a delivered notification as read without a
// separate HTTP round-trip.
type AckReadRequest struct {
	Action         Action `json:"action"`
	NotificationID int    `json:"notification_id"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventNotification Event = "notification"
	EventUnreadCount  Event = "unread_count"
	EventPong         Event = "pong"
)

// NotificationEvent pushes a freshly stored notification to the client.
type NotificationEvent struct {
	Event    Event  `json:"event"`
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	Priority string `json:"priority"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	SentAt   string `json:"sent_at"`
}

// UnreadCountEvent is sent on connect and after every ack so the client
// can keep its badge in sync.
type UnreadCountEvent struct {
	Event  Event `json:"event"`
	Unread int   `json:"unread"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
