package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	// ActionRefresh forces a fresh report, bypassing the cache.
	ActionRefresh Action = "refresh"
	ActionPing    Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReport Event = "report"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// ReportResponse carries one composed overview report to the client.
// Report is the JSON-encoded reporting.OverviewReport.
type ReportResponse struct {
	Event  Event       `json:"event"`
	Report interface{} `json:"report"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
