package models

// WebhookEndpoint is a tenant-configured subscription: a target URL plus a
// per-event-type opt-in map. An endpoint receives an event E iff
// IsActive && Events[E].
type WebhookEndpoint struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	URL       string          `json:"url"`
	IsActive  bool            `json:"is_active"`
	Events    map[string]bool `json:"events"` // JSON object in DB
	CreatedAt int64           `json:"created_at"`
	UpdatedAt int64           `json:"updated_at"`
}

// WebhookLog is the append-only record of one delivery attempt. Rows are
// never mutated; they only go away when the parent endpoint is deleted.
type WebhookLog struct {
	ID             string `json:"id"`
	EndpointID     string `json:"endpoint_id"`
	EventType      string `json:"event_type"`
	Payload        string `json:"payload"` // serialized event payload
	ResponseStatus int    `json:"response_status"`
	ResponseBody   string `json:"response_body"` // truncated to 500 chars
	Success        bool   `json:"success"`
	CreatedAt      int64  `json:"created_at"`
}
