package notification

// Request is queued by services after a successful state change.
type Request struct {
	AgencyID    string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]any
}

// PushMessage is the payload handed to a Publisher.
type PushMessage struct {
	ID           string         `json:"id"`
	AgencyID     string         `json:"agency_id"`
	RecipientID  string         `json:"recipient_id,omitempty"`
	DeviceTokens []string       `json:"device_tokens,omitempty"`
	Type         Type           `json:"type"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	Data         map[string]any `json:"data,omitempty"`
	CreatedAt    string         `json:"created_at"`
}
