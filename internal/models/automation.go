package models

import "time"

// WebhookEvent identifies an event kind a webhook can subscribe to
type WebhookEvent string

const (
	EventMessageUpsert    WebhookEvent = "message.upsert"
	EventMessageUpdate    WebhookEvent = "message.update"
	EventConnectionUpdate WebhookEvent = "connection.update"
)

// Webhook is a stored target URL plus its event subscriptions.
// No delivery is performed; webhooks are configuration records only.
type Webhook struct {
	ID        string         `json:"id"`
	URL       string         `json:"url"`
	Name      string         `json:"name"`
	Events    []WebhookEvent `json:"events"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Clone returns a deep copy of the webhook with its own event slice.
func (w Webhook) Clone() Webhook {
	out := w
	if w.Events != nil {
		out.Events = append([]WebhookEvent(nil), w.Events...)
	}
	return out
}

// QuickReplyTemplate maps a slash shortcut to a canned message body
type QuickReplyTemplate struct {
	ID       string `json:"id"`
	Shortcut string `json:"shortcut"`
	Content  string `json:"content"`
}
