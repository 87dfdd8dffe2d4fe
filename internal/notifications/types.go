// Package notifications tells the artist about new commission requests,
// keeping every notice in the database and posting it to a webhook.
package notifications

import "time"

// Severity indicates how soon the artist should look.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityUrgent Severity = "urgent"
)

// Type categorises what triggered the notification.
type Type string

const (
	TypeCommissionReceived Type = "commission_received"
)

// Notification is a single stored notice.
type Notification struct {
	ID       string   `json:"id"`
	Type     Type     `json:"type"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	// SubjectID is the id of the record the notice is about.
	SubjectID string    `json:"subject_id,omitempty"`
	Delivered bool      `json:"delivered"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// webhookPayload is what the webhook receives. Text makes the post readable
// by chat incoming-webhooks that only look at that field.
type webhookPayload struct {
	Notification
	Text string `json:"text"`
}
