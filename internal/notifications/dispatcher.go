package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ziadkadry99/sketchbook/internal/commission"
)

// Dispatcher creates notifications and delivers them to the webhook.
type Dispatcher struct {
	store      *Store
	client     *http.Client
	webhookURL string
}

// NewDispatcher creates a Dispatcher backed by the given store. With an
// empty webhookURL notices are only stored.
func NewDispatcher(store *Store, webhookURL string) *Dispatcher {
	return &Dispatcher{
		store:      store,
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Dispatch persists a notification and sends it to the webhook.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) (*Notification, error) {
	stored, err := d.store.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	if d.webhookURL == "" {
		return stored, nil
	}
	return d.deliver(ctx, stored)
}

// Redeliver sends a stored notification again.
func (d *Dispatcher) Redeliver(ctx context.Context, id string) (*Notification, error) {
	n, err := d.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.webhookURL == "" {
		return n, fmt.Errorf("no webhook configured")
	}
	return d.deliver(ctx, n)
}

// RetryPending redelivers every undelivered notification and returns how
// many went through.
func (d *Dispatcher) RetryPending(ctx context.Context) (int, error) {
	if d.webhookURL == "" {
		return 0, nil
	}
	pending, err := d.store.GetPending(ctx)
	if err != nil {
		return 0, err
	}
	sent := 0
	for i := range pending {
		n, err := d.deliver(ctx, &pending[i])
		if err != nil {
			return sent, err
		}
		if n.Delivered {
			sent++
		}
	}
	return sent, nil
}

// deliver posts n and records the outcome. A webhook failure is stored on
// the notification, not returned.
func (d *Dispatcher) deliver(ctx context.Context, n *Notification) (*Notification, error) {
	payload, err := json.Marshal(webhookPayload{Notification: *n, Text: n.Title + "\n" + n.Message})
	if err != nil {
		return nil, err
	}
	if sendErr := d.SendWebhook(ctx, d.webhookURL, payload); sendErr != nil {
		log.Printf("notifications: delivering %s: %v", n.ID, sendErr)
		if err := d.store.MarkFailed(ctx, n.ID, sendErr); err != nil {
			return nil, err
		}
	} else if err := d.store.MarkDelivered(ctx, n.ID); err != nil {
		return nil, err
	}
	return d.store.GetByID(ctx, n.ID)
}

// SendWebhook POSTs payload to the given URL.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Notify tells the artist about a new commission request. Rush requests
// are urgent.
func (d *Dispatcher) Notify(ctx context.Context, req commission.Request) error {
	_, err := d.Dispatch(ctx, CommissionNotice(req))
	return err
}

// CommissionNotice builds the notification for a commission request.
func CommissionNotice(req commission.Request) Notification {
	n := Notification{
		Type:      TypeCommissionReceived,
		Severity:  SeverityInfo,
		SubjectID: req.ID,
		Title:     fmt.Sprintf("New %s commission from %s", req.ProjectType, req.Name),
	}
	msg := fmt.Sprintf("%s asked for a %s", req.Email, req.ProjectType)
	if req.Rush {
		n.Severity = SeverityUrgent
		msg += " with rush delivery"
	}
	if cents := commission.Quote(req); cents > 0 {
		msg += fmt.Sprintf(". Quote from $%d", cents/100)
	}
	msg += "."
	if req.Message != "" {
		msg += "\n\n" + req.Message
	}
	n.Message = msg
	return n
}
