// Package notify defines the middleware collaborator that task processors
// use to forward their results.
package notify

import (
	"context"

	"github.com/benpate/rosetta/mapof"
	"github.com/google/uuid"
)

// Notification is one outbound middleware message
type Notification struct {
	DeliveryID string    // Unique identifier for this delivery
	Body       string    // Human-readable message body
	Data       mapof.Any // Additional attributes attached to the message
}

// New returns a Notification with a fresh delivery id
func New(body string, data mapof.Any) Notification {

	return Notification{
		DeliveryID: uuid.NewString(),
		Body:       body,
		Data:       data,
	}
}

// Notifier forwards a Notification to wherever outbound messages go
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
