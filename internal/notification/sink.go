// Package notification defines the outbound notification contract and an
// HTTP client implementation talking to the external notification
// service. Delivery semantics and storage belong to that service; this
// package hands messages over and proxies the per-user preference and
// history endpoints.
package notification

import (
	"context"

	"github.com/google/uuid"
)

// Message is one notification to deliver to a user.
type Message struct {
	UserID  uuid.UUID `json:"user_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

// Sink receives notifications produced by the workout core. Failures are
// reported to the caller but never roll back any workout or progress
// mutation.
type Sink interface {
	// Send hands one message to the notification service.
	Send(ctx context.Context, msg Message) error
}
