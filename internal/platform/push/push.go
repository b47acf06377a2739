// Package push abstracts push-notification delivery. The scheduling
// subsystem only depends on the Sender contract; delivery itself is an
// external collaborator (a push gateway addressed by per-user device
// tokens).
package push

import (
	"context"
	"errors"
)

// Dispatch errors reported by senders. Senders never panic; every failure
// is reported as an error value so callers can apply their own policy.
var (
	// ErrMissingToken indicates the target user has no registered device
	// token, so there is nothing to address the notification to.
	ErrMissingToken = errors.New("no device token registered")

	// ErrDeliveryFailed indicates the gateway rejected or failed the send.
	ErrDeliveryFailed = errors.New("push delivery failed")
)

// Message is a single push notification addressed to one device.
type Message struct {
	// Token is the opaque delivery token identifying the target device.
	Token string `json:"token"`

	// Title and Body are the user-visible notification content.
	Title string `json:"title"`
	Body  string `json:"body"`

	// Data carries optional application metadata (e.g. the task id).
	Data map[string]string `json:"data,omitempty"`
}

// Sender delivers push notifications.
type Sender interface {
	// Send delivers the message. Failure is reported as the returned error,
	// never as a panic; callers decide whether a failure is retried.
	Send(ctx context.Context, msg Message) error
}
