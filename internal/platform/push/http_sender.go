package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// HTTPSender delivers notifications by POSTing them to a push gateway.
type HTTPSender struct {
	gatewayURL string
	client     *http.Client
	logger     *slog.Logger
}

// NewHTTPSender creates a sender that posts messages to the given gateway URL.
// If logger is nil, a default logger will be used.
func NewHTTPSender(gatewayURL string, logger *slog.Logger) *HTTPSender {
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPSender{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(slog.String("component", "push_sender")),
	}
}

// Ensure HTTPSender implements Sender
var _ Sender = (*HTTPSender)(nil)

// Send implements Sender.Send by POSTing the message as JSON.
func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	if msg.Token == "" {
		return ErrMissingToken
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: encoding message: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("push gateway request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("push gateway rejected message",
			"status", resp.StatusCode)
		return fmt.Errorf("%w: gateway returned status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}

// LogSender is a Sender that only logs the message. It is used when push
// delivery is disabled in configuration, and in development environments.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that logs instead of delivering.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger.With(slog.String("component", "push_sender"))}
}

// Ensure LogSender implements Sender
var _ Sender = (*LogSender)(nil)

// Send implements Sender.Send by logging the would-be delivery.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if msg.Token == "" {
		return ErrMissingToken
	}

	s.logger.Info("push delivery disabled, logging notification",
		"title", msg.Title,
		"body", msg.Body)
	return nil
}
