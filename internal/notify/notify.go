// Package notify carries user-facing outcome events from the core services
// to whatever presentation layer is attached. The core only classifies the
// outcome; wording and display belong to the consumer.
package notify

import (
	"context"
	"log/slog"
)

type Kind string

const (
	LoginSucceeded  Kind = "login_succeeded"
	LoginFailed     Kind = "login_failed"
	SignupSucceeded Kind = "signup_succeeded"
	SignupFailed    Kind = "signup_failed"
	OTPSent         Kind = "otp_sent"
	OTPFailed       Kind = "otp_failed"
	LoggedOut       Kind = "logged_out"

	CartItemAdded   Kind = "cart_item_added"
	CartItemUpdated Kind = "cart_item_updated"
	CartItemRemoved Kind = "cart_item_removed"
	CartCleared     Kind = "cart_cleared"
)

type Event struct {
	Kind Kind
	// Subject names what the event is about: a display name, an artwork
	// title, a masked phone number.
	Subject string
}

type Sink interface {
	Publish(ctx context.Context, e Event)
}

// LogSink writes events to the structured log. It doubles as the default
// sink when no presentation layer is wired.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(ctx context.Context, e Event) {
	s.log.InfoContext(ctx, "outcome",
		slog.String("kind", string(e.Kind)),
		slog.String("subject", e.Subject),
	)
}

// Publish forwards to sink when one is attached.
func Publish(ctx context.Context, sink Sink, e Event) {
	if sink == nil {
		return
	}
	sink.Publish(ctx, e)
}
