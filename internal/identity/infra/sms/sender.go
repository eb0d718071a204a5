// Package sms simulates one-time code delivery. A real gateway slots in
// behind the same CodeSender port without touching the session manager.
package sms

import (
	"context"
	"log/slog"
	"time"
)

type SimulatedSender struct {
	log     *slog.Logger
	latency time.Duration
}

func NewSimulatedSender(log *slog.Logger, latency time.Duration) *SimulatedSender {
	return &SimulatedSender{log: log, latency: latency}
}

// Send logs the code instead of delivering it. The log line is how
// operators (and local development) read the code back.
func (s *SimulatedSender) Send(ctx context.Context, phone, code string) error {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	s.log.InfoContext(ctx, "otp issued",
		slog.String("phone", phone),
		slog.String("code", code),
	)
	return nil
}
