package services

import (
	"context"
	"log/slog"
)

// PushSender delivers a push notification to a set of device tokens.
// Delivery is best-effort: implementations log failures and never return
// them, so a push problem cannot fail a committed workflow.
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string)
}

type logPushSender struct {
	logger *slog.Logger
}

// NewLogPushSender returns a PushSender that only logs. Used when no push
// provider is configured (for example in development).
func NewLogPushSender(logger *slog.Logger) PushSender {
	return &logPushSender{logger: logger}
}

func (s *logPushSender) Send(ctx context.Context, tokens []string, title, body string) {
	if len(tokens) == 0 {
		return
	}
	s.logger.Info("push notification skipped, no provider configured",
		slog.Int("tokens", len(tokens)),
		slog.String("title", title),
	)
}
