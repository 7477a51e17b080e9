package processor

import (
	"context"
	"log/slog"

	"github.com/arunvm123/bookingportal/notification-service/model"
)

// LogSender writes emails to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, email *model.EmailTemplate) error {
	s.logger.InfoContext(ctx, "mock email sent",
		"from", email.From,
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}
