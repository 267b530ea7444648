package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the structured log instead of a queue.
// Used when no AMQP broker is configured.
type LogSink struct{}

var _ Sink = LogSink{}

func (LogSink) Notify(ctx context.Context, owner, subject, body string) error {
	slog.InfoContext(ctx, "Notification (log only)",
		"owner", owner,
		"subject", subject,
		"body", body)
	return nil
}
