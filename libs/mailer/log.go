package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// LogProvider is a fallback provider that logs emails instead of sending them.
type LogProvider struct {
	Logger *slog.Logger
}

func NewLogProvider(logger *slog.Logger) *LogProvider {
	return &LogProvider{Logger: logger}
}

func (l *LogProvider) Name() string {
	return "log"
}

// Send logs the message metadata and returns a fake message ID. Attachment bodies are
// summarized by name and size only.
func (l *LogProvider) Send(ctx context.Context, msg Message) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}

	fakeID := uuid.New().String()
	attachmentNames := make([]string, 0, len(msg.Attachments))
	attachmentBytes := 0
	for _, attachment := range msg.Attachments {
		attachmentNames = append(attachmentNames, attachment.Filename)
		attachmentBytes += len(attachment.Content)
	}

	l.Logger.InfoContext(ctx, "mailer: email logged (not sent)",
		"provider", "log",
		"from", msg.From,
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"html_length", len(msg.HTML),
		"text_length", len(msg.Text),
		"attachments", strings.Join(attachmentNames, ", "),
		"attachment_bytes", attachmentBytes,
		"fake_message_id", fakeID,
	)
	if msg.Text != "" {
		l.Logger.DebugContext(ctx, "mailer: email text body", "text", msg.Text)
	}
	return SendResult{ProviderMessageID: fmt.Sprintf("log-%s", fakeID)}, nil
}
