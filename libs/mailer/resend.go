package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendProvider sends emails via the Resend API.
type ResendProvider struct {
	client *resend.Client
}

func NewResendProvider(apiKey string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
	}
}

func (r *ResendProvider) Name() string {
	return "resend"
}

// Send sends an email via the Resend API.
func (r *ResendProvider) Send(ctx context.Context, msg Message) (SendResult, error) {
	sent, err := r.client.Emails.SendWithContext(ctx, buildResendRequest(msg))
	if err != nil {
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	return SendResult{ProviderMessageID: sent.Id}, nil
}

func buildResendRequest(msg Message) *resend.SendEmailRequest {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.Text != "" {
		params.Text = msg.Text
	}
	for _, attachment := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: attachment.Filename,
			Content:  attachment.Content,
		})
	}
	return params
}
