package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun delivers through the Mailgun HTTP API. Tag, when set, labels every
// message for Mailgun's analytics.
type Mailgun struct {
	From    string
	Tag     string
	Timeout time.Duration

	api *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{From: from, Tag: "hrms", Timeout: 10 * time.Second, api: mg.NewMailgun(domain, apiKey)}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.api.NewMessage(m.From, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.Tag != "" {
		if err := msg.AddTag(m.Tag); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	if _, _, err := m.api.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}

var _ Sender = (*Mailgun)(nil)
