// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders bodies from
// HTML templates embedded in the binary.
package email

import (
	"bytes"
	"context"

	"github.com/deppfellow/nutri-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Sender is the part of the Resend emails service the client uses.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and hands them to the provider.
type Client struct {
	sender Sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client. Without a Resend API key the client
// is disabled and sending is a logged no-op.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.sender = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	}
	return c
}

// NewClientWithSender creates a Client over a custom sender.
func NewClientWithSender(sender Sender, from string, logger *zerolog.Logger) *Client {
	return &Client{sender: sender, from: from, logger: logger}
}

// Enabled reports whether emails are actually delivered.
func (c *Client) Enabled() bool {
	return c.sender != nil
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Warn().
			Str("template", string(templateName)).
			Str("to", to).
			Msg("email delivery disabled, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.sender.SendWithContext(ctx, params); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	return nil
}
