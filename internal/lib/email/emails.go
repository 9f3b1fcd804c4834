package email

import (
	"context"

	"github.com/deppfellow/nutri-api/internal/i18n"
)

// SendWelcomeEmail sends the welcome email to a newly registered user, in
// the language the account was created with.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name, lang string) error {
	tag, ok := i18n.ParseTag(lang)
	if !ok {
		tag = i18n.Portuguese
	}

	subject := i18n.T(tag, i18n.MsgEmailWelcomeSubject)
	data := map[string]string{
		"Lang":     tag.String(),
		"Subject":  subject,
		"UserName": name,
		"Greeting": i18n.T(tag, i18n.MsgEmailWelcomeGreeting, name),
		"Body":     i18n.T(tag, i18n.MsgEmailWelcomeBody),
	}

	return c.SendEmail(ctx, to, subject, TemplateWelcome, data)
}
