package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/nutri-api/internal/config"
	"github.com/deppfellow/nutri-api/internal/lib/email"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/smartystreets/goconvey/convey"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestClient(t *testing.T) {
	logger := zerolog.Nop()

	convey.Convey("Given a client without an API key", t, func() {
		client := email.NewClient(config.Default(), &logger)

		convey.Convey("Then delivery is disabled and sending is a no-op", func() {
			convey.So(client.Enabled(), convey.ShouldBeFalse)
			convey.So(client.SendWelcomeEmail(context.Background(), "ana@example.com", "Ana", "pt-BR"), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a client over a sender", t, func() {
		sender := &fakeSender{}
		client := email.NewClientWithSender(sender, "Nutri <no-reply@nutri.dev>", &logger)

		convey.Convey("When the welcome email is sent in Portuguese", func() {
			err := client.SendWelcomeEmail(context.Background(), "ana@example.com", "Ana", "pt-BR")

			convey.Convey("Then one localized email goes to the user", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(sender.sent, convey.ShouldHaveLength, 1)
				convey.So(sender.sent[0].To, convey.ShouldResemble, []string{"ana@example.com"})
				convey.So(sender.sent[0].From, convey.ShouldEqual, "Nutri <no-reply@nutri.dev>")
				convey.So(sender.sent[0].Subject, convey.ShouldEqual, "Bem-vindo ao Nutri!")
				convey.So(sender.sent[0].Html, convey.ShouldContainSubstring, "Olá, Ana!")
			})
		})

		convey.Convey("When the language is English", func() {
			_ = client.SendWelcomeEmail(context.Background(), "bob@example.com", "Bob", "en-US")

			convey.Convey("Then the email is English", func() {
				convey.So(sender.sent[0].Subject, convey.ShouldEqual, "Welcome to Nutri!")
				convey.So(sender.sent[0].Html, convey.ShouldContainSubstring, "Hello, Bob!")
			})
		})

		convey.Convey("When the name carries markup", func() {
			_ = client.SendWelcomeEmail(context.Background(), "x@example.com", "<b>x</b>", "pt-BR")

			convey.Convey("Then it is escaped", func() {
				convey.So(sender.sent[0].Html, convey.ShouldNotContainSubstring, "<b>x</b>")
			})
		})

		convey.Convey("When the provider fails", func() {
			sender.err = errors.New("provider down")

			convey.Convey("Then the error is returned", func() {
				convey.So(client.SendWelcomeEmail(context.Background(), "a@example.com", "A", "pt-BR"), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("Then every template has a preview", func() {
			for tmpl := range email.PreviewData {
				html, err := client.Preview(tmpl)
				convey.So(err, convey.ShouldBeNil)
				convey.So(html, convey.ShouldNotBeEmpty)
			}
		})
	})
}
