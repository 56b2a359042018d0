package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"reportd/internal/report/util"
)

// Mailer delivers plain-text notification mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, text string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	return m.client.DialAndSendWithContext(ctx, msg)
}

// LogMailer logs instead of sending; used in debug mode so local runs never
// need SMTP credentials.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, text string) error {
	util.GetLogger().Info("email data", "to", to, "subject", subject, "text", text)
	return nil
}
