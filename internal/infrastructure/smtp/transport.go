package smtp

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"outreach/internal/domain/outreach"
)

const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 587
)

// Transport sends each message over its own authenticated SMTP session
// (EHLO, STARTTLS, AUTH, MAIL/RCPT/DATA, QUIT).
type Transport struct {
	Host     string
	Port     int
	User     string
	Password string

	dial func(*gomail.Message) error
}

func NewTransport(host string, port int, user, password string) *Transport {
	t := &Transport{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
	t.dial = func(m *gomail.Message) error {
		return gomail.NewDialer(t.Host, t.Port, t.User, t.Password).DialAndSend(m)
	}
	return t
}

func (t *Transport) Send(ctx context.Context, msg outreach.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.dial(buildMessage(msg)); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

func buildMessage(msg outreach.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}
