package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer delivers one-time verification codes. Implementations must
// return an error when delivery fails so the caller can roll back the
// stored code.
type Mailer interface {
	SendOTP(ctx context.Context, email, name, code string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	codeTTL  time.Duration
}

func NewSMTP(host string, port int, username, password, from string, codeTTL time.Duration) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		codeTTL:  codeTTL,
	}
}

func (m *SMTPMailer) SendOTP(_ context.Context, email, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires in %d minutes.</p>",
		name, code, int(m.codeTTL.Minutes()),
	))

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}

// ConsoleMailer logs codes instead of sending them. Used in dev and tests.
type ConsoleMailer struct {
	enabled bool
}

func NewConsole(enabled bool) *ConsoleMailer {
	return &ConsoleMailer{enabled: enabled}
}

func (m *ConsoleMailer) SendOTP(_ context.Context, email, _, code string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification code email=%s code=%s", email, code)
	}
	return nil
}
