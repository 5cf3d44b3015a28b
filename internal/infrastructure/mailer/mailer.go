package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/baechuer/eventflow/internal/logger"
)

// Mailer delivers verification codes over SMTP. Without SMTP settings it
// runs in mock mode and logs the code instead, which is what local
// development wants anyway.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func New(cfg Config) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		host: cfg.Host,
		port: cfg.Port,
		user: cfg.Username,
		pass: cfg.Password,
		from: from,
	}
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.port != 0 && m.from != ""
}

func (m *Mailer) SendCode(ctx context.Context, to, code string) error {
	if !m.configured() {
		logger.WithCtx(ctx).Info().
			Str("to", to).
			Str("code", code).
			Msg("smtp not configured, verification code logged instead")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires shortly.", code))

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}
