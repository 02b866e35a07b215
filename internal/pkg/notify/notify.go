package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Notifier sends a short text message to the back office.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// New returns an SMTP notifier when a host and recipient are configured and
// a log-only notifier otherwise.
func New(cfg SMTPConfig) Notifier {
	if cfg.Host == "" || cfg.To == "" {
		return LogNotifier{}
	}
	return NewSMTPNotifier(cfg)
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPNotifier struct {
	dialer sender
	from   string
	to     string
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		to:     cfg.To,
	}
}

func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.from == "" {
		return errors.New("notify: no sender address configured")
	}
	return n.dialer.DialAndSend(n.message(subject, body))
}

func (n *SMTPNotifier) message(subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

// LogNotifier only logs notifications.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, subject, body string) error {
	log.Ctx(ctx).Info().Str("component", "notify").Str("subject", subject).Int("body_len", len(body)).Msg("notification (smtp disabled)")
	return nil
}
