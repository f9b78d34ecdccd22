// Package notify sends transactional email through SMTP, Resend, or the
// log when neither is configured.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	"paxala/internal/config"

	mail "github.com/go-mail/mail/v2"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks Resend when an API key is set, then SMTP, then the log.
func New(cfg *config.Config, log *zap.Logger) Mailer {
	switch {
	case cfg.ResendAPIKey != "":
		log.Info("mail provider: resend")
		return NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	case cfg.SMTPHost != "":
		log.Info("mail provider: smtp", zap.String("host", cfg.SMTPHost))
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	default:
		log.Info("mail provider: log only")
		return NewLogMailer(log)
	}
}

type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	d := mail.NewDialer(host, port, user, pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{ServerName: host}
	return &SMTPMailer{dialer: d, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", msg.To...)
	message.SetHeader("Subject", msg.Subject)
	if msg.Text != "" {
		message.SetBody("text/plain", msg.Text)
		if msg.HTML != "" {
			message.AddAlternative("text/html", msg.HTML)
		}
	} else {
		message.SetBody("text/html", msg.HTML)
	}

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	if msg.HTML == "" && msg.Text == "" {
		return fmt.Errorf("email must have either an HTML or a text body")
	}
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log  *zap.Logger
	mu   sync.Mutex
	sent []Message
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("email (not sent)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

// Sent returns the messages logged so far.
func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
