// Package email envía los correos transaccionales (verificación y reset).
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	mail "github.com/go-mail/mail"
	"go.uber.org/zap"

	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// Message es un correo multipart/alternative (txt + html).
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

type SMTPConfig struct {
	Host               string
	Port               int
	From               string
	User               string
	Pass               string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

// SMTPSender envía con go-mail. Un dialer por proceso.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *mail.Dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify, // sólo dev
	}
	switch cfg.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}
		d.StartTLSPolicy = mail.NoStartTLS
	case "starttls":
		d.StartTLSPolicy = mail.MandatoryStartTLS
	default:
		// "auto": go-mail negocia STARTTLS si el server lo ofrece
	}
	return &SMTPSender{cfg: cfg, dialer: d}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	log := logger.From(ctx).With(logger.Component("email.smtp"), logger.Email(msg.To))

	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		if msg.Text == "" {
			m.SetBody("text/html", msg.HTML)
		} else {
			m.AddAlternative("text/html", msg.HTML)
		}
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error("smtp send failed", logger.Err(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	log.Info("smtp send ok", zap.String("subject", msg.Subject))
	return nil
}

// LogSender no envía nada: registra el correo en el log. Se usa cuando no hay
// SMTP configurado.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, m Message) error {
	logger.From(ctx).Info("email not sent (no smtp configured)",
		logger.Component("email.log"), logger.Email(m.To), zap.String("subject", m.Subject))
	return nil
}

// Recorder guarda los mensajes en memoria (tests).
type Recorder struct {
	mu   sync.Mutex
	sent []Message
}

func (r *Recorder) Send(_ context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Message{}, false
	}
	return r.sent[len(r.sent)-1], true
}
