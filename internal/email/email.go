// Package email envía recordatorios de invoices pendientes por SMTP.
package email

import (
	"crypto/tls"
	"fmt"
	"time"

	mail "github.com/go-mail/mail"
)

// Sender es la interfaz que consumen los handlers.
// nil o NopSender desactiva el envío (default en dev).
type Sender interface {
	Send(to, subject, htmlBody, textBody string) error
}

// Config del sender SMTP.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender implementa Sender con go-mail (STARTTLS negociado automáticamente).
type SMTPSender struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody, textBody string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	// multipart/alternative (txt + html) cuando hay ambos
	if textBody != "" {
		m.SetBody("text/plain", textBody)
		if htmlBody != "" {
			m.AddAlternative("text/html", htmlBody)
		}
	} else if htmlBody != "" {
		m.SetBody("text/html", htmlBody)
	}

	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: s.cfg.Host}
	d.Timeout = 10 * time.Second

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("email: send to %s: %w", to, err)
	}
	return nil
}

// NopSender descarta los envíos. Para dev y tests.
type NopSender struct{}

func (NopSender) Send(to, subject, htmlBody, textBody string) error { return nil }
