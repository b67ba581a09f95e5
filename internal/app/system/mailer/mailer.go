// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is one outbound message. HTMLBody is optional; when present the
// message goes out as multipart/alternative.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers outbound email. The SMTP implementation is used in real
// deployments; Console logs instead of sending and is the default when no
// SMTP host is configured.
type Sender interface {
	Send(e Email) error
}

// SMTP sends mail through a plain SMTP relay (Mailpit locally, SES or any
// compatible provider in production).
type SMTP struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// NewSMTP constructs an SMTP sender.
func NewSMTP(host string, port int, user, pass, from, fromName string) *SMTP {
	return &SMTP{Host: host, Port: port, User: user, Pass: pass, From: from, FromName: fromName}
}

// Send delivers the message. Auth is skipped when no user is configured
// (local Mailpit has none).
func (s *SMTP) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	msg := buildMessage(s.From, s.FromName, e)
	if err := smtp.SendMail(addr, auth, s.From, []string{e.To}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}

// Console logs outbound mail instead of sending it. Used in development and
// in tests.
type Console struct {
	Log *zap.Logger
}

// NewConsole constructs a console sender.
func NewConsole(logger *zap.Logger) *Console {
	return &Console{Log: logger}
}

// Send logs the message and always succeeds.
func (c *Console) Send(e Email) error {
	c.Log.Info("mail (console sender, not delivered)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("text", e.TextBody))
	return nil
}

const boundary = "vitamove-alt-7f3b9c"

// buildMessage assembles the raw RFC 5322 message bytes.
func buildMessage(from, fromName string, e Email) []byte {
	var b strings.Builder

	if fromName != "" {
		fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, from)
	} else {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if e.HTMLBody == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(e.TextBody)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.TextBody)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.HTMLBody)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
