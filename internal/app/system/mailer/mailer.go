// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email (enrollment confirmations,
// payment receipts, password resets) over SMTP.
package mailer

import (
	"fmt"
	"math/rand"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Email is one outgoing message with both plain-text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers Email over a configured SMTP relay. When Host is empty
// the mailer runs in log-only mode, which is what dev environments use.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	log      *zap.Logger
}

func New(host string, port int, username, password, from, fromName string, log *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		log:      log,
	}
}

// Send delivers the message. Log-only mode never fails, so callers that
// treat mail as best-effort behave the same in dev and prod.
func (m *Mailer) Send(e Email) error {
	if m.host == "" {
		m.log.Info("mail (log-only mode)",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return nil
	}

	msg := m.buildMessage(e)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{e.To}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To, err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so clients
// can pick the HTML or text body.
func (m *Mailer) buildMessage(e Email) []byte {
	boundary := fmt.Sprintf("b%d%04d", time.Now().UnixNano(), rand.Intn(10000))

	var sb strings.Builder
	if m.fromName != "" {
		fmt.Fprintf(&sb, "From: %s <%s>\r\n", m.fromName, m.from)
	} else {
		fmt.Fprintf(&sb, "From: %s\r\n", m.from)
	}
	fmt.Fprintf(&sb, "To: %s\r\n", e.To)
	fmt.Fprintf(&sb, "Subject: %s\r\n", e.Subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	sb.WriteString("\r\n")

	fmt.Fprintf(&sb, "--%s\r\n", boundary)
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	sb.WriteString(e.TextBody)
	sb.WriteString("\r\n")

	if e.HTMLBody != "" {
		fmt.Fprintf(&sb, "--%s\r\n", boundary)
		sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		sb.WriteString(e.HTMLBody)
		sb.WriteString("\r\n")
	}
	fmt.Fprintf(&sb, "--%s--\r\n", boundary)

	return []byte(sb.String())
}
