// Package mailer delivers outbound email over SMTP. Tracend only sends
// transactional mail (password reset codes), so the interface is a single
// Send method. Credentials and relay settings are injected configuration —
// never constants in code.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	gosmtp "net/smtp"
	"strings"
	"time"

	"github.com/Noor508/tracend/internal/config"
)

// Mailer is the interface the rest of the application uses to send email.
// Services depend on this, not on the SMTP implementation, so tests can
// substitute a fake.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// dialTimeout bounds connection establishment to the relay.
const dialTimeout = 10 * time.Second

// SMTPMailer implements Mailer against a configured SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTP creates a mailer from the given SMTP configuration.
func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a single HTML email to the given recipient. Returns an
// error when the relay is not configured or the delivery fails; the caller
// decides how that surfaces.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp relay is not configured")
	}

	from := mail.Address{Name: m.cfg.FromName, Address: m.cfg.FromAddress}

	// Build RFC 2822 message.
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	// Send based on encryption mode.
	switch m.cfg.Encryption {
	case "ssl":
		return m.sendSSL(addr, from.Address, to, msg.String())
	case "none":
		return m.sendPlain(addr, from.Address, to, msg.String())
	default: // "starttls"
		return m.sendStartTLS(addr, from.Address, to, msg.String())
	}
}

// sendStartTLS sends email using STARTTLS (port 587 typical).
func (m *SMTPMailer) sendStartTLS(addr, from, to, msg string) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	if m.cfg.Username != "" {
		auth := gosmtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authenticating: %w", err)
		}
	}

	return m.sendMessage(client, from, to, msg)
}

// sendSSL sends email using implicit SSL/TLS (port 465 typical).
func (m *SMTPMailer) sendSSL(addr, from, to, msg string) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: dialTimeout}, "tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("connecting to %s (SSL): %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if m.cfg.Username != "" {
		auth := gosmtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authenticating: %w", err)
		}
	}

	return m.sendMessage(client, from, to, msg)
}

// sendPlain sends email without encryption.
func (m *SMTPMailer) sendPlain(addr, from, to, msg string) error {
	var auth gosmtp.Auth
	if m.cfg.Username != "" {
		auth = gosmtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := gosmtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// sendMessage handles MAIL FROM, RCPT TO, DATA for an existing SMTP client.
func (m *SMTPMailer) sendMessage(client *gosmtp.Client, from, to, msg string) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO %s: %w", to, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing data: %w", err)
	}
	return client.Quit()
}
