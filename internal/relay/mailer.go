package relay

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/olivier-w/folio/internal/contact"
)

// Mailer delivers one contact message.
type Mailer interface {
	Send(m contact.Message) error
}

// SMTPMailer sends through an SMTP server with PLAIN auth.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
	To   string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer builds a mailer from the relay config.
func NewSMTPMailer(c Config) *SMTPMailer {
	return &SMTPMailer{
		Host: c.SMTPHost,
		Port: c.SMTPPort,
		User: c.SMTPUser,
		Pass: c.SMTPPass,
		From: c.EmailFrom,
		To:   c.EmailTo,
		send: smtp.SendMail,
	}
}

func (s *SMTPMailer) Send(m contact.Message) error {
	if s.User == "" || s.Pass == "" || s.To == "" {
		return ErrNotConfigured
	}
	from := s.From
	if from == "" {
		from = s.User
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := s.send(s.Host+":"+s.Port, auth, from, []string{s.To}, compose(from, s.To, m)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// compose renders m as a plain-text mail. Header values are stripped of
// line breaks so a submission cannot inject headers.
func compose(from, to string, m contact.Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Reply-To: " + oneLine(m.Email) + "\r\n")
	b.WriteString("Subject: New message from " + oneLine(m.Name) + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "From: %s (%s)\r\n\r\n%s\r\n", oneLine(m.Name), oneLine(m.Email), m.Message)
	return []byte(b.String())
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// logMailer is the development mailer: it logs and reports success.
type logMailer struct{}

func (logMailer) Send(m contact.Message) error {
	log.Printf("mock email from %s (%s): %q", m.Name, m.Email, m.Message)
	return nil
}
