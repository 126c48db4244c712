package mailer

import (
	"fmt"
	"net/smtp"
	"os"
)

// Mailer sends plain-text mail over SMTP. Config is injected; there is no
// package-level transporter holding credentials.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func FromEnv() *Mailer {
	return &Mailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		From:     os.Getenv("SMTP_FROM"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

func (m *Mailer) Configured() bool {
	return m.Host != "" && m.From != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer not configured")
	}

	port := m.Port
	if port == "" {
		port = "587"
	}

	msg := []byte(Message(m.From, to, subject, body))
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+port, auth, m.From, []string{to}, msg)
}

// Message builds the raw RFC-822 payload.
func Message(from, to, subject, body string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, to, subject, body)
}

// ResetTokenBody is the password-reset OTP mail text.
func ResetTokenBody(token string) string {
	return fmt.Sprintf("Your password reset code is %s. It is valid for 10 minutes.", token)
}
