// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/hourglass/timesheet/pkg/config"
)

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// New builds a mailer from the loaded application configuration.
func New() *SMTPMailer {
	smtpConfig := config.AppConfig.SMTP
	return &SMTPMailer{
		host:     smtpConfig.Host,
		port:     smtpConfig.Port,
		username: smtpConfig.Username,
		password: smtpConfig.Password,
		from:     smtpConfig.From,
	}
}

// SendPasswordResetCode emails a short-lived reset code to the user.
func (m *SMTPMailer) SendPasswordResetCode(to, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your reset code is %s. It expires in 10 minutes.", code)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body,
	))

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}
