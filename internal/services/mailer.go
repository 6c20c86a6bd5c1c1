package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Mailer sends transactional mail over implicit TLS (port 465).
type Mailer struct {
	host     string
	port     string
	username string
	password string
}

func NewMailer(host, port, username, password string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password}
}

// Configured reports whether SMTP credentials were provided. When they were
// not, password-reset mail cannot be sent.
func (m *Mailer) Configured() bool {
	return m.host != "" && m.username != ""
}

// SendPasswordReset mails the reset link to a user.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password. The link expires in one hour.</p>`, resetURL)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp is not configured")
	}

	from := m.username
	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	conn, err := tls.Dial("tcp", m.host+":"+m.port, &tls.Config{ServerName: m.host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
