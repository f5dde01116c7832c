package services

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
)

type EmailConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	From      string
	ContactTo string
}

func (c EmailConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != ""
}

type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailService struct {
	cfg  EmailConfig
	send SendFunc
}

func NewEmailService(cfg EmailConfig) *EmailService {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &EmailService{cfg: cfg, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport, used by tests.
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

func (s *EmailService) SendingEmail(to, subject, body string) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("%w: incomplete SMTP configuration: host=%q, port=%q, username=%q",
			ErrEmail, s.cfg.Host, s.cfg.Port, s.cfg.Username)
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := "From: " + s.cfg.From + "\n" +
		"To: " + to + "\n" +
		"Subject: " + subject + "\n" +
		mime + "\n" +
		body

	if err := s.send(addr, auth, s.cfg.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("%w: %v", ErrEmail, err)
	}
	logrus.WithField("to", to).Info("email sent")
	return nil
}

// SendContact forwards a contact form submission to the site owner.
func (s *EmailService) SendContact(name, email, subject, message string) error {
	to := s.cfg.ContactTo
	if to == "" {
		to = s.cfg.From
	}
	if strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("%w: subject must be a single line", ErrInvalidInput)
	}
	body := "<p><strong>From:</strong> " + html.EscapeString(name) + " &lt;" + html.EscapeString(email) + "&gt;</p>" +
		"<p>" + strings.ReplaceAll(html.EscapeString(message), "\n", "<br>") + "</p>"
	return s.SendingEmail(to, "Portfolio Contact: "+subject, body)
}
