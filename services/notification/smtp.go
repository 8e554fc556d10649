package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"voltpath/models"
)

// SMTPConfig carries the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPDispatcher implements Dispatcher over a plain SMTP relay.
type SMTPDispatcher struct {
	cfg SMTPConfig
}

// NewSMTPDispatcher creates a Dispatcher backed by the given relay.
func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg}
}

// SendWelcomeEmail sends the post-signup welcome message.
func (d *SMTPDispatcher) SendWelcomeEmail(ctx context.Context, payload models.WelcomeEmailPayload) error {
	subject := "Welcome to Voltpath"
	body := fmt.Sprintf(
		"<h2>Welcome, %s!</h2>"+
			"<p>Your account is ready. Head back to the app to pick up where you left off.</p>",
		payload.FullName,
	)

	auth := smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)
	addr := fmt.Sprintf("%s:%d", d.cfg.Host, d.cfg.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s\r\n%s", payload.Email, subject, mime, body))

	return smtp.SendMail(addr, auth, d.cfg.From, []string{payload.Email}, msg)
}
