package notification

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type smtpProvider struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPProvider returns the SMTP fallback provider.
func NewSMTPProvider(host string, port int, username, password, from string) Provider {
	return &smtpProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (p *smtpProvider) Name() string { return "smtp" }

func (p *smtpProvider) Send(ctx context.Context, to, subject, html string) (string, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(p.host, p.port, p.username, p.password)

	// gomail has no context support; run the send aside so a cancelled
	// caller is not stuck behind the SMTP dial.
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("failed to send email via smtp: %w", err)
		}
		return fmt.Sprintf("smtp-%d", time.Now().UnixNano()), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
