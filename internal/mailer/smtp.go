package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	gomail "gopkg.in/mail.v2"
)

// SMTPClient sends enquiry mail through a plain SMTP relay. All mail
// goes to one configured inbox; the customer's address rides along as
// Reply-To so the sales team can answer directly.
type SMTPClient struct {
	dialer    *gomail.Dialer
	fromEmail string
	toEmail   string
}

func NewSMTPClient(host string, port int, username, password, fromEmail, toEmail string) (*SMTPClient, error) {
	if host == "" || fromEmail == "" || toEmail == "" {
		return nil, fmt.Errorf("smtp host, from and to addresses are required")
	}

	return &SMTPClient{
		dialer:    gomail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}, nil
}

func (c *SMTPClient) Send(templateFile, subject, replyTo string, data any) error {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return fmt.Errorf("parse mail template: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return fmt.Errorf("execute mail template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", c.fromEmail, FromName)
	msg.SetHeader("To", c.toEmail)
	msg.SetHeader("Subject", subject)
	if replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}
	msg.SetBody("text/html", body.String())

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if lastErr = c.dialer.DialAndSend(msg); lastErr == nil {
			return nil
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send enquiry after %d attempts: %w", maxRetries, lastErr)
}
