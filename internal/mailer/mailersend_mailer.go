package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendWelcomeEmail(toEmail, toName string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Welcome to EcoVolt"
	html := fmt.Sprintf(`
		<h2>Welcome to EcoVolt!</h2>
		<p>Hi %s,</p>
		<p>Your account is ready. Sign in to book a consultation or installation and track your appointments from the dashboard.</p>
	`, toName)
	text := fmt.Sprintf("Hi %s,\n\nYour EcoVolt account is ready. Sign in to book a consultation or installation and track your appointments from the dashboard.", toName)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendBookingConfirmation(toEmail, toName, serviceType, date, timeSlot string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("Your EcoVolt %s appointment", serviceType)
	html := fmt.Sprintf(`
		<h2>Appointment received</h2>
		<p>Hi %s,</p>
		<p>Your <strong>%s</strong> is booked for <strong>%s</strong> at <strong>%s</strong>.</p>
		<p>We'll be in touch to confirm the details.</p>
	`, toName, serviceType, date, timeSlot)
	text := fmt.Sprintf("Hi %s,\n\nYour %s is booked for %s at %s. We'll be in touch to confirm the details.", toName, serviceType, date, timeSlot)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
