package mailer

import (
	"fmt"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendBikeSoldEmail(toEmail, bikeTitle string, price float64) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendBikeSoldEmail(toEmail, bikeTitle string, price float64) error {
	if m.cfg.Host == "" || m.cfg.SenderEmail == "" {
		return fmt.Errorf("SMTP configuration is incomplete")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your bike has been sold")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Good news! Your listing '%s' was just sold for %.2f.", bikeTitle, price))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send sold notification: %w", err)
	}
	return nil
}
