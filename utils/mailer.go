package utils

import (
	"fmt"

	"panditseva/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var mailDialer *gomail.Dialer

// InitMailer sets up the SMTP dialer used for outbound OTP mail.
func InitMailer() {
	cfg := config.AppConfig
	mailDialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
}

// SendMail sends a plain-text mail to the given address. In non-production
// environments without SMTP configured, the mail is logged instead of sent so
// local registration flows still work.
func SendMail(to, subject, body string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		GetLogger().Sugar().Infof("SMTP not configured, mail to %s: %s", to, body)
		return nil
	}
	if mailDialer == nil {
		InitMailer()
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.SMTPFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := mailDialer.DialAndSend(msg); err != nil {
		GetLogger().Error("Failed to send mail", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
