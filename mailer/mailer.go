package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"sparkle/config"
)

// Send delivers a plain-text email through the configured SMTP relay.
// Returns an error when SMTP settings are absent so callers can decide
// whether a missing mail setup is fatal.
func Send(to, subject, body string) error {
	cfg := config.App
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return fmt.Errorf("email service is not configured")
	}

	msg := strings.Join([]string{
		"From: " + cfg.EmailFrom,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	return smtp.SendMail(addr, auth, cfg.EmailFrom, []string{to}, []byte(msg))
}

// SendPasswordReset mails the reset link for a freshly issued token.
func SendPasswordReset(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", config.App.FrontendURL, token)
	body := fmt.Sprintf(
		"You requested a password reset.\n\n"+
			"Open the link below to choose a new password. The link is valid for 15 minutes and can be used once.\n\n"+
			"%s\n\n"+
			"If you did not request this, you can ignore this email.",
		resetURL,
	)
	return Send(to, "Password Reset Request", body)
}
