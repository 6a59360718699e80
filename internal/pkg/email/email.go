package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/config"
)

const maxRetries = 3

// Sender delivers workflow mail. Callers treat failures as non-fatal.
type Sender interface {
	SendWorkflowUpdate(to []string, subject string, lines []string) error
}

type smtpSender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) Sender {
	return &smtpSender{cfg: cfg}
}

// SendWorkflowUpdate sends a plain-text mail to each recipient, retrying
// transient failures. An empty SMTP host disables delivery entirely.
func (s *smtpSender) SendWorkflowUpdate(to []string, subject string, lines []string) error {
	if s.cfg.Host == "" {
		slog.Debug("smtp disabled, skipping mail", "subject", subject)
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.From),
		fmt.Sprintf("To: %s", strings.Join(to, ", ")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		strings.Join(lines, "\r\n"),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg))
		if err == nil {
			return nil
		}
		slog.Warn("smtp send failed", "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	return fmt.Errorf("failed to send mail after %d attempts: %w", maxRetries, err)
}
