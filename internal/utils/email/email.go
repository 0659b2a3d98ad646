package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/avelier/forecast-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendScenarioReport sends the PDF projection report for a scenario as an
// email attachment.
func (s *Sender) SendScenarioReport(to, username, scenarioName string, pdfReport []byte) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Financial projection: %s", scenarioName)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Attached is the financial projection report for the scenario %q,\n"+
			"generated on %s.\n"+
			"All figures are model outputs based on the scenario's assumptions.\n"+
			"\nBest regards,\nForecast Service",
		username, scenarioName, time.Now().Format("2006-01-02 15:04:05"),
	)
	e.Text = []byte(body)

	filename := fmt.Sprintf("%s-projection.pdf", scenarioName)
	if _, err := e.Attach(bytes.NewReader(pdfReport), filename, "application/pdf"); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
