package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/cuongbtq/resume-analyzer-be/internal/analysis"
)

// Config holds SMTP delivery settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer delivers analysis results over SMTP. Delivery is best-effort:
// the pipeline records the returned error as data and never fails a job
// because of it.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
	logger *slog.Logger
}

// NewMailer creates a Mailer
func NewMailer(config Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		logger: logger,
	}
}

// Notify sends the analysis result to the recipient
func (m *Mailer) Notify(recipient string, result analysis.Result, jobRole string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject(jobRole))
	msg.SetBody("text/plain", renderBody(result, jobRole))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("Failed to send result email",
			slog.String("recipient", recipient),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("Result email sent",
		slog.String("recipient", recipient),
	)

	return nil
}

func subject(jobRole string) string {
	if role := strings.TrimSpace(jobRole); role != "" {
		return "Your resume analysis for " + role
	}
	return "Your resume analysis"
}

// renderBody formats the result as plain text, section per populated key
func renderBody(result analysis.Result, jobRole string) string {
	var b strings.Builder

	if role := strings.TrimSpace(jobRole); role != "" {
		fmt.Fprintf(&b, "Target role: %s\n\n", role)
	}

	if result.JobDescription != "" {
		fmt.Fprintf(&b, "Role overview:\n%s\n\n", result.JobDescription)
	}

	writeList(&b, "Strengths", result.Strength)
	writeList(&b, "Weaknesses", result.Weakness)
	writeList(&b, "Suggested changes", result.ChangesNeeded)

	fmt.Fprintf(&b, "Overall:\n%s\n", result.OverallSummary)

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	b.WriteString("\n")
}
