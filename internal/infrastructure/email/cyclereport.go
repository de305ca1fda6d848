package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/shared/services/markdown"
)

// CycleReport summarises one expiring-notification dispatch cycle.
type CycleReport struct {
	CycleID       string
	StartedAt     time.Time
	FinishedAt    time.Time
	TotalExpiring int
	Sent          int
	Failed        int
	Skipped       int
	Deferred      int
	Failures      []ReportFailure
}

type ReportFailure struct {
	CustomerID string
	DiscordID  string
	Error      string
}

// CycleReportMailer e-mails cycle reports to the operators.
type CycleReportMailer struct {
	smtp       *SMTPEmailService
	markdown   markdown.MarkdownService
	recipients []string
	location   *time.Location
}

func NewCycleReportMailer(smtp *SMTPEmailService, md markdown.MarkdownService, recipients []string, loc *time.Location) *CycleReportMailer {
	if loc == nil {
		loc = time.UTC
	}
	return &CycleReportMailer{smtp: smtp, markdown: md, recipients: recipients, location: loc}
}

func (m *CycleReportMailer) SendCycleReport(_ context.Context, r CycleReport) error {
	body := RenderCycleReport(r, m.location)
	html, err := m.markdown.ToHTMLSanitized(body)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Nitro reminders: %d sent, %d failed", r.Sent, r.Failed)
	return m.smtp.SendEmail(m.recipients, subject, html, body)
}

// RenderCycleReport renders the report as GitHub-flavoured markdown.
func RenderCycleReport(r CycleReport, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Notification cycle `%s`\n\n", r.CycleID)
	fmt.Fprintf(&b, "Ran %s, took %s.\n\n",
		r.StartedAt.In(loc).Format("2006-01-02 15:04 MST"),
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	b.WriteString("| expiring | sent | failed | skipped | deferred |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n", r.TotalExpiring, r.Sent, r.Failed, r.Skipped, r.Deferred)

	if len(r.Failures) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "- `%s` (discord `%s`): %s\n", f.CustomerID, f.DiscordID, escapeInline(f.Error))
		}
	}
	return b.String()
}

func escapeInline(s string) string {
	return strings.NewReplacer("\n", " ", "|", `\|`, "`", "'").Replace(s)
}
