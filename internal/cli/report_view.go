package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"timetracking/internal/config"
	"timetracking/internal/domain"
	"timetracking/internal/services"
)

// ReportView renders a report as text. Styling is dropped when the output is
// not a terminal.
type ReportView struct {
	dateFormat   string
	nameWidth    int
	dateStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	warningStyle lipgloss.Style
}

// NewReportView creates a view writing to out with the given display settings
func NewReportView(out io.Writer, display config.DisplayConfig) *ReportView {
	renderer := lipgloss.NewRenderer(out)
	return &ReportView{
		dateFormat:   display.DateFormat,
		nameWidth:    display.NameWidth,
		dateStyle:    renderer.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		headerStyle:  renderer.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		warningStyle: renderer.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Render formats warnings, active projects and the daily totals in that order
func (v *ReportView) Render(report *services.Report) string {
	var b strings.Builder

	for _, warning := range report.Warnings {
		b.WriteString(v.warningStyle.Render(warningMessage(warning)))
		b.WriteString("\n")
	}

	if len(report.Active) > 0 {
		b.WriteString(v.headerStyle.Render("Active projects:"))
		b.WriteString("\n")
		for _, active := range report.Active {
			v.writeRow(&b, active.Project, "since "+active.Since.Format(domain.TimestampLayout))
		}
	}

	for _, day := range report.Days {
		b.WriteString(v.dateStyle.Render(day.Date.Format(v.dateFormat)))
		b.WriteString("\n")
		for _, total := range day.Projects {
			v.writeRow(&b, total.Project, services.FormatDuration(total.Duration))
		}
	}

	return b.String()
}

func (v *ReportView) writeRow(b *strings.Builder, project, value string) {
	fmt.Fprintf(b, "\t%*s:  %s\n", v.nameWidth, project, value)
}

// warningMessage describes a span that was left out of the totals
func warningMessage(w services.SpanWarning) string {
	switch w.Kind {
	case services.SpanTooLong:
		return "Error: tracking up for more than a day: " + w.Line
	case services.SpanNegative:
		return "Error: tracking stopped before it started: " + w.Line
	case services.StopWithoutStart:
		return "Warning: stop without start: " + w.Line
	default:
		return "Warning: " + w.Line
	}
}
