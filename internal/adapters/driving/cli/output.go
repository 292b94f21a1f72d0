package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/logger"
)

const (
	tagWidth     = 8
	summaryRule  = "============================="
	summaryTitle = "========== SUMMARY =========="
)

// palette holds the tag styles for one output stream. Colours are dropped
// automatically when the stream is not a terminal.
type palette struct {
	ok    lipgloss.Style
	fail  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		ok:    r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// tag renders "[OK]" style tags padded to a fixed width.
func (p palette) tag(style lipgloss.Style, label string) string {
	text := "[" + label + "]"
	pad := tagWidth - len(text)
	if pad < 1 {
		pad = 1
	}
	return style.Render(text) + fmt.Sprintf("%*s", pad, "")
}

// reportWriter renders validation reports as text.
type reportWriter struct {
	w      io.Writer
	pretty bool
	colors palette
}

func newReportWriter(w io.Writer, pretty bool) *reportWriter {
	return &reportWriter{w: w, pretty: pretty, colors: newPalette(w)}
}

func (rw *reportWriter) result(r domain.DocumentResult) {
	switch r.Status {
	case domain.StatusOK:
		fmt.Fprintf(rw.w, "%s%s  (type: %s)\n", rw.colors.tag(rw.colors.ok, "OK"), r.RelPath, r.Type)
	case domain.StatusFail:
		fmt.Fprintf(rw.w, "%s%s  (type: %s)\n", rw.colors.tag(rw.colors.fail, "FAIL"), r.RelPath, r.Type)
		for _, v := range r.Violations {
			if rw.pretty {
				fmt.Fprintf(rw.w, "       • %s\n", v)
			} else {
				fmt.Fprintf(rw.w, "       %s\n", v)
			}
		}
	case domain.StatusSkipped:
		fmt.Fprintf(rw.w, "%s%s  skipped: %s\n", rw.colors.tag(rw.colors.warn, "WARN"), r.RelPath, r.Reason)
	}
}

func (rw *reportWriter) summary(report *domain.ValidationReport) {
	fmt.Fprintln(rw.w)
	fmt.Fprintln(rw.w, summaryTitle)
	fmt.Fprintf(rw.w, "  Valid models  : %d\n", report.Passed)
	fmt.Fprintf(rw.w, "  Invalid models: %d\n", report.Failed)
	if report.Skipped > 0 {
		fmt.Fprintf(rw.w, "  Skipped files : %d\n", report.Skipped)
	}
	fmt.Fprintln(rw.w, summaryRule)
}

func (rw *reportWriter) report(report *domain.ValidationReport) {
	for _, r := range report.Results {
		rw.result(r)
	}
	rw.summary(report)
}

// logDiagnostics routes service diagnostics through the tagged logger.
func logDiagnostics(diags []domain.Diagnostic) {
	for _, d := range diags {
		switch d.Severity {
		case domain.SeverityWarn:
			logger.Warn("%s", d.Message)
		case domain.SeverityError:
			logger.Error("%s", d.Message)
		default:
			logger.Info("%s", d.Message)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
