package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/opentransfer/internal/domain"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorWarning = lipgloss.Color("#FFB454")
	ColorMuted   = lipgloss.Color("#6C6C6C")
)

// palette holds the styles used by the console report
type palette struct {
	title   lipgloss.Style
	section lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	total   lipgloss.Style
	muted   lipgloss.Style
	valid   lipgloss.Style
	blocked lipgloss.Style
	warning lipgloss.Style
}

func styledPalette() palette {
	return palette{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2),
		section: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginTop(1),
		header:  lipgloss.NewStyle().Bold(true).Underline(true),
		label:   lipgloss.NewStyle().Foreground(ColorMuted),
		total:   lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		valid:   lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
		blocked: lipgloss.NewStyle().Bold(true).Foreground(ColorDanger),
		warning: lipgloss.NewStyle().Foreground(ColorWarning),
	}
}

func plainPalette() palette {
	s := lipgloss.NewStyle()
	return palette{title: s, section: s, header: s, label: s, total: s, muted: s, valid: s, blocked: s, warning: s}
}

// ConsoleFormatter renders a human-readable audit for the terminal.
// Plain disables styling for piping into files.
type ConsoleFormatter struct {
	Plain bool
}

func (c ConsoleFormatter) Name() string {
	if c.Plain {
		return "console-plain"
	}
	return "console"
}

func (c ConsoleFormatter) Format(result *domain.AuditResult) ([]byte, error) {
	p := styledPalette()
	if c.Plain {
		p = plainPalette()
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, p.title.Render("TRANSFER COMPENSATION AUDIT"))
	writeCaseSummary(&buf, p, result)
	writeSolidarity(&buf, p, result)
	writeTraining(&buf, p, result)
	writeTotals(&buf, p, result)
	writeCompliance(&buf, p, result)

	return buf.Bytes(), nil
}

func writeCaseSummary(buf *bytes.Buffer, p palette, r *domain.AuditResult) {
	field := func(label, value string) {
		fmt.Fprintf(buf, "%s %s\n", p.label.Render(fmt.Sprintf("%-16s", label+":")), value)
	}

	fmt.Fprintln(buf)
	field("Case", fmt.Sprintf("%s (%s)", r.CaseID, r.Kind))
	if r.Player.Name != "" {
		field("Player", r.Player.Name)
	}
	field("Born", r.Player.BirthDate)
	field("Destination", fmt.Sprintf("%s (%s, category %s)", r.Destination.Name, r.Destination.Country, r.Destination.Category))
	field("Seller", fmt.Sprintf("%s (%s)", r.Classification.Seller.Name, r.Classification.Seller.Country))
	field("Transfer date", r.TransferDate.Format(domain.DateLayout))
	field("Amount", FormatCurrency(r.TransferAmount, r.Currency))
	field("Age at transfer", fmt.Sprintf("%d", r.Classification.AgeAtTransfer))
	field("Classification", r.Classification.Label)
}

func writeSolidarity(buf *bytes.Buffer, p palette, r *domain.AuditResult) {
	fmt.Fprintln(buf, p.section.Render("SOLIDARITY CONTRIBUTION"))
	if len(r.Solidarity.Lines) == 0 {
		fmt.Fprintln(buf, p.muted.Render("No period within the solidarity age bands."))
		return
	}
	fmt.Fprintln(buf, p.header.Render(fmt.Sprintf("%-28s %4s %6s %6s %18s  %s", "Club", "Age", "Pct", "Days", "Amount", "Note")))
	for _, l := range r.Solidarity.Lines {
		fmt.Fprintf(buf, "%-28s %4d %6s %6d %18s  %s\n",
			truncate(l.Club, 28), l.Age, FormatPercentage(l.Percentage), l.Days, FormatCurrency(l.Amount, ""), l.Note)
	}
	fmt.Fprintln(buf, p.total.Render(fmt.Sprintf("%-48s %18s", "Solidarity total", FormatCurrency(r.Solidarity.Total, ""))))
}

func writeTraining(buf *bytes.Buffer, p palette, r *domain.AuditResult) {
	fmt.Fprintln(buf, p.section.Render("TRAINING COMPENSATION"))
	if len(r.TrainingCompensation.Lines) == 0 {
		fmt.Fprintln(buf, p.muted.Render("Not applicable."))
		return
	}
	fmt.Fprintln(buf, p.header.Render(fmt.Sprintf("%-28s %-12s %6s %14s %18s  %s", "Club", "Category", "Days", "Annual cost", "Amount", "Note")))
	for _, l := range r.TrainingCompensation.Lines {
		line := fmt.Sprintf("%-28s %-12s %6d %14s %18s  %s",
			truncate(l.Club, 28), l.CategoryLabel, l.Days, FormatCurrency(l.AnnualCost, ""), FormatCurrency(l.Amount, ""), l.Note)
		if !l.Entitled {
			line = p.muted.Render(line)
		}
		fmt.Fprintln(buf, line)
	}
	fmt.Fprintln(buf, p.total.Render(fmt.Sprintf("%-62s %18s", "Training compensation total", FormatCurrency(r.TrainingCompensation.Total, ""))))
}

func writeTotals(buf *bytes.Buffer, p palette, r *domain.AuditResult) {
	fmt.Fprintln(buf, p.section.Render("TOTALS"))
	fmt.Fprintf(buf, "%-28s %s\n", "Solidarity:", FormatCurrency(r.Solidarity.Total, r.Currency))
	fmt.Fprintf(buf, "%-28s %s\n", "Training compensation:", FormatCurrency(r.TrainingCompensation.Total, r.Currency))
	fmt.Fprintln(buf, p.total.Render(fmt.Sprintf("%-28s %s", "Grand total:", FormatCurrency(r.GrandTotal(), r.Currency))))
}

func writeCompliance(buf *bytes.Buffer, p palette, r *domain.AuditResult) {
	fmt.Fprintln(buf, p.section.Render("COMPLIANCE"))
	if r.Compliance.Valid {
		fmt.Fprintln(buf, p.valid.Render("VALID"))
	} else {
		fmt.Fprintln(buf, p.blocked.Render("BLOCKED"))
	}
	for _, e := range r.Compliance.Errors {
		fmt.Fprintln(buf, p.blocked.Render("✗ "+e))
	}
	for _, w := range r.Compliance.Warnings {
		fmt.Fprintln(buf, p.warning.Render("! "+w))
	}
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
