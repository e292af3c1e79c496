package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a table comparing the case under each set of tables
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("REFERENCE TABLE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Case: %s\n", compSet.CaseID))
	if compSet.CaseFile != "" {
		sb.WriteString(fmt.Sprintf("Case file: %s\n", compSet.CaseFile))
	}
	sb.WriteString(fmt.Sprintf("Base tables: %s\n", compSet.BaseName))
	sb.WriteString("\n")

	nameWidth := 24
	typeWidth := 12
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		nameWidth, "Tables",
		typeWidth, "Case type",
		numWidth, "Solidarity",
		numWidth, "Training",
		numWidth, "Grand total"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, typeWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, typeWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			sb.WriteString(fmt.Sprintf("  Grand total:  %s%s (%s%%)\n",
				tf.deltaSymbol(alt.GrandDiffFromBase),
				tf.formatDecimal(alt.GrandDiffFromBase.Abs()),
				alt.GrandPctFromBase.StringFixed(1)))

			if !alt.SolidarityDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Solidarity:   %s%s\n",
					tf.deltaSymbol(alt.SolidarityDiffFromBase),
					tf.formatDecimal(alt.SolidarityDiffFromBase.Abs())))
			}
			if !alt.TrainingDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Training:     %s%s\n",
					tf.deltaSymbol(alt.TrainingDiffFromBase),
					tf.formatDecimal(alt.TrainingDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Notes) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, note := range compSet.Notes {
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, typeWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}
	if !result.Valid {
		name += " *"
	}

	return fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		typeWidth, string(result.CaseType),
		numWidth, tf.formatDecimal(result.SolidarityTotal),
		numWidth, tf.formatDecimal(result.TrainingTotal),
		numWidth, tf.formatDecimal(result.GrandTotal))
}

// formatDecimal formats an amount for display in thousands or millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the grand total changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.GrandDiffFromBase.IsPositive() {
			change = "+" + tf.formatDecimal(alt.GrandDiffFromBase)
		} else if alt.GrandDiffFromBase.IsNegative() {
			change = "-" + tf.formatDecimal(alt.GrandDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}
