package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/opentransfer/internal/domain"
)

// CSVFormatter implements the flat CSV output (one row per line item)
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.AuditResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "Club", "Age", "Rate", "Days", "Amount", "Note"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(result.Solidarity.Lines)+len(result.TrainingCompensation.Lines)+8)
	for _, l := range result.Solidarity.Lines {
		rows = append(rows, []string{"solidarity", l.Club, strconv.Itoa(l.Age), FormatPercentage(l.Percentage), strconv.Itoa(l.Days), l.Amount.StringFixed(2), l.Note})
	}
	rows = append(rows, []string{"solidarity_total", "", "", "", "", result.Solidarity.Total.StringFixed(2), ""})

	for _, l := range result.TrainingCompensation.Lines {
		rows = append(rows, []string{"training", l.Club, strconv.Itoa(l.Age), l.CategoryLabel, strconv.Itoa(l.Days), l.Amount.StringFixed(2), l.Note})
	}
	rows = append(rows, []string{"training_total", "", "", "", "", result.TrainingCompensation.Total.StringFixed(2), ""})
	rows = append(rows, []string{"grand_total", "", "", "", "", result.GrandTotal().StringFixed(2), result.Classification.Label})

	for _, e := range result.Compliance.Errors {
		rows = append(rows, []string{"compliance_error", "", "", "", "", "", e})
	}
	for _, warn := range result.Compliance.Warnings {
		rows = append(rows, []string{"compliance_warning", "", "", "", "", "", warn})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
