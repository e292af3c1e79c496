package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Tables",
		"Role",
		"Case Type",
		"Solidarity",
		"Training",
		"Grand Total",
		"Valid",
		"Errors",
		"Warnings",
		"Grand Diff from Base",
		"Grand % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, role string) []string {
	return []string{
		result.Name,
		role,
		string(result.CaseType),
		result.SolidarityTotal.StringFixed(2),
		result.TrainingTotal.StringFixed(2),
		result.GrandTotal.StringFixed(2),
		strconv.FormatBool(result.Valid),
		strconv.Itoa(result.Errors),
		strconv.Itoa(result.Warnings),
		result.GrandDiffFromBase.StringFixed(2),
		result.GrandPctFromBase.StringFixed(2),
	}
}
