package compare

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON. Amounts are rounded to
// cents and written as numbers; the percentage keeps two decimals.
type JSONFormatter struct {
	Pretty bool
}

type comparisonReport struct {
	CaseFile     string          `json:"caseFile,omitempty"`
	CaseID       string          `json:"caseId"`
	BaseName     string          `json:"baseName"`
	Base         comparisonRow   `json:"baseResult"`
	Alternatives []comparisonRow `json:"alternativeResults"`
	Notes        []string        `json:"notes"`
}

type comparisonRow struct {
	Name            string      `json:"name"`
	Edition         string      `json:"edition,omitempty"`
	CaseType        string      `json:"caseType"`
	SolidarityTotal json.Number `json:"solidarityTotal"`
	TrainingTotal   json.Number `json:"trainingTotal"`
	GrandTotal      json.Number `json:"grandTotal"`
	Valid           bool        `json:"valid"`
	Errors          int         `json:"errors"`
	Warnings        int         `json:"warnings"`

	// Only set on alternatives
	Delta *comparisonDelta `json:"delta,omitempty"`
}

type comparisonDelta struct {
	Solidarity            json.Number `json:"solidarity"`
	Training              json.Number `json:"training"`
	GrandTotal            json.Number `json:"grandTotal"`
	GrandTotalPct         json.Number `json:"grandTotalPct"`
	ClassificationChanged bool        `json:"classificationChanged"`
	VerdictChanged        bool        `json:"verdictChanged"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	report := comparisonReport{
		CaseFile:     compSet.CaseFile,
		CaseID:       compSet.CaseID,
		BaseName:     compSet.BaseName,
		Base:         toRow(compSet.BaseResult),
		Alternatives: make([]comparisonRow, 0, len(compSet.AlternativeResults)),
		Notes:        compSet.Notes,
	}
	if report.Notes == nil {
		report.Notes = []string{}
	}
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		row := toRow(alt)
		row.Delta = &comparisonDelta{
			Solidarity:            cents(alt.SolidarityDiffFromBase),
			Training:              cents(alt.TrainingDiffFromBase),
			GrandTotal:            cents(alt.GrandDiffFromBase),
			GrandTotalPct:         cents(alt.GrandPctFromBase),
			ClassificationChanged: alt.ClassificationChanged,
			VerdictChanged:        alt.VerdictChanged,
		}
		report.Alternatives = append(report.Alternatives, row)
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func toRow(r *ComparisonResult) comparisonRow {
	if r == nil {
		return comparisonRow{}
	}
	return comparisonRow{
		Name:            r.Name,
		Edition:         r.Description,
		CaseType:        string(r.CaseType),
		SolidarityTotal: cents(r.SolidarityTotal),
		TrainingTotal:   cents(r.TrainingTotal),
		GrandTotal:      cents(r.GrandTotal),
		Valid:           r.Valid,
		Errors:          r.Errors,
		Warnings:        r.Warnings,
	}
}

func cents(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
