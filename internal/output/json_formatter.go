package output

import (
	"encoding/json"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter renders the result record consumed by the report layer.
// Amounts are rounded to two decimals here and nowhere else.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	CaseID               string          `json:"case_id"`
	Kind                 domain.CaseKind `json:"kind"`
	Currency             string          `json:"currency,omitempty"`
	CaseClassification   string          `json:"case_classification"`
	CaseType             domain.CaseType `json:"case_type"`
	AgeAtTransfer        int             `json:"age_at_transfer"`
	Seller               domain.Club     `json:"seller"`
	Solidarity           jsonSolidarity  `json:"solidarity"`
	TrainingCompensation jsonTraining    `json:"training_compensation"`
	GrandTotal           json.Number     `json:"grand_total"`
	Compliance           jsonCompliance  `json:"compliance"`
	SkippedPeriods       []jsonSkipped   `json:"skipped_periods"`
}

type jsonSolidarity struct {
	Lines []jsonSolidarityLine `json:"lines"`
	Total json.Number          `json:"total"`
}

type jsonSolidarityLine struct {
	Club   string      `json:"club"`
	Age    int         `json:"age"`
	Pct    json.Number `json:"pct"`
	Amount json.Number `json:"amount"`
	Note   string      `json:"note"`
}

type jsonTraining struct {
	Lines []jsonTrainingLine `json:"lines"`
	Total json.Number        `json:"total"`
}

type jsonTrainingLine struct {
	Club     string      `json:"club"`
	Age      int         `json:"age"`
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
	Note     string      `json:"note"`
}

type jsonCompliance struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Valid    bool     `json:"valid"`
}

type jsonSkipped struct {
	Index  int    `json:"index"`
	Club   string `json:"club"`
	Reason string `json:"reason"`
}

func (j JSONFormatter) Format(result *domain.AuditResult) ([]byte, error) {
	report := jsonReport{
		CaseID:             result.CaseID,
		Kind:               result.Kind,
		Currency:           result.Currency,
		CaseClassification: result.Classification.Label,
		CaseType:           result.Classification.Type,
		AgeAtTransfer:      result.Classification.AgeAtTransfer,
		Seller:             result.Classification.Seller,
		Solidarity: jsonSolidarity{
			Lines: make([]jsonSolidarityLine, 0, len(result.Solidarity.Lines)),
			Total: money(result.Solidarity.Total),
		},
		TrainingCompensation: jsonTraining{
			Lines: make([]jsonTrainingLine, 0, len(result.TrainingCompensation.Lines)),
			Total: money(result.TrainingCompensation.Total),
		},
		GrandTotal: money(result.GrandTotal()),
		Compliance: jsonCompliance{
			Errors:   nonNil(result.Compliance.Errors),
			Warnings: nonNil(result.Compliance.Warnings),
			Valid:    result.Compliance.Valid,
		},
		SkippedPeriods: make([]jsonSkipped, 0, len(result.Skipped)),
	}

	for _, l := range result.Solidarity.Lines {
		report.Solidarity.Lines = append(report.Solidarity.Lines, jsonSolidarityLine{
			Club:   l.Club,
			Age:    l.Age,
			Pct:    json.Number(l.Percentage.String()),
			Amount: money(l.Amount),
			Note:   l.Note,
		})
	}
	for _, l := range result.TrainingCompensation.Lines {
		report.TrainingCompensation.Lines = append(report.TrainingCompensation.Lines, jsonTrainingLine{
			Club:     l.Club,
			Age:      l.Age,
			Category: l.CategoryLabel,
			Amount:   money(l.Amount),
			Note:     l.Note,
		})
	}
	for _, s := range result.Skipped {
		report.SkippedPeriods = append(report.SkippedPeriods, jsonSkipped(s))
	}

	return json.MarshalIndent(report, "", "  ")
}

// money renders an amount as a JSON number rounded to cents
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
