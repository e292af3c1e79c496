package compare

import (
	"fmt"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one case outcome under a given set of reference tables
type ComparisonResult struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Result      *domain.AuditResult `json:"-"`

	// Key figures
	CaseType        domain.CaseType `json:"caseType"`
	SolidarityTotal decimal.Decimal `json:"solidarityTotal"`
	TrainingTotal   decimal.Decimal `json:"trainingTotal"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	Valid           bool            `json:"valid"`
	Errors          int             `json:"errors"`
	Warnings        int             `json:"warnings"`

	// Comparison to base
	SolidarityDiffFromBase decimal.Decimal `json:"solidarityDiffFromBase"`
	TrainingDiffFromBase   decimal.Decimal `json:"trainingDiffFromBase"`
	GrandDiffFromBase      decimal.Decimal `json:"grandDiffFromBase"`
	GrandPctFromBase       decimal.Decimal `json:"grandPctFromBase"`
	ClassificationChanged  bool            `json:"classificationChanged"`
	VerdictChanged         bool            `json:"verdictChanged"`
}

// ComparisonSet is a base outcome plus its alternatives
type ComparisonSet struct {
	CaseFile           string             `json:"caseFile"`
	CaseID             string             `json:"caseId"`
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Notes              []string           `json:"notes"`
}

// Summarize extracts the comparable figures of an audit result
func Summarize(name, description string, r *domain.AuditResult) ComparisonResult {
	return ComparisonResult{
		Name:            name,
		Description:     description,
		Result:          r,
		CaseType:        r.Classification.Type,
		SolidarityTotal: r.Solidarity.Total,
		TrainingTotal:   r.TrainingCompensation.Total,
		GrandTotal:      r.GrandTotal(),
		Valid:           r.Compliance.Valid,
		Errors:          len(r.Compliance.Errors),
		Warnings:        len(r.Compliance.Warnings),
	}
}

// CalculateComparison computes the differences between an alternative and the base
func CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.SolidarityDiffFromBase = alt.SolidarityTotal.Sub(base.SolidarityTotal)
	alt.TrainingDiffFromBase = alt.TrainingTotal.Sub(base.TrainingTotal)
	alt.GrandDiffFromBase = alt.GrandTotal.Sub(base.GrandTotal)

	if !base.GrandTotal.IsZero() {
		alt.GrandPctFromBase = alt.GrandDiffFromBase.
			Div(base.GrandTotal).
			Mul(decimal.NewFromInt(100))
	}

	alt.ClassificationChanged = alt.CaseType != base.CaseType
	alt.VerdictChanged = alt.Valid != base.Valid
	return alt
}

// GenerateNotes describes the alternatives that differ materially from the base
func GenerateNotes(cs *ComparisonSet) []string {
	notes := []string{}

	for _, alt := range cs.AlternativeResults {
		if alt.ClassificationChanged {
			notes = append(notes, fmt.Sprintf("%s: case classified as %s instead of %s",
				alt.Name, alt.CaseType, cs.BaseResult.CaseType))
		}
		if alt.VerdictChanged {
			verdict := "BLOCKED"
			if alt.Valid {
				verdict = "VALID"
			}
			notes = append(notes, fmt.Sprintf("%s: compliance verdict becomes %s", alt.Name, verdict))
		}
	}

	if len(cs.AlternativeResults) == 0 {
		return notes
	}

	highest := cs.BaseResult
	for i := range cs.AlternativeResults {
		if cs.AlternativeResults[i].GrandTotal.GreaterThan(highest.GrandTotal) {
			highest = &cs.AlternativeResults[i]
		}
	}
	if highest != cs.BaseResult {
		notes = append(notes, fmt.Sprintf("Highest entitlement: %s adds %s over %s",
			highest.Name, highest.GrandDiffFromBase.StringFixed(2), cs.BaseName))
	}

	return notes
}
