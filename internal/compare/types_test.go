package compare

import (
	"testing"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateComparison(t *testing.T) {
	base := ComparisonResult{
		Name:            "base",
		CaseType:        domain.CaseSubsequent,
		SolidarityTotal: decimal.NewFromInt(5000),
		TrainingTotal:   decimal.NewFromInt(5000),
		GrandTotal:      decimal.NewFromInt(10000),
		Valid:           true,
	}
	alt := ComparisonResult{
		Name:            "alt",
		CaseType:        domain.CaseFirstDeparture,
		SolidarityTotal: decimal.NewFromInt(5000),
		TrainingTotal:   decimal.NewFromInt(7500),
		GrandTotal:      decimal.NewFromInt(12500),
		Valid:           false,
	}

	got := CalculateComparison(alt, base)

	assert.True(t, got.SolidarityDiffFromBase.IsZero())
	assert.True(t, got.TrainingDiffFromBase.Equal(decimal.NewFromInt(2500)))
	assert.True(t, got.GrandDiffFromBase.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, "25.00", got.GrandPctFromBase.StringFixed(2))
	assert.True(t, got.ClassificationChanged)
	assert.True(t, got.VerdictChanged)
}

func TestCalculateComparison_ZeroBase(t *testing.T) {
	base := ComparisonResult{GrandTotal: decimal.Zero}
	alt := ComparisonResult{GrandTotal: decimal.NewFromInt(100)}

	got := CalculateComparison(alt, base)

	assert.True(t, got.GrandDiffFromBase.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.GrandPctFromBase.IsZero(), "No percentage against a zero base")
}

func TestGenerateNotes(t *testing.T) {
	base := &ComparisonResult{Name: "default", CaseType: domain.CaseSubsequent, GrandTotal: decimal.NewFromInt(1000), Valid: true}
	cs := &ComparisonSet{
		BaseName:   "default",
		BaseResult: base,
		AlternativeResults: []ComparisonResult{
			CalculateComparison(ComparisonResult{Name: "lower", CaseType: domain.CaseSubsequent, GrandTotal: decimal.NewFromInt(500), Valid: false}, *base),
			CalculateComparison(ComparisonResult{Name: "higher", CaseType: domain.CaseFirstDeparture, GrandTotal: decimal.NewFromInt(1500), Valid: true}, *base),
		},
	}

	notes := GenerateNotes(cs)

	assert.Equal(t, []string{
		"lower: compliance verdict becomes BLOCKED",
		"higher: case classified as first_departure instead of subsequent",
		"Highest entitlement: higher adds 500.00 over default",
	}, notes)
}

func TestGenerateNotes_NoAlternatives(t *testing.T) {
	cs := &ComparisonSet{BaseName: "default", BaseResult: &ComparisonResult{Name: "default"}}

	assert.Empty(t, GenerateNotes(cs))
}
