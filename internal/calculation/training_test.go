package calculation

import (
	"testing"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCost(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()

	tests := []struct {
		name           string
		destCountry    string
		destCategory   domain.Category
		periodCountry  string
		periodCategory domain.Category
		age            int
		expectedCost   int64
		expectedRule   string
	}{
		{"reduced rate in high-cost destination", "ENG", domain.CategoryI, "ARG", domain.CategoryI, 14, 10000, CostRuleReducedRate},
		{"reduced rate in low-cost destination", "ARG", domain.CategoryI, "ESP", domain.CategoryI, 12, 2000, CostRuleReducedRate},
		{"average when both high-cost and destination costs more", "ENG", domain.CategoryI, "PRT", domain.CategoryII, 18, 75000, CostRuleCategoryAverage},
		{"destination rate when destination costs less", "ENG", domain.CategoryII, "PRT", domain.CategoryI, 18, 60000, CostRuleDestinationRate},
		{"destination rate when categories match", "ENG", domain.CategoryI, "ESP", domain.CategoryI, 19, 90000, CostRuleDestinationRate},
		{"destination rate when period club is low-cost", "ENG", domain.CategoryI, "ARG", domain.CategoryII, 18, 90000, CostRuleDestinationRate},
		{"destination rate in low-cost destination", "ARG", domain.CategoryI, "ESP", domain.CategoryIV, 18, 50000, CostRuleDestinationRate},
		{"reduced rate ends after 15", "BRA", domain.CategoryII, "BRA", domain.CategoryII, 16, 30000, CostRuleDestinationRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveCost(rules, tt.destCountry, tt.destCategory, tt.periodCountry, tt.periodCategory, tt.age)

			assert.True(t, res.Cost.Equal(decimal.NewFromInt(tt.expectedCost)), "expected %d, got %s", tt.expectedCost, res.Cost)
			assert.Equal(t, tt.expectedRule, res.Rule)
		})
	}
}

func TestResolveCost_ReportsBuckets(t *testing.T) {
	res := ResolveCost(domain.DefaultRegulatoryConfig(), "ENG", domain.CategoryI, "arg", domain.CategoryI, 18)

	assert.Equal(t, "UEFA", res.DestinationBucket)
	assert.Equal(t, "REST", res.PeriodBucket)
}

func TestCalculateTrainingCompensation_FirstDeparture(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	periods := []domain.RegistrationPeriod{
		period("Calchin", "ARG", domain.CategoryIV, date(2012, 1, 1), 365, 12),
		period("River Plate", "ARG", domain.CategoryI, date(2018, 1, 1), 365, 18),
		period("River Plate", "ARG", domain.CategoryI, date(2022, 1, 1), 365, 22),
		period("River Plate", "ARG", domain.CategoryI, date(2023, 1, 1), 180, 23),
	}
	in := TrainingInput{
		Classification:      domain.Classification{Type: domain.CaseFirstDeparture, Seller: domain.Club{Name: "River Plate", Country: "ARG"}},
		DestinationCountry:  "ENG",
		DestinationCategory: domain.CategoryI,
	}

	result := CalculateTrainingCompensation(periods, in, rules)

	require.Len(t, result.Lines, 2, "ages 22 and 23 are outside the training window")
	assert.True(t, result.Lines[0].Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "Cat. IV (12)", result.Lines[0].CategoryLabel)
	assert.True(t, result.Lines[1].Amount.Equal(decimal.NewFromInt(90000)))
	for _, line := range result.Lines {
		assert.True(t, line.Entitled)
		assert.Equal(t, NoteEntitledFirstDeparture, line.Note)
	}
	assert.True(t, result.Total.Equal(decimal.NewFromInt(100000)), "got %s", result.Total)
}

func TestCalculateTrainingCompensation_SubsequentOnlySeller(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	periods := []domain.RegistrationPeriod{
		period("FC Porto", "PRT", domain.CategoryI, date(2018, 1, 1), 365, 18),
		period("Sporting CP", "PRT", domain.CategoryI, date(2020, 1, 1), 365, 20),
	}
	in := TrainingInput{
		Classification:      domain.Classification{Type: domain.CaseSubsequent, Seller: domain.Club{Name: "Sporting CP", Country: "PRT"}},
		DestinationCountry:  "ENG",
		DestinationCategory: domain.CategoryI,
	}

	result := CalculateTrainingCompensation(periods, in, rules)

	require.Len(t, result.Lines, 2)

	porto := result.Lines[0]
	assert.False(t, porto.Entitled)
	assert.True(t, porto.Amount.IsZero())
	assert.Equal(t, NoteAlreadyCompensated, porto.Note)
	assert.True(t, porto.AnnualCost.Equal(decimal.NewFromInt(90000)), "cost is still reported for audit")

	sporting := result.Lines[1]
	assert.True(t, sporting.Entitled)
	assert.Equal(t, NoteEntitledSeller, sporting.Note)
	assert.True(t, sporting.Amount.Equal(decimal.NewFromInt(90000)))

	assert.True(t, result.Total.Equal(decimal.NewFromInt(90000)))
}

func TestCalculateTrainingCompensation_SellerMatchedFuzzily(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	periods := []domain.RegistrationPeriod{
		period("Benfica", "PRT", domain.CategoryI, date(2022, 7, 14), 201, 21),
	}
	in := TrainingInput{
		Classification:      domain.Classification{Type: domain.CaseSubsequent, Seller: domain.Club{Name: "SL Benfica", Country: "PRT"}},
		DestinationCountry:  "ENG",
		DestinationCategory: domain.CategoryI,
	}

	result := CalculateTrainingCompensation(periods, in, rules)

	require.Len(t, result.Lines, 1)
	assert.True(t, result.Lines[0].Entitled)
	assert.Equal(t, "49561.64", result.Total.StringFixed(2))
}

func TestCalculateTrainingCompensation_Veteran(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	periods := []domain.RegistrationPeriod{
		period("River Plate", "ARG", domain.CategoryI, date(2008, 1, 1), 365, 13),
	}
	in := TrainingInput{
		Classification:      domain.Classification{Type: domain.CaseVeteran},
		DestinationCountry:  "ENG",
		DestinationCategory: domain.CategoryI,
	}

	result := CalculateTrainingCompensation(periods, in, rules)

	assert.NotNil(t, result.Lines)
	assert.Empty(t, result.Lines)
	assert.True(t, result.Total.IsZero())
}

func TestCalculateTrainingCompensation_ConflictExemption(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	periods := []domain.RegistrationPeriod{
		period("Shakhtar", "UKR", domain.CategoryI, date(2019, 1, 1), 365, 19),
		period("Braga", "PRT", domain.CategoryII, date(2021, 1, 1), 365, 21),
	}
	in := TrainingInput{
		Classification:      domain.Classification{Type: domain.CaseFirstDeparture, Seller: domain.Club{Name: "Shakhtar", Country: "UKR"}},
		DestinationCountry:  "ESP",
		DestinationCategory: domain.CategoryI,
		ConflictException:   true,
	}

	result := CalculateTrainingCompensation(periods, in, rules)

	require.Len(t, result.Lines, 2)
	assert.Equal(t, NoteConflictExempt, result.Lines[0].Note)
	assert.True(t, result.Lines[0].Amount.IsZero())
	assert.False(t, result.Lines[0].Entitled)

	assert.Equal(t, NoteEntitledFirstDeparture, result.Lines[1].Note)
	assert.True(t, result.Lines[1].Amount.Equal(decimal.NewFromInt(75000)))
	assert.True(t, result.Total.Equal(decimal.NewFromInt(75000)))
}
