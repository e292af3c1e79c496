package calculation

import (
	"fmt"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
)

// Training compensation line notes
const (
	NoteEntitledFirstDeparture = "entitled (first departure)"
	NoteEntitledSeller         = "entitled (seller)"
	NoteAlreadyCompensated     = "already compensated by a prior transfer"
	NoteConflictExempt         = "exempt under conflict clause"
)

// Cost rules reported by ResolveCost
const (
	CostRuleReducedRate     = "reduced_rate"
	CostRuleCategoryAverage = "category_average"
	CostRuleDestinationRate = "destination_rate"
)

// CostResolution is the annual training cost for one period and how it was derived
type CostResolution struct {
	Cost              decimal.Decimal
	Rule              string
	DestinationBucket string
	PeriodBucket      string
}

// ResolveCost determines the per-annum training cost of a period.
//
//  1. Ages up to ReducedRateMaxAge use the lowest category rate of the
//     destination bucket, whatever the categories involved.
//  2. When both clubs sit in the high-cost bucket and the destination
//     category costs more than the period club's, the two rates are averaged.
//  3. Otherwise the destination category rate applies.
func ResolveCost(rules *domain.RegulatoryConfig, destCountry string, destCategory domain.Category, periodCountry string, periodCategory domain.Category, age int) CostResolution {
	res := CostResolution{
		DestinationBucket: rules.Bucket(destCountry),
		PeriodBucket:      rules.Bucket(periodCountry),
	}

	if age >= rules.Training.MinAge && age <= rules.Training.ReducedRateMaxAge {
		res.Cost, _ = rules.Rate(res.DestinationBucket, lowestCategory)
		res.Rule = CostRuleReducedRate
		return res
	}

	destRate, _ := rules.Rate(res.DestinationBucket, destCategory)

	if rules.IsHighCost(res.DestinationBucket) && rules.IsHighCost(res.PeriodBucket) {
		periodRate, _ := rules.Rate(res.PeriodBucket, periodCategory)
		if destRate.GreaterThan(periodRate) {
			res.Cost = destRate.Add(periodRate).Div(decimal.NewFromInt(2))
			res.Rule = CostRuleCategoryAverage
			return res
		}
	}

	res.Cost = destRate
	res.Rule = CostRuleDestinationRate
	return res
}

var lowestCategory = domain.Categories[len(domain.Categories)-1]

// TrainingInput carries what the training compensation calculator needs
// beyond the normalized periods
type TrainingInput struct {
	Classification      domain.Classification
	DestinationCountry  string
	DestinationCategory domain.Category
	ConflictException   bool
}

// CalculateTrainingCompensation assesses every period between the training
// age limits. Non-entitled and exempt periods still produce a zero line so the
// decision is visible in the audit; only entitled amounts reach the total.
func CalculateTrainingCompensation(periods []domain.RegistrationPeriod, in TrainingInput, rules *domain.RegulatoryConfig) domain.TrainingBreakdown {
	breakdown := domain.TrainingBreakdown{
		Lines: []domain.TrainingLine{},
		Total: decimal.Zero,
	}
	if !in.Classification.TrainingApplies() {
		return breakdown
	}

	daysPerYear := decimal.NewFromInt(int64(rules.DaysPerYear))
	sellerName := in.Classification.Seller.Name

	for _, p := range periods {
		if p.AgeAtStart < rules.Training.MinAge || p.AgeAtStart > rules.Training.MaxAge {
			continue
		}

		cost := ResolveCost(rules, in.DestinationCountry, in.DestinationCategory, p.Country, p.Category, p.AgeAtStart)
		line := domain.TrainingLine{
			Club:          p.Club,
			Age:           p.AgeAtStart,
			Category:      p.Category,
			CategoryLabel: fmt.Sprintf("Cat. %s (%d)", p.Category, p.AgeAtStart),
			Days:          p.Days,
			AnnualCost:    cost.Cost,
			Amount:        decimal.Zero,
		}

		switch {
		case in.ConflictException && rules.IsConflictAssociation(p.Country):
			line.Note = NoteConflictExempt
		case in.Classification.Type == domain.CaseFirstDeparture:
			line.Entitled = true
			line.Note = NoteEntitledFirstDeparture
		case SameClub(p.Club, sellerName, rules.Matching.SimilarityThreshold):
			line.Entitled = true
			line.Note = NoteEntitledSeller
		default:
			line.Note = NoteAlreadyCompensated
		}

		if line.Entitled {
			line.Amount = cost.Cost.Mul(decimal.NewFromInt(int64(p.Days))).Div(daysPerYear)
			breakdown.Total = breakdown.Total.Add(line.Amount)
		}
		breakdown.Lines = append(breakdown.Lines, line)
	}

	return breakdown
}
