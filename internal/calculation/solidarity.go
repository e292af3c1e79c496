package calculation

import (
	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
)

// NoteSolidarityOK is attached to every solidarity line
const NoteSolidarityOK = "OK"

// CalculateSolidarity distributes the solidarity contribution across periods.
// Each period earns its age band's percentage pro-rated by days; periods
// outside every band produce no line. Years the history does not cover are
// forfeited, never redistributed.
func CalculateSolidarity(periods []domain.RegistrationPeriod, amount decimal.Decimal, rules *domain.RegulatoryConfig) domain.SolidarityBreakdown {
	breakdown := domain.SolidarityBreakdown{
		Lines: []domain.SolidarityLine{},
		Total: decimal.Zero,
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return breakdown
	}

	// pct is expressed in percent, so the divisor folds in the /100
	divisor := decimal.NewFromInt(int64(100 * rules.DaysPerYear))

	for _, p := range periods {
		pct := rules.SolidarityPercentage(p.AgeAtStart)
		if pct.IsZero() {
			continue
		}

		share := amount.Mul(pct).Mul(decimal.NewFromInt(int64(p.Days))).Div(divisor)
		breakdown.Lines = append(breakdown.Lines, domain.SolidarityLine{
			Club:       p.Club,
			Age:        p.AgeAtStart,
			Percentage: pct,
			Days:       p.Days,
			Amount:     share,
			Note:       NoteSolidarityOK,
		})
		breakdown.Total = breakdown.Total.Add(share)
	}

	return breakdown
}
