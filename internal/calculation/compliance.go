package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
)

// ComplianceInput is the slice of a case the compliance screen looks at
type ComplianceInput struct {
	TransferDate       time.Time
	PriorMovementDate  *time.Time
	Amount             decimal.Decimal
	Seller             domain.Club
	DeclaredOrigin     *domain.Club
	ConflictException  bool
	PlayerAnnualSalary *decimal.Decimal
	Agents             []domain.AgentRecord
	Periods            []domain.RegistrationPeriod
	Skipped            []domain.SkippedPeriod
}

// ScreenCompliance runs every compliance check in a single pass. Findings are
// returned as data; they never stop the monetary breakdown.
func ScreenCompliance(in ComplianceInput, rules *domain.RegulatoryConfig) domain.ComplianceVerdict {
	verdict := domain.ComplianceVerdict{
		Errors:   []string{},
		Warnings: []string{},
		Valid:    true,
	}

	checkBridgeTransfer(&verdict, in, rules)
	checkConflictException(&verdict, in, rules)
	for _, agent := range in.Agents {
		checkAgentCommission(&verdict, agent, in.PlayerAnnualSalary, rules)
	}
	checkHistory(&verdict, in, rules)

	return verdict
}

// WeeksBetween returns the whole weeks elapsed from one date to another
func WeeksBetween(from, to time.Time) int {
	return int(to.Sub(from) / (7 * 24 * time.Hour))
}

// checkBridgeTransfer flags a move that follows the previous one too closely
func checkBridgeTransfer(v *domain.ComplianceVerdict, in ComplianceInput, rules *domain.RegulatoryConfig) {
	if in.PriorMovementDate == nil {
		return
	}
	weeks := WeeksBetween(*in.PriorMovementDate, in.TransferDate)
	if weeks < rules.Compliance.BridgeMinWeeks {
		v.AddError(fmt.Sprintf("bridge transfer suspected: %d weeks since the previous movement (minimum %d)",
			weeks, rules.Compliance.BridgeMinWeeks))
	}
}

// checkConflictException enforces the war/conflict clause
func checkConflictException(v *domain.ComplianceVerdict, in ComplianceInput, rules *domain.RegulatoryConfig) {
	if !in.ConflictException {
		return
	}
	if !rules.IsConflictAssociation(in.Seller.Country) {
		v.AddWarning(fmt.Sprintf("conflict exception flagged but origin association %s is not covered by the clause", in.Seller.Country))
		return
	}
	if !in.Amount.IsZero() {
		v.AddError(fmt.Sprintf("conflict exception: a move from %s under the conflict clause cannot carry a transfer fee (declared %s)",
			in.Seller.Country, in.Amount.StringFixed(2)))
	}
}

// checkAgentCommission validates one intermediary against its cap
func checkAgentCommission(v *domain.ComplianceVerdict, agent domain.AgentRecord, salary *decimal.Decimal, rules *domain.RegulatoryConfig) {
	caps := rules.Compliance.AgentCommissionCaps

	var limit decimal.Decimal
	switch agent.Role {
	case domain.RolePlayerAndOriginClub:
		v.AddError(fmt.Sprintf("agent %s: representing both the player and the origin club is not permitted", agent.Name))
		return
	case domain.RoleOriginClub:
		limit = caps.OriginClub
	case domain.RoleDual, domain.RolePlayer, domain.RoleDestinationClub:
		tier := caps.SingleParty
		if agent.Role == domain.RoleDual {
			tier = caps.Dual
		}
		if salary == nil {
			limit = tier.AtOrBelowThreshold
			v.AddWarning(fmt.Sprintf("agent %s: no player salary declared, applying the %s%% cap for salaries up to %s",
				agent.Name, limit.String(), caps.SalaryThreshold.String()))
		} else {
			limit = tier.For(*salary, caps.SalaryThreshold)
		}
	default:
		v.AddError(fmt.Sprintf("agent %s: unknown role %q", agent.Name, agent.Role))
		return
	}

	if agent.CommissionPct.GreaterThan(limit) {
		v.AddError(fmt.Sprintf("agent %s: commission %s%% exceeds the %s%% cap for role %s",
			agent.Name, agent.CommissionPct.String(), limit.String(), agent.Role))
	}
}

// checkHistory surfaces data-quality issues in the registration history
func checkHistory(v *domain.ComplianceVerdict, in ComplianceInput, rules *domain.RegulatoryConfig) {
	for _, s := range in.Skipped {
		v.AddWarning(fmt.Sprintf("registration record %d (%s) skipped: %s", s.Index, s.Club, s.Reason))
	}

	for i := 1; i < len(in.Periods); i++ {
		prev, cur := in.Periods[i-1], in.Periods[i]
		if !cur.StartDate.After(prev.EndDate) {
			v.AddWarning(fmt.Sprintf("registration periods overlap: %s (until %s) and %s (from %s)",
				prev.Club, prev.EndDate.Format(domain.DateLayout), cur.Club, cur.StartDate.Format(domain.DateLayout)))
		}
	}

	if in.DeclaredOrigin != nil && len(in.Periods) > 0 {
		last := in.Periods[len(in.Periods)-1]
		if !SameClub(in.DeclaredOrigin.Name, last.Club, rules.Matching.SimilarityThreshold) {
			v.AddWarning(fmt.Sprintf("declared seller %q does not match the last registered club %q", in.DeclaredOrigin.Name, last.Club))
		}
	}
}
