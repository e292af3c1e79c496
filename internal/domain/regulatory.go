package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Age bases accepted by RegulatoryConfig.AgeBasis
const (
	AgeBasisCalendarYear = "calendar_year"
	AgeBasisExact        = "exact"
)

// RegulatoryConfig contains every reference table the engine consults.
// It is loaded from regulatory.yaml or built by DefaultRegulatoryConfig and
// is never modified once an engine holds it.
type RegulatoryConfig struct {
	Metadata    RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	AgeBasis    string             `yaml:"age_basis" json:"age_basis"`
	DaysPerYear int                `yaml:"days_per_year" json:"days_per_year"`
	Solidarity  SolidarityRules    `yaml:"solidarity" json:"solidarity"`
	Training    TrainingRules      `yaml:"training_compensation" json:"training_compensation"`
	Compliance  ComplianceRules    `yaml:"compliance" json:"compliance"`
	Matching    MatchingRules      `yaml:"matching" json:"matching"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	Edition     string `yaml:"edition" json:"edition"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// AgeBand maps an inclusive age range to a percentage of the transfer fee
type AgeBand struct {
	MinAge     int             `yaml:"min_age" json:"min_age"`
	MaxAge     int             `yaml:"max_age" json:"max_age"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
}

// SolidarityRules contains the solidarity contribution schedule
type SolidarityRules struct {
	Bands []AgeBand `yaml:"bands" json:"bands"`
}

// CategoryCosts maps each category to its annual training cost
type CategoryCosts map[Category]decimal.Decimal

// TrainingRules contains the training compensation cost tables
type TrainingRules struct {
	MinAge            int                      `yaml:"min_age" json:"min_age"`
	MaxAge            int                      `yaml:"max_age" json:"max_age"`
	ReducedRateMaxAge int                      `yaml:"reduced_rate_max_age" json:"reduced_rate_max_age"`
	MaxTransferAge    int                      `yaml:"max_transfer_age" json:"max_transfer_age"`
	HighCostBucket    string                   `yaml:"high_cost_bucket" json:"high_cost_bucket"`
	LowCostBucket     string                   `yaml:"low_cost_bucket" json:"low_cost_bucket"`
	HighCostCountries []string                 `yaml:"high_cost_countries" json:"high_cost_countries"`
	Costs             map[string]CategoryCosts `yaml:"costs" json:"costs"`
}

// TieredCap is a commission cap that depends on the player's annual salary
type TieredCap struct {
	AtOrBelowThreshold decimal.Decimal `yaml:"at_or_below_threshold" json:"at_or_below_threshold"`
	AboveThreshold     decimal.Decimal `yaml:"above_threshold" json:"above_threshold"`
}

// For returns the cap applicable to salary
func (tc TieredCap) For(salary, threshold decimal.Decimal) decimal.Decimal {
	if salary.GreaterThan(threshold) {
		return tc.AboveThreshold
	}
	return tc.AtOrBelowThreshold
}

// AgentCaps contains the commission ceilings per represented party, in percent
type AgentCaps struct {
	OriginClub      decimal.Decimal `yaml:"origin_club" json:"origin_club"`
	Dual            TieredCap       `yaml:"dual" json:"dual"`
	SingleParty     TieredCap       `yaml:"single_party" json:"single_party"`
	SalaryThreshold decimal.Decimal `yaml:"salary_threshold" json:"salary_threshold"`
}

// ComplianceRules contains the thresholds of the compliance screen
type ComplianceRules struct {
	BridgeMinWeeks       int       `yaml:"bridge_min_weeks" json:"bridge_min_weeks"`
	ConflictAssociations []string  `yaml:"conflict_associations" json:"conflict_associations"`
	AgentCommissionCaps  AgentCaps `yaml:"agent_commission_caps" json:"agent_commission_caps"`
}

// MatchingRules controls fuzzy club-name matching
type MatchingRules struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`
}

// DefaultRegulatoryConfig returns the built-in reference tables
func DefaultRegulatoryConfig() *RegulatoryConfig {
	return &RegulatoryConfig{
		Metadata: RegulatoryMetadata{
			Edition:     "RSTP-2024",
			LastUpdated: "2024-06-01",
			Description: "Solidarity schedule, training cost tables and compliance thresholds",
		},
		AgeBasis:    AgeBasisCalendarYear,
		DaysPerYear: 365,
		Solidarity: SolidarityRules{
			Bands: []AgeBand{
				{MinAge: 12, MaxAge: 15, Percentage: decimal.NewFromFloat(0.25)},
				{MinAge: 16, MaxAge: 23, Percentage: decimal.NewFromFloat(0.50)},
			},
		},
		Training: TrainingRules{
			MinAge:            12,
			MaxAge:            21,
			ReducedRateMaxAge: 15,
			MaxTransferAge:    23,
			HighCostBucket:    "UEFA",
			LowCostBucket:     "REST",
			HighCostCountries: []string{
				"ESP", "ENG", "DEU", "ITA", "FRA", "PRT", "NLD", "BEL", "AUT", "SCO",
				"TUR", "RUS", "UKR", "GRE", "CHE", "HRV", "DNK", "SWE", "NOR", "POL",
			},
			Costs: map[string]CategoryCosts{
				"UEFA": {
					CategoryI:   decimal.NewFromInt(90000),
					CategoryII:  decimal.NewFromInt(60000),
					CategoryIII: decimal.NewFromInt(30000),
					CategoryIV:  decimal.NewFromInt(10000),
				},
				"REST": {
					CategoryI:   decimal.NewFromInt(50000),
					CategoryII:  decimal.NewFromInt(30000),
					CategoryIII: decimal.NewFromInt(10000),
					CategoryIV:  decimal.NewFromInt(2000),
				},
			},
		},
		Compliance: ComplianceRules{
			BridgeMinWeeks:       16,
			ConflictAssociations: []string{"UKR", "RUS"},
			AgentCommissionCaps: AgentCaps{
				OriginClub: decimal.NewFromInt(10),
				Dual: TieredCap{
					AtOrBelowThreshold: decimal.NewFromInt(10),
					AboveThreshold:     decimal.NewFromInt(6),
				},
				SingleParty: TieredCap{
					AtOrBelowThreshold: decimal.NewFromInt(5),
					AboveThreshold:     decimal.NewFromInt(3),
				},
				SalaryThreshold: decimal.NewFromInt(200000),
			},
		},
		Matching: MatchingRules{SimilarityThreshold: 0.6},
	}
}

// Bucket returns the cost bucket of a member association
func (rc *RegulatoryConfig) Bucket(country string) string {
	code := strings.ToUpper(strings.TrimSpace(country))
	for _, c := range rc.Training.HighCostCountries {
		if strings.EqualFold(c, code) {
			return rc.Training.HighCostBucket
		}
	}
	return rc.Training.LowCostBucket
}

// IsHighCost reports whether a bucket is the higher-cost one
func (rc *RegulatoryConfig) IsHighCost(bucket string) bool {
	return bucket == rc.Training.HighCostBucket
}

// Rate returns the annual training cost for a bucket and category
func (rc *RegulatoryConfig) Rate(bucket string, category Category) (decimal.Decimal, bool) {
	costs, ok := rc.Training.Costs[bucket]
	if !ok {
		return decimal.Zero, false
	}
	rate, ok := costs[category]
	return rate, ok
}

// SolidarityPercentage returns the band percentage for an age, zero outside every band
func (rc *RegulatoryConfig) SolidarityPercentage(age int) decimal.Decimal {
	for _, band := range rc.Solidarity.Bands {
		if age >= band.MinAge && age <= band.MaxAge {
			return band.Percentage
		}
	}
	return decimal.Zero
}

// IsConflictAssociation reports whether an association is covered by the conflict exception
func (rc *RegulatoryConfig) IsConflictAssociation(country string) bool {
	code := strings.TrimSpace(country)
	for _, c := range rc.Compliance.ConflictAssociations {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}
