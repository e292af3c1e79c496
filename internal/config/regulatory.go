package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultRegulatoryFile is picked up from the working directory when present
const DefaultRegulatoryFile = "regulatory.yaml"

// LoadRegulatoryFromFile overlays a regulatory YAML file on the built-in tables.
// Keys absent from the file keep their default values.
func LoadRegulatoryFromFile(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", filename, err)
	}
	return ParseRegulatory(data)
}

// ParseRegulatory decodes regulatory YAML on top of DefaultRegulatoryConfig
func ParseRegulatory(data []byte) (*domain.RegulatoryConfig, error) {
	rc := domain.DefaultRegulatoryConfig()
	if err := yaml.Unmarshal(data, rc); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}
	if err := ValidateRegulatory(rc); err != nil {
		return nil, fmt.Errorf("regulatory config validation failed: %w", err)
	}
	return rc, nil
}

// ValidateRegulatory checks that the reference tables are usable
func ValidateRegulatory(rc *domain.RegulatoryConfig) error {
	if rc.AgeBasis != domain.AgeBasisCalendarYear && rc.AgeBasis != domain.AgeBasisExact {
		return fmt.Errorf("age_basis must be %q or %q", domain.AgeBasisCalendarYear, domain.AgeBasisExact)
	}
	if rc.DaysPerYear <= 0 {
		return fmt.Errorf("days_per_year must be positive")
	}

	if len(rc.Solidarity.Bands) == 0 {
		return fmt.Errorf("solidarity schedule needs at least one band")
	}
	for i, band := range rc.Solidarity.Bands {
		if band.MinAge > band.MaxAge {
			return fmt.Errorf("solidarity band %d: min_age %d exceeds max_age %d", i, band.MinAge, band.MaxAge)
		}
		if band.Percentage.LessThan(decimal.Zero) {
			return fmt.Errorf("solidarity band %d: percentage cannot be negative", i)
		}
	}

	if err := validateTraining(&rc.Training); err != nil {
		return fmt.Errorf("training compensation: %w", err)
	}
	if err := validateCompliance(&rc.Compliance); err != nil {
		return fmt.Errorf("compliance: %w", err)
	}

	if rc.Matching.SimilarityThreshold <= 0 || rc.Matching.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1]")
	}
	return nil
}

// validateTraining validates the training cost tables
func validateTraining(tr *domain.TrainingRules) error {
	if tr.MinAge > tr.MaxAge {
		return fmt.Errorf("min_age %d exceeds max_age %d", tr.MinAge, tr.MaxAge)
	}
	if tr.HighCostBucket == "" || tr.LowCostBucket == "" {
		return fmt.Errorf("both cost buckets must be named")
	}
	for _, bucket := range []string{tr.HighCostBucket, tr.LowCostBucket} {
		costs, ok := tr.Costs[bucket]
		if !ok {
			return fmt.Errorf("no cost table for bucket %s", bucket)
		}
		for _, cat := range domain.Categories {
			rate, ok := costs[cat]
			if !ok {
				return fmt.Errorf("bucket %s is missing category %s", bucket, cat)
			}
			if rate.LessThan(decimal.Zero) {
				return fmt.Errorf("bucket %s category %s: rate cannot be negative", bucket, cat)
			}
		}
	}
	return nil
}

// validateCompliance validates compliance thresholds
func validateCompliance(cr *domain.ComplianceRules) error {
	if cr.BridgeMinWeeks < 0 {
		return fmt.Errorf("bridge_min_weeks cannot be negative")
	}
	caps := cr.AgentCommissionCaps
	for name, value := range map[string]decimal.Decimal{
		"origin_club":                        caps.OriginClub,
		"dual.at_or_below_threshold":         caps.Dual.AtOrBelowThreshold,
		"dual.above_threshold":               caps.Dual.AboveThreshold,
		"single_party.at_or_below_threshold": caps.SingleParty.AtOrBelowThreshold,
		"single_party.above_threshold":       caps.SingleParty.AboveThreshold,
		"salary_threshold":                   caps.SalaryThreshold,
	} {
		if value.LessThan(decimal.Zero) {
			return fmt.Errorf("agent_commission_caps.%s cannot be negative", name)
		}
	}
	return nil
}
