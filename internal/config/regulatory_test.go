package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegulatory_Defaults(t *testing.T) {
	assert.NoError(t, ValidateRegulatory(domain.DefaultRegulatoryConfig()))
}

func TestParseRegulatory_Overlay(t *testing.T) {
	data := []byte(`
age_basis: exact
matching:
  similarity_threshold: 0.75
compliance:
  bridge_min_weeks: 20
training_compensation:
  costs:
    UEFA: {I: "95000", II: "60000", III: "30000", IV: "10000"}
`)

	rc, err := ParseRegulatory(data)
	require.NoError(t, err)

	assert.Equal(t, domain.AgeBasisExact, rc.AgeBasis)
	assert.Equal(t, 0.75, rc.Matching.SimilarityThreshold)
	assert.Equal(t, 20, rc.Compliance.BridgeMinWeeks)

	rate, ok := rc.Rate("UEFA", domain.CategoryI)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(95000)))

	// untouched keys keep their defaults
	rate, ok = rc.Rate("REST", domain.CategoryIV)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 365, rc.DaysPerYear)
	assert.Equal(t, []string{"UKR", "RUS"}, rc.Compliance.ConflictAssociations)
}

func TestParseRegulatory_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown age basis", "age_basis: lunar"},
		{"zero days per year", "days_per_year: 0"},
		{"inverted band", "solidarity:\n  bands:\n    - {min_age: 16, max_age: 12, percentage: \"0.5\"}"},
		{"threshold above one", "matching:\n  similarity_threshold: 1.5"},
		{"negative bridge weeks", "compliance:\n  bridge_min_weeks: -1"},
		{"unknown bucket", "training_compensation:\n  high_cost_bucket: CONCACAF"},
		{"negative cap", "compliance:\n  agent_commission_caps:\n    origin_club: \"-1\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegulatory([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegulatoryFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultRegulatoryFile)
	require.NoError(t, os.WriteFile(path, []byte("days_per_year: 366\n"), 0o600))

	rc, err := LoadRegulatoryFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 366, rc.DaysPerYear)

	_, err = LoadRegulatoryFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
