package integration

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rgehrsitz/opentransfer/internal/calculation"
	"github.com/rgehrsitz/opentransfer/internal/compare"
	"github.com/rgehrsitz/opentransfer/internal/config"
	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/rgehrsitz/opentransfer/internal/metrics"
	"github.com/rgehrsitz/opentransfer/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../internal/config/testdata/"

func loadCase(t *testing.T, name string) *domain.CaseInput {
	t.Helper()
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(testdata + name)
	require.NoError(t, err)
	return input
}

func TestIntegrationSmokeTest(t *testing.T) {
	t.Run("subsequent_transfer", func(t *testing.T) {
		engine := calculation.NewCalculationEngine()
		result, err := engine.Calculate(context.Background(), loadCase(t, "enzo_chelsea.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "WEB-ENZO", result.CaseID)
		assert.Equal(t, domain.CaseSubsequent, result.Classification.Type)
		assert.Equal(t, "3777520.55", result.Solidarity.Total.StringFixed(2))
		assert.Equal(t, "49561.64", result.TrainingCompensation.Total.StringFixed(2))
		assert.True(t, result.Compliance.Valid)
	})

	t.Run("first_departure", func(t *testing.T) {
		engine := calculation.NewCalculationEngine()
		input := loadCase(t, "alvarez_city.json")
		result, err := engine.Calculate(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, domain.CaseFirstDeparture, result.Classification.Type)
		assert.Equal(t, "River Plate", result.Classification.Seller.Name, "Seller defaults to the last registered club")
		require.Len(t, result.Solidarity.Lines, 2)
		assert.Equal(t, "CA Calchin", result.Solidarity.Lines[0].Club)
		assert.True(t, result.TrainingCompensation.Total.IsPositive())

		ceiling := input.Transfer.Amount.Mul(decimal.NewFromFloat(0.05))
		assert.True(t, result.Solidarity.Total.LessThanOrEqual(ceiling), "Solidarity never exceeds five percent of the fee")
	})
}

func TestIntegrationRegression(t *testing.T) {
	t.Run("calculation_consistency", func(t *testing.T) {
		input := loadCase(t, "alvarez_city.json")

		first, err := calculation.NewCalculationEngine().Calculate(context.Background(), input)
		require.NoError(t, err)
		second, err := calculation.NewCalculationEngine().Calculate(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, first.CaseID, second.CaseID)
		assert.True(t, first.GrandTotal().Equal(second.GrandTotal()), "Calculations should be consistent")

		a, err := output.JSONFormatter{}.Format(first)
		require.NoError(t, err)
		b, err := output.JSONFormatter{}.Format(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "Reports should be byte-identical")
	})

	t.Run("invalid_case_rejected", func(t *testing.T) {
		parser := config.NewInputParser()
		_, err := parser.LoadFromFile(testdata + "invalid_destination.yaml")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestOutputGeneration(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	result, err := engine.Calculate(context.Background(), loadCase(t, "enzo_chelsea.yaml"))
	require.NoError(t, err)

	for _, name := range output.FormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)

			out, err := f.Format(result)
			assert.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestRegulatoryRoundTrip(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	rules.Matching.SimilarityThreshold = 0.9

	engine := calculation.NewCalculationEngineWithConfig(rules)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	engine.SetMetrics(m)

	input := loadCase(t, "enzo_chelsea.yaml")
	_, err := engine.Calculate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues(string(domain.CaseSubsequent))))

	compSet, err := compare.NewCompareEngine().Compare(context.Background(), input,
		compare.RuleSet{Name: "default", Rules: domain.DefaultRegulatoryConfig()},
		[]compare.RuleSet{{Name: "strict", Rules: rules}})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "-49561.64", compSet.AlternativeResults[0].GrandDiffFromBase.StringFixed(2))
}
