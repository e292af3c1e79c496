package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/opentransfer/internal/calculation"
	"github.com/rgehrsitz/opentransfer/internal/domain"
)

// RuleSet names a set of reference tables to evaluate a case under
type RuleSet struct {
	Name  string
	Rules *domain.RegulatoryConfig
}

// CompareEngine evaluates one case under several sets of reference tables
type CompareEngine struct {
	Logger calculation.Logger
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine() *CompareEngine {
	return &CompareEngine{Logger: calculation.NopLogger{}}
}

// Compare runs the case under base and every alternative. Input errors abort
// the whole comparison since they do not depend on the tables in use.
func (ce *CompareEngine) Compare(ctx context.Context, input *domain.CaseInput, base RuleSet, alternatives []RuleSet) (*ComparisonSet, error) {
	baseResult, err := ce.run(ctx, input, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base %s: %w", base.Name, err)
	}

	alts := make([]ComparisonResult, 0, len(alternatives))
	for _, rs := range alternatives {
		alt, err := ce.run(ctx, input, rs)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", rs.Name, err)
		}
		alts = append(alts, CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		CaseID:             baseResult.Result.CaseID,
		BaseName:           base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alts,
	}
	compSet.Notes = GenerateNotes(compSet)

	return compSet, nil
}

func (ce *CompareEngine) run(ctx context.Context, input *domain.CaseInput, rs RuleSet) (ComparisonResult, error) {
	if rs.Rules == nil {
		return ComparisonResult{}, fmt.Errorf("no reference tables")
	}
	engine := calculation.NewCalculationEngineWithConfig(rs.Rules)
	engine.SetLogger(ce.Logger)

	result, err := engine.Calculate(ctx, input)
	if err != nil {
		return ComparisonResult{}, err
	}
	ce.Logger.Debugf("%s (%s): grand total %s", rs.Name, rs.Rules.Metadata.Edition, result.GrandTotal().StringFixed(2))
	return Summarize(rs.Name, rs.Rules.Metadata.Edition, result), nil
}
