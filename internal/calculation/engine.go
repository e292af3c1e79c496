package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/rgehrsitz/opentransfer/internal/metrics"
	"github.com/shopspring/decimal"
)

// caseNamespace seeds derived case ids so identical input yields an identical id
var caseNamespace = uuid.MustParse("6f1c7d2e-4b0a-5c3e-9a8d-2f4e6b1a0c57")

// CalculationEngine orchestrates the solidarity, training compensation and
// compliance calculations for a transfer case. It holds no per-call state and
// may be shared between goroutines once configured.
type CalculationEngine struct {
	Rules   *domain.RegulatoryConfig
	Logger  Logger
	Metrics *metrics.Metrics
	Debug   bool // Log intermediate values of each calculation
}

// NewCalculationEngine creates an engine with the built-in reference tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultRegulatoryConfig())
}

// NewCalculationEngineWithConfig creates an engine with the given reference tables
func NewCalculationEngineWithConfig(rules *domain.RegulatoryConfig) *CalculationEngine {
	if rules == nil {
		rules = domain.DefaultRegulatoryConfig()
	}
	return &CalculationEngine{
		Rules:  rules,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetMetrics attaches engine metrics; nil disables them
func (ce *CalculationEngine) SetMetrics(m *metrics.Metrics) {
	ce.Metrics = m
}

// Calculate runs the full pipeline for one case: normalize the history,
// classify the transfer, compute both entitlements, screen compliance and
// assemble the audit result. Structural input errors abort with no result.
func (ce *CalculationEngine) Calculate(ctx context.Context, input *domain.CaseInput) (*domain.AuditResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	result, err := ce.calculate(input)
	if err != nil {
		ce.Metrics.IncrementInputError()
		return nil, err
	}

	ce.Metrics.ObserveCalculation(string(result.Classification.Type), result.Compliance.Valid, len(result.Skipped), time.Since(start))
	return result, nil
}

func (ce *CalculationEngine) calculate(input *domain.CaseInput) (*domain.AuditResult, error) {
	if input == nil {
		return nil, domain.NewInputError("case", "is required")
	}

	birth, err := domain.ParseDate(input.Player.BirthDate)
	if err != nil {
		return nil, domain.NewInputError("player.birth_date", "%v", err)
	}
	transferDate, err := domain.ParseDate(input.Transfer.Date)
	if err != nil {
		return nil, domain.NewInputError("transfer.date", "%v", err)
	}
	if input.Transfer.Amount.LessThan(decimal.Zero) {
		return nil, domain.NewInputError("transfer.amount", "cannot be negative")
	}
	destCountry := strings.ToUpper(strings.TrimSpace(input.Transfer.Destination.Country))
	if destCountry == "" {
		return nil, domain.NewInputError("transfer.destination.country", "is required")
	}
	if strings.TrimSpace(input.Transfer.Destination.Category) == "" {
		return nil, domain.NewInputError("transfer.destination.category", "is required")
	}
	destCategory, err := domain.ParseCategory(input.Transfer.Destination.Category)
	if err != nil {
		return nil, domain.NewInputError("transfer.destination.category", "%v", err)
	}

	var priorMovement *time.Time
	if input.PriorMovementDate != "" {
		prior, err := domain.ParseDate(input.PriorMovementDate)
		if err != nil {
			return nil, domain.NewInputError("prior_movement_date", "%v", err)
		}
		if prior.After(transferDate) {
			return nil, domain.NewInputError("prior_movement_date", "cannot be after the transfer date")
		}
		priorMovement = &prior
	}

	periods, skipped, err := NormalizeHistory(input.RegistrationHistory, birth, ce.Rules.AgeBasis)
	for _, s := range skipped {
		ce.Logger.Warnf("skipping registration record %d (%s): %s", s.Index, s.Club, s.Reason)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	seller := input.Seller(periods)
	classification := Classify(periods, transferDate, birth, seller, ce.Rules)
	ce.Logger.Debugf("classified case: %s (age at transfer %d, first club country %s, seller %s/%s)",
		classification.Type, classification.AgeAtTransfer, classification.FirstClubCountry, seller.Name, seller.Country)

	solidarity := CalculateSolidarity(periods, input.Transfer.Amount, ce.Rules)
	training := CalculateTrainingCompensation(periods, TrainingInput{
		Classification:      classification,
		DestinationCountry:  destCountry,
		DestinationCategory: destCategory,
		ConflictException:   input.ConflictException,
	}, ce.Rules)

	if ce.Debug {
		for _, line := range solidarity.Lines {
			ce.Logger.Debugf("solidarity %s age %d: %s%% x %d days = %s", line.Club, line.Age, line.Percentage, line.Days, line.Amount.StringFixed(2))
		}
		for _, line := range training.Lines {
			ce.Logger.Debugf("training %s %s: annual %s x %d days = %s (%s)", line.Club, line.CategoryLabel, line.AnnualCost.StringFixed(2), line.Days, line.Amount.StringFixed(2), line.Note)
		}
	}

	compliance := ScreenCompliance(ComplianceInput{
		TransferDate:       transferDate,
		PriorMovementDate:  priorMovement,
		Amount:             input.Transfer.Amount,
		Seller:             seller,
		DeclaredOrigin:     input.Transfer.Origin,
		ConflictException:  input.ConflictException,
		PlayerAnnualSalary: input.Transfer.PlayerAnnualSalary,
		Agents:             input.Agents,
		Periods:            periods,
		Skipped:            skipped,
	}, ce.Rules)
	if !compliance.Valid {
		ce.Logger.Infof("case blocked by %d compliance error(s)", len(compliance.Errors))
	}

	kind := input.Meta.Kind
	if kind == "" {
		kind = domain.KindInternationalTransfer
	}
	if skipped == nil {
		skipped = []domain.SkippedPeriod{}
	}

	return &domain.AuditResult{
		CaseID:               ce.caseID(input),
		Kind:                 kind,
		Player:               input.Player,
		Destination:          input.Transfer.Destination,
		Currency:             input.Transfer.Currency,
		TransferAmount:       input.Transfer.Amount,
		TransferDate:         transferDate,
		Classification:       classification,
		Periods:              periods,
		Skipped:              skipped,
		Solidarity:           solidarity,
		TrainingCompensation: training,
		Compliance:           compliance,
	}, nil
}

// caseID returns the declared case id, or one derived from the input content
func (ce *CalculationEngine) caseID(input *domain.CaseInput) string {
	if id := strings.TrimSpace(input.Meta.CaseID); id != "" {
		return id
	}
	data, err := json.Marshal(input)
	if err != nil {
		ce.Logger.Errorf("could not derive case id: %v", err)
		return uuid.NewString()
	}
	return uuid.NewSHA1(caseNamespace, data).String()
}
