package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of case files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a case from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CaseInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a case document. JSON is accepted as a YAML subset.
func (ip *InputParser) Parse(data []byte) (*domain.CaseInput, error) {
	var input domain.CaseInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse case file: %w", err)
	}

	if err := ip.ValidateCase(&input); err != nil {
		return nil, fmt.Errorf("case validation failed: %w", err)
	}

	return &input, nil
}

// ValidateCase checks the structural fields a calculation cannot proceed without.
// Individual registration periods are not checked here; malformed periods are
// dropped by the engine instead of failing the case.
func (ip *InputParser) ValidateCase(input *domain.CaseInput) error {
	switch input.Meta.Kind {
	case "", domain.KindInternationalTransfer, domain.KindFirstContract:
	default:
		return domain.NewInputError("meta.kind", "unknown case kind %q", input.Meta.Kind)
	}

	birth, err := domain.ParseDate(input.Player.BirthDate)
	if err != nil {
		return domain.NewInputError("player.birth_date", "%v", err)
	}

	if err := ip.validateTransfer(&input.Transfer, birth.Year()); err != nil {
		return err
	}

	if len(input.RegistrationHistory) == 0 {
		return domain.NewInputError("registration_history", "at least one registration period is required")
	}

	for i, agent := range input.Agents {
		if err := ip.validateAgent(i, &agent); err != nil {
			return err
		}
	}

	if input.PriorMovementDate != "" {
		prior, err := domain.ParseDate(input.PriorMovementDate)
		if err != nil {
			return domain.NewInputError("prior_movement_date", "%v", err)
		}
		transferDate, _ := domain.ParseDate(input.Transfer.Date)
		if prior.After(transferDate) {
			return domain.NewInputError("prior_movement_date", "cannot be after the transfer date")
		}
	}

	return nil
}

// validateTransfer validates the transfer agreement
func (ip *InputParser) validateTransfer(transfer *domain.TransferAgreement, birthYear int) error {
	date, err := domain.ParseDate(transfer.Date)
	if err != nil {
		return domain.NewInputError("transfer.date", "%v", err)
	}
	if date.Year() < birthYear {
		return domain.NewInputError("transfer.date", "cannot be before the player's birth date")
	}

	if transfer.Amount.LessThan(decimal.Zero) {
		return domain.NewInputError("transfer.amount", "cannot be negative")
	}
	if transfer.PlayerAnnualSalary != nil && transfer.PlayerAnnualSalary.LessThan(decimal.Zero) {
		return domain.NewInputError("transfer.player_annual_salary", "cannot be negative")
	}

	if strings.TrimSpace(transfer.Destination.Country) == "" {
		return domain.NewInputError("transfer.destination.country", "is required")
	}
	if strings.TrimSpace(transfer.Destination.Category) == "" {
		return domain.NewInputError("transfer.destination.category", "is required")
	}
	if _, err := domain.ParseCategory(transfer.Destination.Category); err != nil {
		return domain.NewInputError("transfer.destination.category", "%v", err)
	}

	if transfer.Origin != nil && strings.TrimSpace(transfer.Origin.Name) == "" && strings.TrimSpace(transfer.Origin.Country) != "" {
		return domain.NewInputError("transfer.origin.name", "is required when an origin club is declared")
	}

	return nil
}

// validateAgent validates a single agent record
func (ip *InputParser) validateAgent(index int, agent *domain.AgentRecord) error {
	field := fmt.Sprintf("agents[%d]", index)
	if strings.TrimSpace(agent.Name) == "" {
		return domain.NewInputError(field+".name", "is required")
	}
	if !agent.Role.Valid() {
		return domain.NewInputError(field+".role", "unknown role %q", agent.Role)
	}
	if agent.CommissionPct.LessThan(decimal.Zero) || agent.CommissionPct.GreaterThan(decimal.NewFromInt(100)) {
		return domain.NewInputError(field+".commission_pct", "must be between 0 and 100")
	}
	return nil
}
