package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only date format accepted in case files
const DateLayout = "2006-01-02"

// ParseDate parses a case-file date
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// Category is a FIFA training category (I is the highest training cost)
type Category string

const (
	CategoryI   Category = "I"
	CategoryII  Category = "II"
	CategoryIII Category = "III"
	CategoryIV  Category = "IV"
)

// Categories lists every category from highest to lowest cost
var Categories = []Category{CategoryI, CategoryII, CategoryIII, CategoryIV}

// ParseCategory normalizes a category label. A blank label defaults to IV.
func ParseCategory(value string) (Category, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return CategoryIV, nil
	}
	switch Category(v) {
	case CategoryI, CategoryII, CategoryIII, CategoryIV:
		return Category(v), nil
	case "1":
		return CategoryI, nil
	case "2":
		return CategoryII, nil
	case "3":
		return CategoryIII, nil
	case "4":
		return CategoryIV, nil
	}
	return "", fmt.Errorf("invalid category %q", value)
}

// PlayerStatus is the registration status held during a period
type PlayerStatus string

const (
	StatusAmateur      PlayerStatus = "amateur"
	StatusProfessional PlayerStatus = "professional"
)

// ParsePlayerStatus normalizes a status label; blank means professional
func ParsePlayerStatus(value string) (PlayerStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "professional", "profesional", "pro":
		return StatusProfessional, nil
	case "amateur":
		return StatusAmateur, nil
	}
	return "", fmt.Errorf("invalid player status %q", value)
}

// CaseKind distinguishes the two operations the dashboard can submit.
// It is carried into the result as a label and does not change the rules.
type CaseKind string

const (
	KindInternationalTransfer CaseKind = "international_transfer"
	KindFirstContract         CaseKind = "first_contract"
)

// CaseMeta identifies a calculation request
type CaseMeta struct {
	CaseID string   `yaml:"case_id,omitempty" json:"case_id,omitempty"`
	Kind   CaseKind `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Player holds the player's identity. Only BirthDate takes part in calculations.
type Player struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	BirthDate   string `yaml:"birth_date" json:"birth_date"`
	Nationality string `yaml:"nationality,omitempty" json:"nationality,omitempty"`
	PassportID  string `yaml:"passport_id,omitempty" json:"passport_id,omitempty"`
}

// Club identifies a club by name and member association
type Club struct {
	Name     string `yaml:"name" json:"name"`
	Country  string `yaml:"country" json:"country"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// TransferAgreement carries the financial terms of the move
type TransferAgreement struct {
	Date               string           `yaml:"date" json:"date"`
	Amount             decimal.Decimal  `yaml:"amount" json:"amount"`
	Currency           string           `yaml:"currency,omitempty" json:"currency,omitempty"`
	PlayerAnnualSalary *decimal.Decimal `yaml:"player_annual_salary,omitempty" json:"player_annual_salary,omitempty"`
	Destination        Club             `yaml:"destination" json:"destination"`
	Origin             *Club            `yaml:"origin,omitempty" json:"origin,omitempty"`
}

// PeriodRecord is a registration period exactly as submitted by the caller
type PeriodRecord struct {
	Club     string `yaml:"club" json:"club"`
	Country  string `yaml:"country" json:"country"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Start    string `yaml:"start" json:"start"`
	End      string `yaml:"end" json:"end"`
	Status   string `yaml:"status,omitempty" json:"status,omitempty"`
}

// AgentRole is the party (or parties) an intermediary represents
type AgentRole string

const (
	RoleOriginClub          AgentRole = "origin_club"
	RoleDestinationClub     AgentRole = "destination_club"
	RolePlayer              AgentRole = "player"
	RoleDual                AgentRole = "dual"
	RolePlayerAndOriginClub AgentRole = "player_and_origin_club"
)

// Valid reports whether r is a known role
func (r AgentRole) Valid() bool {
	switch r {
	case RoleOriginClub, RoleDestinationClub, RolePlayer, RoleDual, RolePlayerAndOriginClub:
		return true
	}
	return false
}

// AgentRecord is one intermediary declared on the transfer
type AgentRecord struct {
	Name          string          `yaml:"name" json:"name"`
	Role          AgentRole       `yaml:"role" json:"role"`
	CommissionPct decimal.Decimal `yaml:"commission_pct" json:"commission_pct"`
}

// CaseInput is the normalized input record of one calculation
type CaseInput struct {
	Meta                CaseMeta          `yaml:"meta,omitempty" json:"meta,omitempty"`
	Player              Player            `yaml:"player" json:"player"`
	Transfer            TransferAgreement `yaml:"transfer" json:"transfer"`
	RegistrationHistory []PeriodRecord    `yaml:"registration_history" json:"registration_history"`
	Agents              []AgentRecord     `yaml:"agents,omitempty" json:"agents,omitempty"`
	PriorMovementDate   string            `yaml:"prior_movement_date,omitempty" json:"prior_movement_date,omitempty"`
	ConflictException   bool              `yaml:"conflict_exception_flag,omitempty" json:"conflict_exception_flag,omitempty"`
}

// Seller returns the club the player is leaving. The declared origin wins;
// otherwise it is inferred from the last normalized period.
func (ci *CaseInput) Seller(periods []RegistrationPeriod) Club {
	var last Club
	if len(periods) > 0 {
		p := periods[len(periods)-1]
		last = Club{Name: p.Club, Country: p.Country, Category: string(p.Category)}
	}
	if ci.Transfer.Origin == nil || strings.TrimSpace(ci.Transfer.Origin.Name) == "" {
		return last
	}
	seller := *ci.Transfer.Origin
	if strings.TrimSpace(seller.Country) == "" {
		seller.Country = last.Country
	}
	return seller
}
