package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrationPeriod is a validated period of the player's sporting passport
type RegistrationPeriod struct {
	Club       string       `json:"club"`
	Country    string       `json:"country"`
	Category   Category     `json:"category"`
	Status     PlayerStatus `json:"status"`
	StartDate  time.Time    `json:"start"`
	EndDate    time.Time    `json:"end"`
	Days       int          `json:"days"`
	AgeAtStart int          `json:"age_at_start"`
}

// SkippedPeriod records a registration record dropped during normalization
type SkippedPeriod struct {
	Index  int    `json:"index"`
	Club   string `json:"club"`
	Reason string `json:"reason"`
}

// CaseType is the transfer classification that gates training compensation
type CaseType string

const (
	CaseVeteran        CaseType = "veteran"
	CaseFirstDeparture CaseType = "first_departure"
	CaseSubsequent     CaseType = "subsequent"
)

// Classification is the outcome of the transfer classifier
type Classification struct {
	Type             CaseType `json:"type"`
	Label            string   `json:"label"`
	AgeAtTransfer    int      `json:"age_at_transfer"`
	FirstClubCountry string   `json:"first_club_country"`
	Seller           Club     `json:"seller"`
	IsFirstDeparture bool     `json:"is_first_departure"`
}

// TrainingApplies reports whether training compensation lines are produced
func (c Classification) TrainingApplies() bool {
	return c.Type != CaseVeteran
}

// SolidarityLine is one club's share of the solidarity contribution
type SolidarityLine struct {
	Club       string          `json:"club"`
	Age        int             `json:"age"`
	Percentage decimal.Decimal `json:"pct"`
	Days       int             `json:"days"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

// TrainingLine is one period's training compensation assessment.
// Amount is zero whenever Entitled is false.
type TrainingLine struct {
	Club          string          `json:"club"`
	Age           int             `json:"age"`
	Category      Category        `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Days          int             `json:"days"`
	AnnualCost    decimal.Decimal `json:"annual_cost"`
	Amount        decimal.Decimal `json:"amount"`
	Entitled      bool            `json:"entitled"`
	Note          string          `json:"note"`
}

// SolidarityBreakdown groups solidarity lines with their unrounded total
type SolidarityBreakdown struct {
	Lines []SolidarityLine `json:"lines"`
	Total decimal.Decimal  `json:"total"`
}

// TrainingBreakdown groups training compensation lines with their unrounded total
type TrainingBreakdown struct {
	Lines []TrainingLine  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// ComplianceVerdict lists blocking errors and warnings in detection order
type ComplianceVerdict struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Valid    bool     `json:"valid"`
}

// AddError records a blocking finding
func (v *ComplianceVerdict) AddError(msg string) {
	v.Errors = append(v.Errors, msg)
	v.Valid = false
}

// AddWarning records a non-blocking finding
func (v *ComplianceVerdict) AddWarning(msg string) {
	v.Warnings = append(v.Warnings, msg)
}

// AuditResult is the complete, itemized outcome of one calculation
type AuditResult struct {
	CaseID               string               `json:"case_id"`
	Kind                 CaseKind             `json:"kind"`
	Player               Player               `json:"player"`
	Destination          Club                 `json:"destination"`
	Currency             string               `json:"currency"`
	TransferAmount       decimal.Decimal      `json:"transfer_amount"`
	TransferDate         time.Time            `json:"transfer_date"`
	Classification       Classification       `json:"classification"`
	Periods              []RegistrationPeriod `json:"periods"`
	Skipped              []SkippedPeriod      `json:"skipped_periods"`
	Solidarity           SolidarityBreakdown  `json:"solidarity"`
	TrainingCompensation TrainingBreakdown    `json:"training_compensation"`
	Compliance           ComplianceVerdict    `json:"compliance"`
}

// GrandTotal is the sum of both entitlements
func (r *AuditResult) GrandTotal() decimal.Decimal {
	return r.Solidarity.Total.Add(r.TrainingCompensation.Total)
}
