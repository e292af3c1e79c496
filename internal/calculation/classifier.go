package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/opentransfer/internal/domain"
)

// Classify decides whether the move is a veteran case, the first departure
// from the formation association, or a subsequent transfer.
// periods must be normalized (non-empty, sorted by start date).
func Classify(periods []domain.RegistrationPeriod, transferDate, birth time.Time, seller domain.Club, rules *domain.RegulatoryConfig) domain.Classification {
	c := domain.Classification{
		AgeAtTransfer:    AgeAt(birth, transferDate, rules.AgeBasis),
		FirstClubCountry: periods[0].Country,
		Seller:           seller,
	}
	c.IsFirstDeparture = strings.EqualFold(strings.TrimSpace(c.FirstClubCountry), strings.TrimSpace(seller.Country))

	switch {
	case c.AgeAtTransfer > rules.Training.MaxTransferAge:
		c.Type = domain.CaseVeteran
		c.Label = fmt.Sprintf("veteran (over %d): solidarity only, training compensation inapplicable", rules.Training.MaxTransferAge)
	case c.IsFirstDeparture:
		c.Type = domain.CaseFirstDeparture
		c.Label = "first departure: all formation clubs entitled to training compensation"
	default:
		c.Type = domain.CaseSubsequent
		c.Label = fmt.Sprintf("subsequent transfer: only declared seller entitled (%s)", seller.Name)
	}

	return c
}
