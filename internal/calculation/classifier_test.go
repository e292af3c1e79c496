package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/stretchr/testify/assert"
)

// period builds a normalized registration period covering days from start
func period(club, country string, category domain.Category, start time.Time, days, age int) domain.RegistrationPeriod {
	return domain.RegistrationPeriod{
		Club:       club,
		Country:    country,
		Category:   category,
		Status:     domain.StatusProfessional,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
		Days:       days,
		AgeAtStart: age,
	}
}

func TestClassify(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	argentina := []domain.RegistrationPeriod{
		period("River Plate", "ARG", domain.CategoryI, date(2013, 1, 1), 365, 12),
		period("Benfica", "PRT", domain.CategoryI, date(2022, 7, 14), 200, 21),
	}

	tests := []struct {
		name          string
		birth         time.Time
		seller        domain.Club
		expectedType  domain.CaseType
		expectedAge   int
		labelContains string
	}{
		{
			name:          "veteran over the age limit",
			birth:         date(1995, 6, 1),
			seller:        domain.Club{Name: "SL Benfica", Country: "PRT"},
			expectedType:  domain.CaseVeteran,
			expectedAge:   28,
			labelContains: "veteran (over 23)",
		},
		{
			name:          "age limit itself is not veteran",
			birth:         date(2000, 12, 31),
			seller:        domain.Club{Name: "River Plate", Country: "ARG"},
			expectedType:  domain.CaseFirstDeparture,
			expectedAge:   23,
			labelContains: "first departure",
		},
		{
			name:          "first departure from the formation association",
			birth:         date(2001, 1, 17),
			seller:        domain.Club{Name: "River Plate", Country: "arg"},
			expectedType:  domain.CaseFirstDeparture,
			expectedAge:   22,
			labelContains: "all formation clubs entitled",
		},
		{
			name:          "subsequent transfer names the seller",
			birth:         date(2001, 1, 17),
			seller:        domain.Club{Name: "SL Benfica", Country: "PRT"},
			expectedType:  domain.CaseSubsequent,
			expectedAge:   22,
			labelContains: "only declared seller entitled (SL Benfica)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(argentina, date(2023, 1, 31), tt.birth, tt.seller, rules)

			assert.Equal(t, tt.expectedType, c.Type)
			assert.Equal(t, tt.expectedAge, c.AgeAtTransfer)
			assert.Equal(t, "ARG", c.FirstClubCountry)
			assert.Equal(t, tt.seller, c.Seller)
			assert.Contains(t, c.Label, tt.labelContains)
			assert.Equal(t, tt.expectedType != domain.CaseVeteran, c.TrainingApplies())
		})
	}
}

func TestClassify_VeteranStillReportsFirstDeparture(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	periods := []domain.RegistrationPeriod{
		period("Velez", "ARG", domain.CategoryII, date(2005, 1, 1), 365, 12),
	}

	c := Classify(periods, date(2020, 1, 1), date(1993, 1, 1), domain.Club{Name: "Velez", Country: "ARG"}, rules)

	assert.Equal(t, domain.CaseVeteran, c.Type)
	assert.True(t, c.IsFirstDeparture)
}

func TestClassify_ExactAgeBasis(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig()
	rules.AgeBasis = domain.AgeBasisExact
	periods := []domain.RegistrationPeriod{
		period("Velez", "ARG", domain.CategoryII, date(2005, 1, 1), 365, 12),
	}

	// 24 by calendar year but still 23 on the transfer date
	c := Classify(periods, date(2024, 3, 1), date(2000, 6, 1), domain.Club{Name: "Velez", Country: "ARG"}, rules)

	assert.Equal(t, 23, c.AgeAtTransfer)
	assert.Equal(t, domain.CaseFirstDeparture, c.Type)
}
