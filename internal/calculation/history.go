package calculation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/opentransfer/internal/domain"
)

// ErrEmptyHistory is wrapped by EmptyHistoryError
var ErrEmptyHistory = errors.New("registration history is empty")

// EmptyHistoryError is returned when no registration period survives normalization
type EmptyHistoryError struct {
	Received int
	Skipped  int
}

func (e *EmptyHistoryError) Error() string {
	return fmt.Sprintf("registration_history: no usable period (%d received, %d skipped)", e.Received, e.Skipped)
}

func (e *EmptyHistoryError) Unwrap() error {
	return ErrEmptyHistory
}

// AgeAt returns the player's age at a date. The calendar-year basis ignores
// month and day; the exact basis counts completed years.
func AgeAt(birth, at time.Time, basis string) int {
	age := at.Year() - birth.Year()
	if basis == domain.AgeBasisExact {
		if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
			age--
		}
	}
	return age
}

// InclusiveDays counts calendar days from start to end, both included
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// NormalizeHistory validates, enriches and sorts registration records.
// Unusable records are returned as skipped rather than failing the call.
func NormalizeHistory(records []domain.PeriodRecord, birth time.Time, ageBasis string) ([]domain.RegistrationPeriod, []domain.SkippedPeriod, error) {
	periods := make([]domain.RegistrationPeriod, 0, len(records))
	var skipped []domain.SkippedPeriod

	for i, rec := range records {
		period, err := normalizePeriod(rec, birth, ageBasis)
		if err != nil {
			skipped = append(skipped, domain.SkippedPeriod{Index: i, Club: rec.Club, Reason: err.Error()})
			continue
		}
		periods = append(periods, period)
	}

	if len(periods) == 0 {
		return nil, skipped, &EmptyHistoryError{Received: len(records), Skipped: len(skipped)}
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})

	return periods, skipped, nil
}

// normalizePeriod converts a single record
func normalizePeriod(rec domain.PeriodRecord, birth time.Time, ageBasis string) (domain.RegistrationPeriod, error) {
	if strings.TrimSpace(rec.Club) == "" {
		return domain.RegistrationPeriod{}, fmt.Errorf("club name is missing")
	}
	start, err := domain.ParseDate(rec.Start)
	if err != nil {
		return domain.RegistrationPeriod{}, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseDate(rec.End)
	if err != nil {
		return domain.RegistrationPeriod{}, fmt.Errorf("end: %w", err)
	}

	days := InclusiveDays(start, end)
	if days <= 0 {
		return domain.RegistrationPeriod{}, fmt.Errorf("end %s precedes start %s", rec.End, rec.Start)
	}
	if start.Before(birth) {
		return domain.RegistrationPeriod{}, fmt.Errorf("starts before the player's birth date")
	}

	category, err := domain.ParseCategory(rec.Category)
	if err != nil {
		return domain.RegistrationPeriod{}, err
	}
	status, err := domain.ParsePlayerStatus(rec.Status)
	if err != nil {
		return domain.RegistrationPeriod{}, err
	}

	return domain.RegistrationPeriod{
		Club:       strings.TrimSpace(rec.Club),
		Country:    strings.ToUpper(strings.TrimSpace(rec.Country)),
		Category:   category,
		Status:     status,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		AgeAtStart: AgeAt(birth, start, ageBasis),
	}, nil
}
