package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/timenest/timenest-api/pkg/types"
)

var (
	// ErrInvalidDayOfWeek day of week outside 0..6
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidTimeWindow start time is not strictly before end time
	ErrInvalidTimeWindow = errors.New("start time must be before end time")

	// ErrInvalidValidityRange validFrom is after validUntil
	ErrInvalidValidityRange = errors.New("validFrom must not be after validUntil")
)

// AvailabilityRule weekly recurring availability window of a user
// Recurs every DayOfWeek for each date ValidFrom <= d <= ValidUntil
type AvailabilityRule struct {
	ID         string
	OwnerID    string
	DayOfWeek  int // 0 = воскресенье ... 6 = суббота
	StartTime  types.TimeOfDay
	EndTime    types.TimeOfDay
	ValidFrom  types.Date // включительно
	ValidUntil types.Date // включительно
	CreatedAt  time.Time
}

// Validate checks the fields the slot resolver relies on
// A rule with EndTime <= StartTime is still valid here: only StartTime produces a slot
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, r.DayOfWeek)
	}
	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	return nil
}

// ValidateWindow checks the write-time constraints on top of Validate
func (r *AvailabilityRule) ValidateWindow() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.StartTime.Before(r.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeWindow, r.StartTime, r.EndTime)
	}
	if r.ValidFrom.After(r.ValidUntil) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidValidityRange, r.ValidFrom, r.ValidUntil)
	}
	return nil
}

// Weekday returns DayOfWeek as time.Weekday
func (r *AvailabilityRule) Weekday() time.Weekday {
	return time.Weekday(r.DayOfWeek)
}

// AppliesOn returns true if the rule recurs on the given date
func (r *AvailabilityRule) AppliesOn(date types.Date) bool {
	return date.Weekday() == r.Weekday() && date.Within(r.ValidFrom, r.ValidUntil)
}

// AvailabilityRecord raw availability row as stored
// Time columns are kept as text until converted with ToRule
type AvailabilityRecord struct {
	ID         string
	OwnerID    string
	DayOfWeek  int
	StartTime  string
	EndTime    string
	ValidFrom  types.Date
	ValidUntil types.Date
	CreatedAt  time.Time
}

// ToRule parses the record into a validated AvailabilityRule
func (r *AvailabilityRecord) ToRule() (AvailabilityRule, error) {
	start, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return AvailabilityRule{}, fmt.Errorf("rule %s: start time: %w", r.ID, err)
	}
	end, err := types.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return AvailabilityRule{}, fmt.Errorf("rule %s: end time: %w", r.ID, err)
	}

	rule := AvailabilityRule{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  start,
		EndTime:    end,
		ValidFrom:  r.ValidFrom,
		ValidUntil: r.ValidUntil,
		CreatedAt:  r.CreatedAt,
	}
	if err := rule.Validate(); err != nil {
		return AvailabilityRule{}, fmt.Errorf("rule %s: %w", r.ID, err)
	}
	return rule, nil
}
