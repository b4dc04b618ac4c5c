package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	Frequency string

	// Transaction is either a one-off entry or a recurring template.
	// Recurrence is only consulted when IsRecurring is set.
	Transaction struct {
		ID          string
		Date        Date
		Name        string
		Amount      Money
		Note        string
		IsRecurring bool
		Recurrence  *RecurrencePattern
	}

	RecurrencePattern struct {
		Frequency Frequency
		Interval  int
		EndDate   Date // zero value means the pattern never ends
	}

	// AccountConfig anchors every balance projection. A single instance
	// exists per account; updates replace it wholesale.
	AccountConfig struct {
		StartingBalance Money
		StartingDate    Date
		Timezone        string
	}

	// Occurrence is one concrete dated instance generated from a
	// transaction template. ID is synthetic for expanded series so
	// occurrences stay distinguishable but traceable to their source.
	Occurrence struct {
		ID       string
		SourceID string
		Date     Date
		Name     string
		Amount   Money
		Note     string
	}

	// DailyBalancePoint is the account state as of end-of-day Date.
	DailyBalancePoint struct {
		Date         Date
		Balance      Money
		Transactions []Occurrence
	}

	// CalendarDay is a DailyBalancePoint placed in a month grid. Padding
	// cells from adjacent months have IsCurrentMonth unset but still carry
	// real projected balances.
	CalendarDay struct {
		DailyBalancePoint
		IsCurrentMonth bool
	}
)

var (
	ErrInvalidRecurrencePattern = errors.New("invalid recurrence pattern")
	ErrInvalidWindow            = errors.New("invalid window")
	ErrInvalidConfig            = errors.New("invalid account config")

	ErrEmptyName     = errors.New("empty transaction name")
	ErrInvalidAmount = errors.New("invalid amount")
)

// IsValid reports whether f is one of the supported frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", ErrInvalidWindow)
	}
	if len(strings.TrimSpace(t.Name)) == 0 {
		return ErrEmptyName
	}
	if len(t.Name) > 200 {
		return errors.New("transaction name too long (max 200 characters)")
	}
	if t.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	if !t.IsRecurring {
		return nil
	}
	if t.Recurrence == nil {
		return fmt.Errorf("%w: recurring transaction without a pattern", ErrInvalidRecurrencePattern)
	}
	return t.Recurrence.Validate(t.Date)
}

// Validate checks the pattern against the anchor date of its transaction.
func (p RecurrencePattern) Validate(anchor Date) error {
	if !p.Frequency.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurrencePattern, p.Frequency)
	}
	if p.Interval < 1 {
		return fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidRecurrencePattern, p.Interval)
	}
	if p.Interval > 1000 {
		return fmt.Errorf("%w: interval too large, got %d (max 1000)", ErrInvalidRecurrencePattern, p.Interval)
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(anchor) {
		return fmt.Errorf("%w: end date %s precedes anchor %s", ErrInvalidRecurrencePattern, p.EndDate, anchor)
	}
	return nil
}

func (c AccountConfig) Validate() error {
	if c.StartingDate.IsZero() {
		return fmt.Errorf("%w: starting date is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Timezone) == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, c.Timezone)
	}
	return nil
}
