package core

import (
	"fmt"
	"sort"
)

// Expand materializes a transaction into its dated occurrences inside the
// inclusive [windowStart, windowEnd] range.
//
// A non-recurring transaction yields itself when its date falls in the
// window. A recurring one yields its anchor date as occurrence zero and
// then every interval step after it, stopping at the earlier of the
// pattern's end date and the window end. Step k is always computed from the
// anchor (not from occurrence k-1), so month-end clamping never drifts:
// Jan 31 monthly produces Feb 29, Mar 31, Apr 30.
//
// Expansion is pure: the same arguments always produce the same result, and
// the input transaction is never mutated. An inverted window yields an
// empty result rather than an error.
func Expand(tx Transaction, windowStart, windowEnd Date) ([]Occurrence, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if windowStart.IsZero() || windowEnd.IsZero() {
		return nil, fmt.Errorf("%w: window bounds are required", ErrInvalidWindow)
	}
	if windowEnd.Before(windowStart) {
		return nil, nil
	}

	if !tx.IsRecurring {
		if tx.Date.Before(windowStart) || tx.Date.After(windowEnd) {
			return nil, nil
		}
		return []Occurrence{occurrenceAt(tx, tx.Date, false)}, nil
	}

	last := windowEnd
	if !tx.Recurrence.EndDate.IsZero() && tx.Recurrence.EndDate.Before(last) {
		last = tx.Recurrence.EndDate
	}

	var out []Occurrence
	for k := 0; ; k++ {
		date, err := tx.Date.AddInterval(tx.Recurrence.Frequency, k*tx.Recurrence.Interval)
		if err != nil {
			return nil, err
		}
		if date.After(last) {
			break
		}
		if !date.Before(windowStart) {
			out = append(out, occurrenceAt(tx, date, true))
		}
	}
	return out, nil
}

// ExpandAll expands every transaction over the window and merges the
// results into a single date-ordered sequence. Occurrences sharing a date
// keep template input order, then occurrence index; the sort below is
// stable, so expansion order is the tiebreak.
func ExpandAll(txs []Transaction, windowStart, windowEnd Date) ([]Occurrence, error) {
	var merged []Occurrence
	for _, tx := range txs {
		occs, err := Expand(tx, windowStart, windowEnd)
		if err != nil {
			return nil, fmt.Errorf("expand transaction %s: %w", tx.ID, err)
		}
		merged = append(merged, occs...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged, nil
}

func occurrenceAt(tx Transaction, date Date, synthetic bool) Occurrence {
	id := tx.ID
	if synthetic {
		id = fmt.Sprintf("%s_%s", tx.ID, date)
	}
	return Occurrence{
		ID:       id,
		SourceID: tx.ID,
		Date:     date,
		Name:     tx.Name,
		Amount:   tx.Amount,
		Note:     tx.Note,
	}
}
