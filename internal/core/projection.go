package core

import "fmt"

// BalanceSeries projects the account balance for every calendar day in the
// inclusive [windowStart, windowEnd] range.
//
// Balance semantics are anchored at cfg.StartingDate: days before it carry
// exactly cfg.StartingBalance, and occurrences dated before it never count,
// even when the requested window reaches further back. From the starting
// date on, balance(day) is the starting balance plus every occurrence
// amount dated in [StartingDate, day]. The sum is accumulated once, day by
// day in ascending order, so the result is a single deterministic total
// rather than a per-day re-sum.
//
// An inverted window yields an empty series. With no transactions every
// point carries the starting balance.
func BalanceSeries(txs []Transaction, cfg AccountConfig, windowStart, windowEnd Date) ([]DailyBalancePoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if windowStart.IsZero() || windowEnd.IsZero() {
		return nil, fmt.Errorf("%w: window bounds are required", ErrInvalidWindow)
	}
	if windowEnd.Before(windowStart) {
		return nil, nil
	}

	// Occurrences between the starting date and the window start still
	// move the balance at the window start, so expansion covers both.
	expandStart := windowStart
	if cfg.StartingDate.Before(expandStart) {
		expandStart = cfg.StartingDate
	}
	occs, err := ExpandAll(txs, expandStart, windowEnd)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]Occurrence, len(occs))
	for _, occ := range occs {
		key := occ.Date.String()
		byDate[key] = append(byDate[key], occ)
	}

	days := windowEnd.daysSince(windowStart) + 1
	series := make([]DailyBalancePoint, 0, days)

	balance := cfg.StartingBalance
	for day := expandStart; !day.After(windowEnd); day = day.AddDays(1) {
		todays := byDate[day.String()]
		if !day.Before(cfg.StartingDate) {
			for _, occ := range todays {
				balance = balance.Add(occ.Amount)
			}
		}
		if day.Before(windowStart) {
			continue
		}
		series = append(series, DailyBalancePoint{
			Date:         day,
			Balance:      balance,
			Transactions: todays,
		})
	}
	return series, nil
}

// daysSince returns the whole days from other to d; both are midnight UTC
// so the division is exact.
func (d Date) daysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}
