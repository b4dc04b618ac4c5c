package core

import "fmt"

// MonthGrid builds the calendar view for one month: the month's days plus
// enough leading days from the previous month to align the first day to its
// weekday column (weeks start on Sunday) and enough trailing days from the
// next month to complete the last week. The cell count is always a multiple
// of seven.
//
// Every cell, padding included, carries the real projected balance for its
// date; the whole grid is served by a single BalanceSeries pass over the
// padded range.
func MonthGrid(txs []Transaction, cfg AccountConfig, year, month int) ([]CalendarDay, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidWindow, month)
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidWindow, year)
	}

	first := NewDate(year, month, 1)
	last := NewDate(year, month, DaysInMonth(year, month))

	leading := first.Weekday()
	trailing := 6 - last.Weekday()
	gridStart := first.AddDays(-leading)
	gridEnd := last.AddDays(trailing)

	series, err := BalanceSeries(txs, cfg, gridStart, gridEnd)
	if err != nil {
		return nil, err
	}

	grid := make([]CalendarDay, len(series))
	for i, point := range series {
		grid[i] = CalendarDay{
			DailyBalancePoint: point,
			IsCurrentMonth:    point.Date.Year() == year && point.Date.Month() == month,
		}
	}
	return grid, nil
}
