package core

import (
	"errors"
	"testing"
)

func testConfig() AccountConfig {
	return AccountConfig{
		StartingBalance: Money{Cents: 0},
		StartingDate:    NewDate(2024, 1, 1),
		Timezone:        "UTC",
	}
}

func pointFor(t *testing.T, series []DailyBalancePoint, date string) DailyBalancePoint {
	t.Helper()
	for _, p := range series {
		if p.Date.String() == date {
			return p
		}
	}
	t.Fatalf("no point for %s in series of %d days", date, len(series))
	return DailyBalancePoint{}
}

func TestBalanceSeriesScenario(t *testing.T) {
	// One-off +1000 on Jan 1, monthly -50 anchored Jan 1: balance settles
	// at 950 through January, 900 through February, 850 from March 1.
	txs := []Transaction{
		{ID: "pay", Date: NewDate(2024, 1, 1), Name: "Deposit", Amount: Money{Cents: 100000}},
		{
			ID: "fee", Date: NewDate(2024, 1, 1), Name: "Fee", Amount: Money{Cents: -5000},
			IsRecurring: true,
			Recurrence:  &RecurrencePattern{Frequency: Monthly, Interval: 1},
		},
	}

	series, err := BalanceSeries(txs, testConfig(), NewDate(2024, 1, 1), NewDate(2024, 3, 1))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}
	if len(series) != 61 {
		t.Fatalf("series length = %d, want 61 days", len(series))
	}

	checks := map[string]int64{
		"2024-01-01": 95000,
		"2024-01-15": 95000,
		"2024-01-31": 95000,
		"2024-02-01": 90000,
		"2024-02-29": 90000,
		"2024-03-01": 85000,
	}
	for date, want := range checks {
		if got := pointFor(t, series, date).Balance.Cents; got != want {
			t.Errorf("balance(%s) = %d, want %d", date, got, want)
		}
	}

	jan1 := pointFor(t, series, "2024-01-01")
	if len(jan1.Transactions) != 2 {
		t.Fatalf("transactions on 2024-01-01 = %d, want 2", len(jan1.Transactions))
	}
	if jan1.Transactions[0].SourceID != "pay" || jan1.Transactions[1].SourceID != "fee" {
		t.Errorf("same-date order = %s, %s; want template input order pay, fee",
			jan1.Transactions[0].SourceID, jan1.Transactions[1].SourceID)
	}
}

func TestBalanceSeriesContinuity(t *testing.T) {
	txs := []Transaction{
		{
			ID: "rent", Date: NewDate(2024, 1, 31), Name: "Rent", Amount: Money{Cents: -120000},
			IsRecurring: true,
			Recurrence:  &RecurrencePattern{Frequency: Monthly, Interval: 1},
		},
		{
			ID: "salary", Date: NewDate(2024, 1, 5), Name: "Salary", Amount: Money{Cents: 300000},
			IsRecurring: true,
			Recurrence:  &RecurrencePattern{Frequency: Monthly, Interval: 1},
		},
		{ID: "tv", Date: NewDate(2024, 2, 14), Name: "Television", Amount: Money{Cents: -49999}},
	}

	cfg := testConfig()
	cfg.StartingBalance = Money{Cents: 500000}

	series, err := BalanceSeries(txs, cfg, NewDate(2024, 1, 1), NewDate(2024, 4, 30))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}

	for i := 1; i < len(series); i++ {
		var dayTotal int64
		for _, occ := range series[i].Transactions {
			dayTotal += occ.Amount.Cents
		}
		diff := series[i].Balance.Cents - series[i-1].Balance.Cents
		if diff != dayTotal {
			t.Errorf("balance(%s) - balance(%s) = %d, want sum of day's occurrences %d",
				series[i].Date, series[i-1].Date, diff, dayTotal)
		}
	}
}

func TestBalanceSeriesPreStartDays(t *testing.T) {
	cfg := AccountConfig{
		StartingBalance: Money{Cents: 100000},
		StartingDate:    NewDate(2024, 2, 1),
		Timezone:        "UTC",
	}
	// Dated before the starting date: listed, but never counted.
	txs := []Transaction{
		{ID: "old", Date: NewDate(2024, 1, 10), Name: "Prehistory", Amount: Money{Cents: -999900}},
	}

	series, err := BalanceSeries(txs, cfg, NewDate(2024, 1, 5), NewDate(2024, 2, 5))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}

	if got := pointFor(t, series, "2024-01-15").Balance.Cents; got != 100000 {
		t.Errorf("pre-start balance = %d, want startingBalance 100000", got)
	}
	if got := pointFor(t, series, "2024-02-05").Balance.Cents; got != 100000 {
		t.Errorf("post-start balance = %d, want 100000 (pre-start occurrence ignored)", got)
	}
	if got := pointFor(t, series, "2024-01-10").Transactions; len(got) != 1 {
		t.Errorf("pre-start occurrence should still be listed on its date, got %d", len(got))
	}
}

func TestBalanceSeriesCountsOccurrencesBeforeWindowStart(t *testing.T) {
	// A deposit between the starting date and the window start must be
	// reflected in the balance at the window start.
	cfg := testConfig()
	txs := []Transaction{
		{ID: "early", Date: NewDate(2024, 1, 10), Name: "Deposit", Amount: Money{Cents: 25000}},
	}

	series, err := BalanceSeries(txs, cfg, NewDate(2024, 2, 1), NewDate(2024, 2, 3))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	if got := series[0].Balance.Cents; got != 25000 {
		t.Errorf("balance at window start = %d, want 25000", got)
	}
}

func TestBalanceSeriesEmptyInput(t *testing.T) {
	cfg := testConfig()
	cfg.StartingBalance = Money{Cents: 123456}

	series, err := BalanceSeries(nil, cfg, NewDate(2024, 3, 1), NewDate(2024, 3, 10))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}
	if len(series) != 10 {
		t.Fatalf("series length = %d, want 10", len(series))
	}
	for _, p := range series {
		if p.Balance.Cents != 123456 {
			t.Errorf("balance(%s) = %d, want startingBalance", p.Date, p.Balance.Cents)
		}
		if len(p.Transactions) != 0 {
			t.Errorf("transactions(%s) = %d, want none", p.Date, len(p.Transactions))
		}
	}
}

func TestBalanceSeriesInvertedWindow(t *testing.T) {
	series, err := BalanceSeries(nil, testConfig(), NewDate(2024, 3, 10), NewDate(2024, 3, 1))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}
	if len(series) != 0 {
		t.Errorf("inverted window produced %d points, want 0", len(series))
	}
}

func TestBalanceSeriesInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Nowhere/Special"
	_, err := BalanceSeries(nil, cfg, NewDate(2024, 1, 1), NewDate(2024, 1, 2))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("BalanceSeries() error = %v, want ErrInvalidConfig", err)
	}
}
