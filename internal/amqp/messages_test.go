package amqp

import (
	"testing"
	"time"
)

func TestLowBalanceAlertJSON(t *testing.T) {
	alert := NewLowBalanceAlert("2024-03-15", -12050, 0)

	data, err := alert.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := LowBalanceAlertFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if got.Date != "2024-03-15" {
		t.Errorf("Date = %q, want 2024-03-15", got.Date)
	}
	if got.BalanceCents != -12050 || got.ThresholdCents != 0 {
		t.Errorf("amounts = %d/%d, want -12050/0", got.BalanceCents, got.ThresholdCents)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("Timestamp = %v, want recent", got.Timestamp)
	}
}

func TestLowBalanceAlertFromInvalidJSON(t *testing.T) {
	if _, err := LowBalanceAlertFromJSON([]byte("{not json")); err == nil {
		t.Error("FromJSON() error = nil, want parse error")
	}
}
