package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// LowBalanceAlert is published when the projected balance drops below
// the configured threshold within the alert horizon.
type LowBalanceAlert struct {
	Date           string    `json:"date"`
	BalanceCents   int64     `json:"balance_cents"`
	ThresholdCents int64     `json:"threshold_cents"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewLowBalanceAlert(date string, balanceCents, thresholdCents int64) LowBalanceAlert {
	return LowBalanceAlert{
		Date:           date,
		BalanceCents:   balanceCents,
		ThresholdCents: thresholdCents,
		Timestamp:      time.Now().UTC(),
	}
}

func (m LowBalanceAlert) ToJSON() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal low balance alert: %w", err)
	}
	return data, nil
}

func LowBalanceAlertFromJSON(data []byte) (*LowBalanceAlert, error) {
	var msg LowBalanceAlert
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal low balance alert: %w", err)
	}
	return &msg, nil
}
