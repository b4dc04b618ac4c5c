package amqp

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
)

type fakeAcknowledger struct {
	acked         bool
	nacked        bool
	nackedRequeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.nackedRequeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func delivery(t *testing.T, ack *fakeAcknowledger, body []byte) amqp091.Delivery {
	t.Helper()
	return amqp091.Delivery{
		Acknowledger: ack,
		Body:         body,
	}
}

func TestDispatchAlertAcksOnSuccess(t *testing.T) {
	alert := NewLowBalanceAlert("2024-03-15", -500, 0)
	body, err := alert.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	ack := &fakeAcknowledger{}
	var handled *LowBalanceAlert
	dispatchAlert(context.Background(), delivery(t, ack, body), func(a *LowBalanceAlert) error {
		handled = a
		return nil
	})

	if handled == nil || handled.Date != "2024-03-15" {
		t.Fatalf("handler got %+v, want alert for 2024-03-15", handled)
	}
	if !ack.acked || ack.nacked {
		t.Errorf("settlement = ack %v nack %v, want ack only", ack.acked, ack.nacked)
	}
}

func TestDispatchAlertRequeuesOnHandlerError(t *testing.T) {
	alert := NewLowBalanceAlert("2024-03-15", -500, 0)
	body, err := alert.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	ack := &fakeAcknowledger{}
	dispatchAlert(context.Background(), delivery(t, ack, body), func(a *LowBalanceAlert) error {
		return errors.New("notification sink down")
	})

	if ack.acked {
		t.Error("failed delivery was acked")
	}
	if !ack.nacked || !ack.nackedRequeue {
		t.Errorf("settlement = nack %v requeue %v, want nack with requeue", ack.nacked, ack.nackedRequeue)
	}
}

func TestDispatchAlertDropsUndecodableMessage(t *testing.T) {
	ack := &fakeAcknowledger{}
	handlerCalled := false
	dispatchAlert(context.Background(), delivery(t, ack, []byte("{not json")), func(a *LowBalanceAlert) error {
		handlerCalled = true
		return nil
	})

	if handlerCalled {
		t.Error("handler was called for an undecodable message")
	}
	if ack.acked {
		t.Error("undecodable delivery was acked")
	}
	if !ack.nacked || ack.nackedRequeue {
		t.Errorf("settlement = nack %v requeue %v, want nack without requeue", ack.nacked, ack.nackedRequeue)
	}
}
