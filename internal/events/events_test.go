package events

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNew(t *testing.T) {
	t.Run("log_publisher_without_brokers", func(t *testing.T) {
		if _, ok := New(nil, "trades").(LogPublisher); !ok {
			t.Error("expected LogPublisher")
		}
	})

	t.Run("kafka_publisher_with_brokers", func(t *testing.T) {
		p := New([]string{"localhost:9092"}, "trades")
		kp, ok := p.(*KafkaPublisher)
		if !ok {
			t.Fatalf("expected *KafkaPublisher, got %T", p)
		}
		if kp.writer.Topic != "trades" {
			t.Errorf("expected topic trades, got %s", kp.writer.Topic)
		}
		if kp.writer.BatchTimeout != publishBatchTimeout {
			t.Errorf("expected batch timeout %s, got %s", publishBatchTimeout, kp.writer.BatchTimeout)
		}
		_ = p.Close()
	})
}

func TestLogPublisher(t *testing.T) {
	err := LogPublisher{}.PublishTradeSettled(context.Background(), TradeSettled{
		TradeID:    "t1",
		UserID:     "u1",
		Side:       "buy",
		Quantity:   2,
		Price:      decimal.NewFromInt(5),
		Total:      decimal.NewFromInt(10),
		ExecutedAt: time.Now(),
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
