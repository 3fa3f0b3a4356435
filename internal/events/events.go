// Package events publishes trade settlement notifications after commit.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"gemtrade/internal/logger"
)

// TradeSettled is emitted once per committed buy or sell.
type TradeSettled struct {
	TradeID     string          `json:"trade_id"`
	UserID      string          `json:"user_id"`
	AssetID     string          `json:"asset_id"`
	Side        string          `json:"side"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	GemsAwarded int64           `json:"gems_awarded"`
	GemCount    int64           `json:"gem_count"`
	TradeCount  int64           `json:"trade_count"`
	ExecutedAt  time.Time       `json:"executed_at"`
}

// Publisher delivers settlement events.
type Publisher interface {
	PublishTradeSettled(ctx context.Context, evt TradeSettled) error
	Close() error
}

// KafkaPublisher writes events as JSON to a Kafka topic keyed by user id,
// so each user's trades land on one partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// publishBatchTimeout bounds how long a synchronous write waits for its batch
// to fill. Publishing sits on the trade response path.
const publishBatchTimeout = 10 * time.Millisecond

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           publishBatchTimeout,
			MaxAttempts:            3,
			WriteBackoffMin:        50 * time.Millisecond,
			WriteBackoffMax:        500 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) PublishTradeSettled(ctx context.Context, evt TradeSettled) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal trade event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.UserID),
		Value: data,
		Time:  evt.ExecutedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish trade event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher logs events instead of sending them. Used when no brokers
// are configured.
type LogPublisher struct{}

func (LogPublisher) PublishTradeSettled(_ context.Context, evt TradeSettled) error {
	logger.Get().Infow("trade settled",
		"trade_id", evt.TradeID,
		"user_id", evt.UserID,
		"asset_id", evt.AssetID,
		"side", evt.Side,
		"quantity", evt.Quantity,
		"total", evt.Total.String(),
		"gems_awarded", evt.GemsAwarded,
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

// New picks the Kafka publisher when brokers are configured.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return LogPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
