package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/model"
)

const publishMaxElapsed = 10 * time.Second

// messageWriter is the subset of kafka.Writer the publisher uses. Tests swap
// in a capturing implementation.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher produces engine events to Kafka topics. A nil Publisher is valid
// and drops everything, so callers never need to branch on whether events
// are configured.
//
// All writers are created up front, one per topic, so the map is read-only
// after construction and safe for concurrent publishes.
type Publisher struct {
	writers     map[string]messageWriter
	setupTopic  string
	resultTopic string
	logger      *zap.Logger
}

// SetupEvent is published for every ranked setup list the engine emits
type SetupEvent struct {
	Symbol      string             `json:"symbol"`
	GeneratedAt time.Time          `json:"generated_at"`
	Setups      []model.TradeSetup `json:"setups"`
}

// BacktestEvent is published when a replay run completes
type BacktestEvent struct {
	Result      model.BacktestResult `json:"result"`
	CompletedAt time.Time            `json:"completed_at"`
}

// NewPublisher creates a Kafka publisher with a writer per topic, or nil when
// no brokers are configured.
func NewPublisher(brokers, clientID, setupTopic, resultTopic string, logger *zap.Logger) *Publisher {
	if strings.TrimSpace(brokers) == "" {
		logger.Info("Kafka brokers not configured, event publishing disabled")
		return nil
	}

	addrs := strings.Split(brokers, ",")
	writers := make(map[string]messageWriter)
	for _, topic := range []string{setupTopic, resultTopic} {
		if _, exists := writers[topic]; !exists {
			writers[topic] = newWriter(addrs, clientID, topic)
		}
	}

	return &Publisher{
		writers:     writers,
		setupTopic:  setupTopic,
		resultTopic: resultTopic,
		logger:      logger,
	}
}

// PublishSetups sends the ranked setup list for a symbol to the setup topic.
func (p *Publisher) PublishSetups(ctx context.Context, symbol string, setups []model.TradeSetup, generatedAt time.Time) {
	if p == nil || len(setups) == 0 {
		return
	}
	p.publish(ctx, p.setupTopic, symbol, SetupEvent{
		Symbol:      symbol,
		GeneratedAt: generatedAt,
		Setups:      setups,
	})
}

// PublishBacktestResult sends a completed replay run to the backtest topic,
// stamped with the caller's clock.
func (p *Publisher) PublishBacktestResult(ctx context.Context, result model.BacktestResult, completedAt time.Time) {
	if p == nil {
		return
	}
	p.publish(ctx, p.resultTopic, result.Symbol, BacktestEvent{
		Result:      result,
		CompletedAt: completedAt,
	})
}

// publish writes one message, retrying transient failures with exponential
// backoff. Publishing is best effort: a final failure is logged, never
// returned to the signal path.
func (p *Publisher) publish(ctx context.Context, topic, key string, value interface{}) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.String("topic", topic),
			zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
		Time:  time.Now(),
	}

	writer, ok := p.writers[topic]
	if !ok {
		p.logger.Error("No writer for topic", zap.String("topic", topic))
		return
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = publishMaxElapsed
	err = backoff.Retry(func() error {
		return writer.WriteMessages(ctx, msg)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err))
		return
	}

	p.logger.Debug("Event published",
		zap.String("topic", topic),
		zap.String("key", key))
}

// newWriter builds a Kafka writer for one topic
func newWriter(addrs []string, clientID, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: clientID,
		},
	}
}

// Close closes all Kafka writers
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer",
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
	return nil
}
