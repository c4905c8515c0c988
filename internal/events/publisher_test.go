package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/model"
)

// capturingWriter records messages instead of talking to a broker.
type capturingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *capturingWriter) Close() error { return nil }

func (w *capturingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.msgs)
}

func newCapturedPublisher(t *testing.T) (*Publisher, *capturingWriter, *capturingWriter) {
	t.Helper()
	p := NewPublisher("localhost:9092", "signal-engine", "trade-setup-events", "backtest-events", zap.NewNop())
	require.NotNil(t, p)

	setups := &capturingWriter{}
	results := &capturingWriter{}
	p.writers["trade-setup-events"] = setups
	p.writers["backtest-events"] = results
	return p, setups, results
}

func TestNewPublisherDisabledWithoutBrokers(t *testing.T) {
	p := NewPublisher("", "signal-engine", "a", "b", zap.NewNop())
	assert.Nil(t, p)

	// A nil publisher drops everything without panicking.
	p.PublishSetups(context.Background(), "ACME", []model.TradeSetup{{Symbol: "ACME"}}, time.Now())
	p.PublishBacktestResult(context.Background(), model.BacktestResult{}, time.Now())
	assert.NoError(t, p.Close())
}

func TestNewPublisherCreatesAllWritersUpFront(t *testing.T) {
	p := NewPublisher("localhost:9092", "signal-engine", "trade-setup-events", "backtest-events", zap.NewNop())
	require.NotNil(t, p)

	assert.Len(t, p.writers, 2)
	assert.Contains(t, p.writers, "trade-setup-events")
	assert.Contains(t, p.writers, "backtest-events")
}

func TestConcurrentPublishesToBothTopics(t *testing.T) {
	p, setups, results := newCapturedPublisher(t)
	ctx := context.Background()
	now := time.Now()

	const pairs = 50
	var wg sync.WaitGroup
	wg.Add(2 * pairs)
	for i := 0; i < pairs; i++ {
		go func() {
			defer wg.Done()
			p.PublishSetups(ctx, "ACME", []model.TradeSetup{{Symbol: "ACME"}}, now)
		}()
		go func() {
			defer wg.Done()
			p.PublishBacktestResult(ctx, model.BacktestResult{Symbol: "ACME"}, now)
		}()
	}
	wg.Wait()

	assert.Equal(t, pairs, setups.count())
	assert.Equal(t, pairs, results.count())
}

func TestPublishBacktestResultStampsCallerClock(t *testing.T) {
	p, _, results := newCapturedPublisher(t)
	completedAt := time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC)

	p.PublishBacktestResult(context.Background(), model.BacktestResult{Symbol: "ACME"}, completedAt)

	require.Equal(t, 1, results.count())
	var event BacktestEvent
	require.NoError(t, json.Unmarshal(results.msgs[0].Value, &event))
	assert.Equal(t, "ACME", event.Result.Symbol)
	assert.True(t, event.CompletedAt.Equal(completedAt))
	assert.Equal(t, "ACME", string(results.msgs[0].Key))
}

func TestPublishSetupsSkipsEmptyList(t *testing.T) {
	p, setups, _ := newCapturedPublisher(t)

	p.PublishSetups(context.Background(), "ACME", nil, time.Now())

	assert.Zero(t, setups.count())
}
