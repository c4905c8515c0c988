package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"8086\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8086", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Engine.LevelLookback)
	assert.Equal(t, 0.003, cfg.Engine.LevelTolerance)
	assert.Equal(t, 30, cfg.Backtest.MinLookback)
	assert.Equal(t, 20, cfg.Backtest.MaxHold)
	assert.Equal(t, "signal-engine", cfg.Kafka.ClientID)
	assert.Equal(t, "trade-setup-events", cfg.Kafka.Topics.SetupEvents)
	assert.Equal(t, "backtest-events", cfg.Kafka.Topics.BacktestEvents)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
engine:
  levelLookback: 80
  levelTolerance: 0.005
backtest:
  minLookback: 40
  maxHold: 12
kafka:
  brokers: "localhost:9092"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 80, cfg.Engine.LevelLookback)
	assert.Equal(t, 0.005, cfg.Engine.LevelTolerance)
	assert.Equal(t, 40, cfg.Backtest.MinLookback)
	assert.Equal(t, 12, cfg.Backtest.MaxHold)
	assert.Equal(t, "localhost:9092", cfg.Kafka.Brokers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
