package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Backtest BacktestConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// EngineConfig holds level-detection tuning for the signal engine
type EngineConfig struct {
	LevelLookback  int
	LevelTolerance float64
}

// BacktestConfig holds replay tuning
type BacktestConfig struct {
	MinLookback int
	MaxHold     int
}

// KafkaConfig holds Kafka specific configuration; empty brokers disable
// event publishing
type KafkaConfig struct {
	Brokers  string
	ClientID string
	Topics   KafkaTopics
}

// KafkaTopics names the topics the engine publishes to
type KafkaTopics struct {
	SetupEvents    string
	BacktestEvents string
}

// AuthConfig holds token verification configuration
type AuthConfig struct {
	JWTSecret string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8086")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Engine defaults
	v.SetDefault("engine.levelLookback", 50)
	v.SetDefault("engine.levelTolerance", 0.003)

	// Backtest defaults
	v.SetDefault("backtest.minLookback", 30)
	v.SetDefault("backtest.maxHold", 20)

	// Kafka topic defaults
	v.SetDefault("kafka.clientID", "signal-engine")
	v.SetDefault("kafka.topics.setupEvents", "trade-setup-events")
	v.SetDefault("kafka.topics.backtestEvents", "backtest-events")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
