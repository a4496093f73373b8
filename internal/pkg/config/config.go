package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"transaction-risk-engine/internal/domain/risk"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RiskConfig tunes the decision engine and feature encoding.
type RiskConfig struct {
	SuspiciousAmountThreshold    float64       `mapstructure:"suspicious_amount_threshold"`
	HighFrequencyThreshold       float64       `mapstructure:"high_frequency_threshold"`
	UnusualHourStart             int           `mapstructure:"unusual_hour_start"`
	UnusualHourEnd               int           `mapstructure:"unusual_hour_end"`
	MaxAssumedAmount             float64       `mapstructure:"max_assumed_amount"`
	IncludeUnusualPatternFeature bool          `mapstructure:"include_unusual_pattern_feature"`
	DecisionTimeout              time.Duration `mapstructure:"decision_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration suitable for local development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:      true,
			Host:         "localhost",
			Port:         6379,
			DB:           0,
			PoolSize:     10,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:         false,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			Name:            "risk_engine",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Risk: RiskConfig{
			SuspiciousAmountThreshold: 2000.0,
			HighFrequencyThreshold:    0.6,
			UnusualHourStart:          2,
			UnusualHourEnd:            5,
			MaxAssumedAmount:          10000.0,
			DecisionTimeout:           2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Thresholds converts the risk settings into the engine's threshold set.
func (c RiskConfig) Thresholds() risk.Thresholds {
	return risk.Thresholds{
		SuspiciousAmount: decimal.NewFromFloat(c.SuspiciousAmountThreshold),
		HighFrequency:    c.HighFrequencyThreshold,
		UnusualHourStart: c.UnusualHourStart,
		UnusualHourEnd:   c.UnusualHourEnd,
	}
}

// Validate checks the configuration for values that would misbehave at
// runtime rather than fail fast.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Risk.SuspiciousAmountThreshold <= 0 {
		return fmt.Errorf("suspicious amount threshold must be positive, got %v", c.Risk.SuspiciousAmountThreshold)
	}
	if c.Risk.HighFrequencyThreshold <= 0 {
		return fmt.Errorf("high frequency threshold must be positive, got %v", c.Risk.HighFrequencyThreshold)
	}
	if c.Risk.UnusualHourStart < 0 || c.Risk.UnusualHourStart > 23 {
		return fmt.Errorf("unusual hour start must be within 0..23, got %d", c.Risk.UnusualHourStart)
	}
	if c.Risk.UnusualHourEnd < 0 || c.Risk.UnusualHourEnd > 23 {
		return fmt.Errorf("unusual hour end must be within 0..23, got %d", c.Risk.UnusualHourEnd)
	}
	if c.Risk.UnusualHourStart > c.Risk.UnusualHourEnd {
		return fmt.Errorf("unusual hour window start %d is after end %d", c.Risk.UnusualHourStart, c.Risk.UnusualHourEnd)
	}
	if c.Risk.MaxAssumedAmount <= 0 {
		return fmt.Errorf("max assumed amount must be positive, got %v", c.Risk.MaxAssumedAmount)
	}
	if c.Risk.DecisionTimeout <= 0 {
		return fmt.Errorf("decision timeout must be positive, got %v", c.Risk.DecisionTimeout)
	}
	return nil
}
