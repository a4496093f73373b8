package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"zero amount threshold", func(c *Config) { c.Risk.SuspiciousAmountThreshold = 0 }},
		{"negative frequency threshold", func(c *Config) { c.Risk.HighFrequencyThreshold = -1 }},
		{"hour start out of range", func(c *Config) { c.Risk.UnusualHourStart = 24 }},
		{"hour end out of range", func(c *Config) { c.Risk.UnusualHourEnd = -1 }},
		{"inverted hour window", func(c *Config) { c.Risk.UnusualHourStart = 6; c.Risk.UnusualHourEnd = 2 }},
		{"zero max amount", func(c *Config) { c.Risk.MaxAssumedAmount = 0 }},
		{"zero decision timeout", func(c *Config) { c.Risk.DecisionTimeout = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestThresholdsConversion(t *testing.T) {
	cfg := DefaultConfig()

	thresholds := cfg.Risk.Thresholds()

	assert.True(t, thresholds.SuspiciousAmount.Equal(thresholds.SuspiciousAmount.Truncate(0)))
	assert.InDelta(t, cfg.Risk.HighFrequencyThreshold, thresholds.HighFrequency, 1e-9)
	assert.Equal(t, cfg.Risk.UnusualHourStart, thresholds.UnusualHourStart)
	assert.Equal(t, cfg.Risk.UnusualHourEnd, thresholds.UnusualHourEnd)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
	assert.Equal(t, DefaultConfig().Risk.SuspiciousAmountThreshold, cfg.Risk.SuspiciousAmountThreshold)
	assert.NoError(t, cfg.Validate())
}
