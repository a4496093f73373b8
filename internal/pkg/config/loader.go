package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the given file (optional) and RISK_*
// environment variables, layered over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("redis.enabled", defaults.Redis.Enabled)
	v.SetDefault("redis.host", defaults.Redis.Host)
	v.SetDefault("redis.port", defaults.Redis.Port)
	v.SetDefault("redis.password", defaults.Redis.Password)
	v.SetDefault("redis.db", defaults.Redis.DB)
	v.SetDefault("redis.pool_size", defaults.Redis.PoolSize)
	v.SetDefault("redis.read_timeout", defaults.Redis.ReadTimeout)
	v.SetDefault("redis.write_timeout", defaults.Redis.WriteTimeout)

	v.SetDefault("database.enabled", defaults.Database.Enabled)
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.name", defaults.Database.Name)
	v.SetDefault("database.ssl_mode", defaults.Database.SSLMode)
	v.SetDefault("database.max_open_conns", defaults.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaults.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", defaults.Database.ConnMaxLifetime)

	v.SetDefault("risk.suspicious_amount_threshold", defaults.Risk.SuspiciousAmountThreshold)
	v.SetDefault("risk.high_frequency_threshold", defaults.Risk.HighFrequencyThreshold)
	v.SetDefault("risk.unusual_hour_start", defaults.Risk.UnusualHourStart)
	v.SetDefault("risk.unusual_hour_end", defaults.Risk.UnusualHourEnd)
	v.SetDefault("risk.max_assumed_amount", defaults.Risk.MaxAssumedAmount)
	v.SetDefault("risk.include_unusual_pattern_feature", defaults.Risk.IncludeUnusualPatternFeature)
	v.SetDefault("risk.decision_timeout", defaults.Risk.DecisionTimeout)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}
