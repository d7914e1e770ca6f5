package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AnalyticsConfig tunes the read side: how long day-level aggregates may be
// served from cache and how far back the conversion rollups look.
type AnalyticsConfig struct {
	QueryCacheTTL    time.Duration `mapstructure:"queryCacheTTL"`
	RollupWindowDays int           `mapstructure:"rollupWindowDays"`
	TimelinePageSize int           `mapstructure:"timelinePageSize"`
}

func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		QueryCacheTTL:    time.Minute,
		RollupWindowDays: 90,
		TimelinePageSize: 100,
	}
}

// AnalyticsConfigHolder exposes the current analytics config; the underlying
// file is watched and reloaded without restarting the process.
type AnalyticsConfigHolder struct {
	current atomic.Value // holds AnalyticsConfig
}

func NewAnalyticsConfigHolder() (*AnalyticsConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("insight")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/insight")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultAnalyticsConfig()
		v.SetDefault("analytics.queryCacheTTL", defaults.QueryCacheTTL)
		v.SetDefault("analytics.rollupWindowDays", defaults.RollupWindowDays)
		v.SetDefault("analytics.timelinePageSize", defaults.TimelinePageSize)
	}

	var cfg AnalyticsConfig
	if err := v.UnmarshalKey("analytics", &cfg); err != nil {
		return nil, err
	}
	if err := validateAnalyticsConfig(cfg); err != nil {
		return nil, err
	}

	holder := &AnalyticsConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated AnalyticsConfig
		if err := v.UnmarshalKey("analytics", &updated); err != nil {
			log.Printf("[analytics-config] reload failed: %v", err)
			return
		}
		if err := validateAnalyticsConfig(updated); err != nil {
			log.Printf("[analytics-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[analytics-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *AnalyticsConfigHolder) Get() AnalyticsConfig {
	return h.current.Load().(AnalyticsConfig)
}

// NewStaticAnalyticsConfigHolder pins a config without file watching, for tests.
func NewStaticAnalyticsConfigHolder(cfg AnalyticsConfig) *AnalyticsConfigHolder {
	holder := &AnalyticsConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateAnalyticsConfig(cfg AnalyticsConfig) error {
	if cfg.QueryCacheTTL < 0 {
		return errors.New("analytics.queryCacheTTL cannot be negative")
	}
	if cfg.RollupWindowDays <= 0 {
		return errors.New("analytics.rollupWindowDays must be positive")
	}
	if cfg.TimelinePageSize <= 0 {
		return errors.New("analytics.timelinePageSize must be positive")
	}
	return nil
}
