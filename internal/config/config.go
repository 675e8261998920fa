// Package config loads and validates reporter configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Meshotron2/monitor/internal/progress"
)

// Config captures all reporter configuration knobs loaded via Viper.
type Config struct {
	Monitor MonitorConfig `mapstructure:"monitor"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MonitorConfig locates the monitor and bounds each network operation.
type MonitorConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	TimeoutMillis int    `mapstructure:"timeout_millis"`
}

// WorkerConfig identifies the reporting worker. Zero means the process id.
type WorkerConfig struct {
	ID int32 `mapstructure:"id"`
}

// MetricsConfig toggles dumping collected metrics once the command exits.
type MetricsConfig struct {
	Dump bool `mapstructure:"dump"`
}

// LoggingConfig toggles zap development features and the minimum level.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from disk/environment. It does not validate, so callers
// can apply overrides first and then call Validate.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROGRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("monitor.host", progress.DefaultMonitorHost)
	v.SetDefault("monitor.port", progress.DefaultMonitorPort)
	v.SetDefault("monitor.timeout_millis", 0)
	v.SetDefault("worker.id", 0)
	v.SetDefault("metrics.dump", false)
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Monitor.Host == "" {
		return fmt.Errorf("monitor.host must be set")
	}
	if c.Monitor.Port <= 0 || c.Monitor.Port > 65535 {
		return fmt.Errorf("monitor.port must be in 1..65535")
	}
	if c.Monitor.TimeoutMillis < 0 {
		return fmt.Errorf("monitor.timeout_millis must be >= 0")
	}
	return nil
}

// Timeout converts timeout_millis into a duration; zero disables the timeout.
func (m MonitorConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMillis) * time.Millisecond
}
