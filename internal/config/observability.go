package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups telemetry settings: structured logging, New
// Relic APM, and periodic dependency health checks.
type ObservabilityConfig struct {
	ServiceName string `koanf:"service_name"`
	Environment string `koanf:"environment"`

	Logging      LoggingConfig      `koanf:"logging"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects "json" or "console" output.
	Format string `koanf:"format"`

	// SlowQueryThreshold flags queries slower than this duration.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig controls APM and tracing. An empty LicenseKey disables the
// agent entirely; the rest of the app degrades to no-op instrumentation.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the /status dependency checks.
type HealthChecksConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
	Checks   []string      `koanf:"checks"`
}

// DefaultObservabilityConfig returns defaults suitable for local
// development: console logs at info level, New Relic disabled, health
// checks on database and redis.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 200 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// Validate normalizes and checks the observability block. Called after
// defaults are injected, so empty sub-blocks are filled rather than
// rejected.
func (o *ObservabilityConfig) Validate() error {
	if o.Logging.Level == "" {
		o.Logging.Level = "info"
	}
	switch o.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", o.Logging.Level)
	}

	if o.Logging.Format == "" {
		o.Logging.Format = "json"
	}
	switch o.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging format %q", o.Logging.Format)
	}

	if o.Logging.SlowQueryThreshold <= 0 {
		o.Logging.SlowQueryThreshold = 200 * time.Millisecond
	}

	if o.HealthChecks.Enabled {
		if o.HealthChecks.Interval < time.Second {
			return fmt.Errorf("health check interval %s below 1s", o.HealthChecks.Interval)
		}
		if o.HealthChecks.Timeout < time.Second {
			return fmt.Errorf("health check timeout %s below 1s", o.HealthChecks.Timeout)
		}
	}

	return nil
}

// NewRelicEnabled reports whether a license key is configured.
func (o *ObservabilityConfig) NewRelicEnabled() bool {
	return o.NewRelic.LicenseKey != ""
}
