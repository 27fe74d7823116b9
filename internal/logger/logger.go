// Package logger configures application logging and observability.
//
// Logging uses zerolog. When a New Relic license key is configured the
// agent is initialized here and application logs are forwarded through the
// zerologWriter integration; without a key everything degrades to plain
// local logging.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/shutterspot/api/internal/config"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the New Relic application instance. It exists even
// when New Relic is disabled so callers can nil-check one object instead
// of threading feature flags around.
type LoggerService struct {
	app *newrelic.Application
}

// NewLoggerService initializes the New Relic agent when configured.
// Returns a service with a nil application when no license key is set.
func NewLoggerService(cfg *config.Config, logger *zerolog.Logger) (*LoggerService, error) {
	if !cfg.Observability.NewRelicEnabled() {
		logger.Info().Msg("new relic disabled, skipping agent initialization")
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.Observability.ServiceName),
		newrelic.ConfigLicense(cfg.Observability.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{
				"environment": cfg.Observability.Environment,
			}
		},
	}
	if cfg.Observability.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("service", cfg.Observability.ServiceName).
		Str("environment", cfg.Observability.Environment).
		Msg("new relic agent initialized")

	return &LoggerService{app: app}, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	return ls.app
}

// Shutdown flushes pending telemetry. Safe to call when disabled.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls.app != nil {
		ls.app.Shutdown(timeout)
	}
}

// New builds the application logger from observability config.
//
// Console format is meant for local development; json for everything else.
// When log forwarding is enabled the writer is wrapped so entries carry New
// Relic linking metadata.
func New(cfg *config.Config, loggerService *LoggerService) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	if loggerService != nil && loggerService.GetApplication() != nil &&
		cfg.Observability.NewRelic.AppLogForwardingEnabled {
		out = zerologWriter.New(out, loggerService.GetApplication())
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// WithTraceContext returns a child logger annotated with the transaction's
// trace and span ids so log lines can be joined to distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}

// NewPgxLogger builds the logger used for SQL statement tracing in local
// environments.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the zerolog level to a pgx tracelog level. The
// numeric values follow tracelog's LogLevel constants (1=error .. 6=trace).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return 6 // tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return 5 // tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return 4 // tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return 3 // tracelog.LogLevelWarn
	default:
		return 2 // tracelog.LogLevelError
	}
}
