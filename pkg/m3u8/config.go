package m3u8

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a Copier.
type Options struct {
	// Concurrency caps in-flight segment downloads per playlist.
	// Zero means unbounded.
	Concurrency int
	// Headers are added to every request.
	Headers map[string]string
	// RequestsPerSecond paces all requests. Zero means unlimited.
	RequestsPerSecond float64
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// Client overrides the HTTP client built from the options above.
	Client HTTPDoer
	// Progress receives download progress. Defaults to a log-backed sink.
	Progress Progress
	// Metrics, when set, is updated with run counters.
	Metrics *Metrics
}

// Validate rejects option values that cannot be honoured.
func (o Options) Validate() error {
	if o.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", o.Concurrency)
	}
	if o.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %g", o.RequestsPerSecond)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	return nil
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level   string    // zerolog level name, overrides LOG_LEVEL
	Verbose bool      // shorthand for debug level
	Output  io.Writer // defaults to os.Stderr
}

var (
	logMu sync.RWMutex
	base  = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// ConfigureLogging replaces the package logger.
func ConfigureLogging(cfg LogConfig) error {
	level := zerolog.InfoLevel
	name := cfg.Level
	if name == "" {
		name = os.Getenv("LOG_LEVEL")
	}
	if name != "" {
		parsed, err := zerolog.ParseLevel(name)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", name, err)
		}
		level = parsed
	}
	if cfg.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logMu.Lock()
	base = zerolog.New(out).With().Timestamp().Logger().Level(level)
	logMu.Unlock()
	return nil
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return base.With().Str("component", component).Logger()
}
