// Package log configures the process-wide zerolog logger.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for the global logger.
type Config struct {
	Level   string    // optional level ("debug", "info", ...); falls back to LOG_LEVEL
	Output  io.Writer // defaults to os.Stdout
	Console bool      // human-readable output instead of JSON
	Service string    // attached to every entry
}

var (
	mu   sync.Mutex
	set  bool
	base zerolog.Logger
)

// Configure replaces the global logger. Only the first call wins unless
// Reset has been called, so packages can log before main parses its flags.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if set {
		return
	}
	set = true

	level := zerolog.InfoLevel
	if cfg.Level == "" {
		cfg.Level = os.Getenv("LOG_LEVEL")
	}
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	if cfg.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	service := cfg.Service
	if service == "" {
		service = "corgi-docs"
	}
	base = zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

// Reset lets the next Configure call take effect.
func Reset() {
	mu.Lock()
	set = false
	mu.Unlock()
}

func logger() zerolog.Logger {
	mu.Lock()
	ok := set
	mu.Unlock()
	if !ok {
		Configure(Config{})
	}
	mu.Lock()
	defer mu.Unlock()
	return base
}

// Base returns the configured logger.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}
