package web

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the default name of the server settings file.
const ConfigFile = "corgi.cfg"

// Duration is a time.Duration that reads and writes as text, so "1m" works in TOML.
type Duration time.Duration

// String formats the duration like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText writes the duration as "1m30s".
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses any string time.ParseDuration accepts.
// d is left unchanged on error.
func (d *Duration) UnmarshalText(text []byte) error {
	p, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(p)
	return nil
}

// Config contains the server settings from the corgi.cfg file.
type Config struct {
	Expires Duration          `toml:"expires"` // Expires header offset for descriptor endpoints
	Headers map[string]string `toml:"headers"` // Extra headers on every response
}

// LoadConfig reads the named settings file from fsys.
// It is not an error if the file does not exist; nil is returned.
func LoadConfig(fsys fs.FS, name string) (*Config, error) {
	var cfg Config
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("Cannot read config file: %w", err)
	}
	if err = toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("Cannot parse config file: %w", err)
	}
	return &cfg, nil
}
