package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})
	// second call is ignored
	Configure(Config{Level: "error", Output: &bytes.Buffer{}})

	l := WithComponent("loader")
	l.Debug().Str("path", "site.toml").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "loader", entry["component"])
	assert.Equal(t, "site.toml", entry["path"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestConfigureBadLevelDefaultsToInfo(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	Configure(Config{Level: "loud", Output: &buf})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	l := Base()
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}
