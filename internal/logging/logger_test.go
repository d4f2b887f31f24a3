package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/loja-api/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "debug", Format: "json"})

	logger.Debug().Int64("id", 7).Msg("product saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "loja-api", entry["service"])
	assert.Equal(t, "product saved", entry["message"])
	assert.EqualValues(t, 7, entry["id"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_LevelFallback(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		logger := newLogger(&bytes.Buffer{}, config.LogConfig{Level: level, Format: "json"})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel(), "level %q", level)
	}
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "console"})

	logger.Info().Msg("listening")

	assert.Contains(t, buf.String(), "listening")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
