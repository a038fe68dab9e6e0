package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(LevelInfo))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("bogus"))
}

func TestNewWithWriter_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "corpus", zerolog.WarnLevel)

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len(), "info should be filtered at warn level")

	log.Warn().Msg("empty stream")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "corpus", entry["component"])
	assert.Equal(t, "empty stream", entry["message"])
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("HMMCOUNT_LOG_LEVEL", "DEBUG")
	t.Setenv("HMMCOUNT_LOG_PRETTY", "true")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", s.Level)
	assert.True(t, s.Pretty)
}
