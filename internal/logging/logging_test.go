package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "DEBUG")
	require.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Info().Str("file", "a.csv").Int("rows", 3).Msg("imported")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "info", line["level"])
	require.Equal(t, "imported", line["message"])
	require.Equal(t, "a.csv", line["file"])
	require.Equal(t, float64(3), line["rows"])
	require.Equal(t, "franceguessr", line["service"])
	require.Contains(t, line, "time")
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	for _, lvl := range []string{"", "loud"} {
		log := New(&buf, lvl)
		require.Equal(t, zerolog.InfoLevel, log.GetLevel())
	}
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())
}
