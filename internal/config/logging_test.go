package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logging = LoggingConfig{Level: "WARN", Format: "json"}
	require.Equal(t, zerolog.WarnLevel, newLogger(cfg, &bytes.Buffer{}).GetLevel())

	cfg.Logging = LoggingConfig{Level: "loud"}
	require.Equal(t, zerolog.InfoLevel, newLogger(cfg, &bytes.Buffer{}).GetLevel())

	cfg.Logging = LoggingConfig{}
	require.Equal(t, zerolog.InfoLevel, newLogger(cfg, &bytes.Buffer{}).GetLevel())
}

func TestNewLoggerTagsServiceAndEnvironment(t *testing.T) {
	cfg := Defaults()
	cfg.Logging = LoggingConfig{Level: "info", Format: "json"}
	cfg.Environment = "staging"

	var buf bytes.Buffer
	logger := newLogger(cfg, &buf)
	logger.Info().Msg("started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "batch-service", line["service"])
	require.Equal(t, "staging", line["env"])
	require.Equal(t, "started", line["message"])
}
