package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghrelease/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "info"},
		{level: "warn"},
		{level: "error"},
		{level: "WARN"},
		{level: "verbose", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			logger := &config.Logger{Level: tt.level, Output: &bytes.Buffer{}}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, result).Nil()
				return
			}

			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_Format(t *testing.T) {
	var text, json bytes.Buffer

	textLogger, err := (&config.Logger{Level: "info", Output: &text}).Configure()
	gt.NoError(t, err)
	jsonLogger, err := (&config.Logger{Level: "info", JSON: true, Output: &json}).Configure()
	gt.NoError(t, err)

	textLogger.Info("release resolved", "release_id", 42)
	jsonLogger.Info("release resolved", "release_id", 42)

	gt.String(t, text.String()).Contains("release_id=42")
	gt.String(t, json.String()).Contains(`"release_id":42`)
}

func TestLogger_Configure_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "warn", Output: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("hidden message")
	result.Warn("shown message")

	gt.String(t, buf.String()).NotContains("hidden message")
	gt.String(t, buf.String()).Contains("shown message")
}

func TestLogger_Configure_RedactsSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "debug", JSON: true, Output: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Debug("config", slog.Any("github", config.GitHub{
		Token:  "ghp_very_secret_value",
		APIURL: "https://api.github.com/",
	}))

	gt.String(t, buf.String()).NotContains("ghp_very_secret_value")
	gt.String(t, buf.String()).Contains("https://api.github.com/")
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}

	var names []string
	for _, flag := range logger.Flags() {
		names = append(names, flag.Names()[0])
	}

	gt.Equal(t, names, []string{"log-level", "log-json"})
}
