package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw   string
		level zerolog.Level
		ok    bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		level, ok := ParseLevel(tt.raw)
		if level != tt.level || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = (%v, %v), expected (%v, %v)", tt.raw, level, ok, tt.level, tt.ok)
		}
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "true")

	cfg := DefaultConfig(ProfileRuntime)
	if cfg.Level != zerolog.ErrorLevel {
		t.Errorf("Level = %v, expected error", cfg.Level)
	}
	if cfg.Timestamp {
		t.Error("Timestamp should be disabled by env")
	}
	if !cfg.NoColor {
		t.Error("NoColor should be enabled by env")
	}
}

func TestDefaultConfigProfiles(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogTimestamp, "")

	if cfg := DefaultConfig(ProfileTest); cfg.Level != zerolog.DebugLevel || cfg.Timestamp {
		t.Errorf("test profile = %+v", cfg)
	}
	if cfg := DefaultConfig(ProfileRuntime); cfg.Level != zerolog.InfoLevel || !cfg.Timestamp {
		t.Errorf("runtime profile = %+v", cfg)
	}
}

func TestConfigureInstallsGlobalLogger(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	var buf bytes.Buffer
	Configure(Config{Level: zerolog.WarnLevel, NoColor: true, Out: &buf})

	log.Info().Msg("hidden")
	log.Warn().Str("sheet", "Data").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "sheet=Data") {
		t.Errorf("warn message missing: %q", out)
	}
}
