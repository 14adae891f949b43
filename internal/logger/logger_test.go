package logger

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/koenekelschot/imdbscraper/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_WithLogFile(t *testing.T) {
	dir := t.TempDir()
	log := New(config.LoggingConfig{Level: "debug", Format: "json", Path: dir})
	defer log.Close()

	log.Info().Msg("hello")

	if log.rotator == nil {
		t.Fatal("expected a rotator when a path is configured")
	}
	if want := filepath.Join(dir, "imdbscraper.log"); log.rotator.Filename != want {
		t.Errorf("log file = %q, want %q", log.rotator.Filename, want)
	}
}

func TestNew_WithoutLogFile(t *testing.T) {
	log := New(config.LoggingConfig{Level: "info"})
	if log.rotator != nil {
		t.Error("expected no rotator without a path")
	}
	if err := log.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
