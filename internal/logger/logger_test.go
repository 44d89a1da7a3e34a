package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	file := filepath.Join(t.TempDir(), "logs", "app.log")
	if err := Init(Options{Level: "debug", File: file, MaxSizeMB: 1}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	log.Info().Str("req_id", "abc").Msg("hello")

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"req_id":"abc"`) {
		t.Errorf("log file missing field, got %s", b)
	}
	if log.Logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", log.Logger.GetLevel())
	}
}

func TestInitInvalidLevelDefaultsToInfo(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	if err := Init(Options{Level: "loud"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if log.Logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", log.Logger.GetLevel())
	}
}

func TestInitCustomOutput(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	if err := Init(Options{Level: "info", Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	log.Debug().Msg("hidden")
	log.Warn().Str("kind", "EmptyExtraction").Msg("pipeline.failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, `"kind":"EmptyExtraction"`) {
		t.Errorf("output = %s", out)
	}
}
