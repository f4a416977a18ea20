package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitToHonoursEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitTo(&buf)
	t.Cleanup(func() { Log.SetLevel(logrus.InfoLevel) })

	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v", Log.GetLevel())
	}
	Log.WithField("map_x", 3).Debug("tile wrapped")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "tile wrapped" || entry["map_x"] != float64(3) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInitToFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	InitTo(&buf)
	if Log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level for an unknown level, got %v", Log.GetLevel())
	}
	Log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output should be suppressed, got %q", buf.String())
	}
}
