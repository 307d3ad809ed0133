package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"college_assistant_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

func TestSetup_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	Setup(l, &buf, &config.AppConfig{LogLevel: "warn", Environment: "production"})

	l.Info("dropped")
	l.WithField("caller_id", 42).Warn("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "kept" || entry["caller_id"] != float64(42) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	Setup(l, &buf, &config.AppConfig{LogLevel: "chatty", Environment: "development"})

	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
}
