package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_FileSink(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "job.log")

	lg, err := NewLogger(Config{Level: "info", File: file, Production: true})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	lg.Info("purge finished")
	_ = lg.Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"purge finished"`) {
		t.Errorf("expected JSON log line, got %s", data)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
