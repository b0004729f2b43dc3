package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesBoth(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(slog.LevelInfo, &console, &file)

	logger.With("battle_id", "b1").Info("battle started", "players", 4)
	logger.Debug("hidden")

	if !strings.Contains(console.String(), "msg=\"battle started\"") || !strings.Contains(console.String(), "battle_id=b1") {
		t.Errorf("Console should hold a text record, got %q", console.String())
	}
	if strings.Contains(console.String(), "hidden") || strings.Contains(file.String(), "hidden") {
		t.Error("Debug records should be filtered at info level")
	}

	var record map[string]any
	if err := json.Unmarshal(file.Bytes(), &record); err != nil {
		t.Fatalf("File should hold one JSON record: %v", err)
	}
	if record["msg"] != "battle started" || record["battle_id"] != "b1" || record["players"] != float64(4) {
		t.Errorf("Unexpected JSON record: %v", record)
	}
}

func TestNewSingleAndNone(t *testing.T) {
	var console bytes.Buffer
	New(slog.LevelDebug, &console, nil).Debug("only console")
	if !strings.Contains(console.String(), "only console") {
		t.Error("Console-only logger should write to the console")
	}

	logger := New(slog.LevelDebug, nil, nil)
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("A logger with no writers should discard everything")
	}
}

func TestMultiHandlerGroups(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).WithGroup("unit")

	logger.Info("turn", "name", "Warrior")
	if a.Len() != 0 {
		t.Error("Handlers should keep their own level")
	}
	if !strings.Contains(b.String(), "unit.name=Warrior") {
		t.Errorf("Group should be applied, got %q", b.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skirmish.log")
	for i := 0; i < 2; i++ {
		f, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		New(slog.LevelInfo, nil, f).Info("line")
		f.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("Expected 2 appended records, got %d", n)
	}
}
