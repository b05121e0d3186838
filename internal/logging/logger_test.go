package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eventagg/internal/config"
)

// TestColorLineWriter_HighlightsLevelAndTokens verifies level and token coloring.
// Params: testing.T for assertions.
// Returns: none.
func TestColorLineWriter_HighlightsLevelAndTokens(t *testing.T) {
	var dst bytes.Buffer
	writer := &colorLineWriter{dst: &dst}

	line := `level=INFO msg="hello" peer=10.20.30.40 retries=3`
	if _, err := writer.Write([]byte(line)); err != nil {
		t.Fatalf("write: %v", err)
	}

	rendered := dst.String()
	if !strings.HasPrefix(rendered, ansiBlue) {
		t.Fatalf("expected INFO line base color")
	}
	if !strings.Contains(rendered, ansiGreen+`"hello"`+ansiReset+ansiBlue) {
		t.Fatalf("expected quoted string token color")
	}
	if !strings.Contains(rendered, ansiCyan+`10.20.30.40`+ansiReset+ansiBlue) {
		t.Fatalf("expected IP token color")
	}
	if !strings.Contains(rendered, ansiYellow+`3`+ansiReset+ansiBlue) {
		t.Fatalf("expected number token color")
	}
	if !strings.HasSuffix(rendered, ansiReset) {
		t.Fatalf("expected trailing reset sequence")
	}
}

// TestColorLineWriter_NoLevelColor verifies passthrough for unknown levels.
// Params: testing.T for assertions.
// Returns: none.
func TestColorLineWriter_NoLevelColor(t *testing.T) {
	var dst bytes.Buffer
	writer := &colorLineWriter{dst: &dst}

	line := `msg="plain" value=42`
	if _, err := writer.Write([]byte(line)); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := dst.String(); got != line {
		t.Fatalf("expected passthrough line, got %q", got)
	}
}

// TestColorLineWriter_KeepsTrailingNewline verifies reset is written before the newline.
// Params: testing.T for assertions.
// Returns: none.
func TestColorLineWriter_KeepsTrailingNewline(t *testing.T) {
	var dst bytes.Buffer
	writer := &colorLineWriter{dst: &dst}

	line := "level=ERROR msg=\"boom\" addr=127.0.0.1:50051\n"
	n, err := writer.Write([]byte(line))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != len(line) {
		t.Fatalf("unexpected written count: %d", n)
	}

	rendered := dst.String()
	if !strings.HasPrefix(rendered, ansiRed) {
		t.Fatalf("expected ERROR line base color")
	}
	if !strings.HasSuffix(rendered, ansiReset+"\n") {
		t.Fatalf("expected reset before newline, got %q", rendered)
	}
	if !strings.Contains(rendered, ansiCyan+"127.0.0.1:50051"+ansiReset+ansiRed) {
		t.Fatalf("expected host:port token color")
	}
}

// TestNew_FileSinkWritesJSON verifies the file sink honours format and level.
// Params: testing.T for assertions.
// Returns: none.
func TestNew_FileSinkWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eventagg.log")
	logger, closeFn, err := New(config.LogConfig{
		File: config.LogSinkConfig{Enabled: true, Level: "info", Format: "json", Path: path},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("batch admitted", "events", 3)
	closeFn()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line above debug level, got %d: %q", len(lines), raw)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if record["msg"] != "batch admitted" || record["events"] != float64(3) {
		t.Fatalf("unexpected record: %v", record)
	}
}

// TestNew_FileSinkRotatesBySize verifies the file sink starts a new file past max_size.
// Params: testing.T for assertions.
// Returns: none.
func TestNew_FileSinkRotatesBySize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventagg.log")
	logger, closeFn, err := New(config.LogConfig{
		File: config.LogSinkConfig{Enabled: true, Level: "info", Format: "json", Path: path, MaxSize: 1, MaxBackups: 3},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	payload := strings.Repeat("x", 1024)
	for i := 0; i < 1200; i++ {
		logger.Info("filler", "seq", i, "payload", payload)
	}
	closeFn()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read log dir: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected current file plus a rotated backup, got %d entries", len(entries))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat current log file: %v", err)
	}
	if info.Size() > 1<<20 {
		t.Fatalf("current log file exceeds max_size: %d bytes", info.Size())
	}
}

// TestNew_RejectsUnknownLevel verifies sink option validation.
// Params: testing.T for assertions.
// Returns: none.
func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{
		Console: config.LogSinkConfig{Enabled: true, Level: "loud", Format: "line"},
	})
	if err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

// TestFanoutHandler_DispatchesByLevel verifies each child applies its own level.
// Params: testing.T for assertions.
// Returns: none.
func TestFanoutHandler_DispatchesByLevel(t *testing.T) {
	var debugOut, warnOut bytes.Buffer
	debugHandler, err := newHandler(&debugOut, config.LogSinkConfig{Level: "debug", Format: "line"})
	if err != nil {
		t.Fatalf("debug handler: %v", err)
	}
	warnHandler, err := newHandler(&warnOut, config.LogSinkConfig{Level: "warn", Format: "line"})
	if err != nil {
		t.Fatalf("warn handler: %v", err)
	}

	logger := slog.New(fanoutHandler{debugHandler, warnHandler}).With("peer", "10.0.0.1")
	logger.Debug("trace")
	logger.Warn("slow down")

	if !strings.Contains(debugOut.String(), "msg=trace") || !strings.Contains(debugOut.String(), "msg=\"slow down\"") {
		t.Fatalf("debug sink missed records: %q", debugOut.String())
	}
	if strings.Contains(warnOut.String(), "msg=trace") {
		t.Fatalf("warn sink must skip debug records: %q", warnOut.String())
	}
	if !strings.Contains(warnOut.String(), "peer=10.0.0.1") {
		t.Fatalf("expected attrs propagated to children: %q", warnOut.String())
	}
}
