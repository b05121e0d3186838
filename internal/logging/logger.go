package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"eventagg/internal/config"
)

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
	ansiGray    = "\x1b[90m"
)

// New builds a logger that fans out to the enabled console and file sinks.
// Params: cfg validated logging config.
// Returns: logger, close function releasing file handles, and setup error.
func New(cfg config.LogConfig) (*slog.Logger, func(), error) {
	handlers := make([]slog.Handler, 0, 2)
	closers := make([]io.Closer, 0, 1)

	if cfg.Console.Enabled {
		var out io.Writer = os.Stdout
		if cfg.Console.Format == "line" && isatty.IsTerminal(os.Stdout.Fd()) {
			out = &colorLineWriter{dst: os.Stdout}
		}
		handler, err := newHandler(out, cfg.Console)
		if err != nil {
			return nil, nil, fmt.Errorf("log.console: %w", err)
		}
		handlers = append(handlers, handler)
	}

	if cfg.File.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.File.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log.file: create dir: %w", err)
		}
		file := newRotatingFile(cfg.File)
		handler, err := newHandler(file, cfg.File)
		if err != nil {
			_ = file.Close()
			return nil, nil, fmt.Errorf("log.file: %w", err)
		}
		handlers = append(handlers, handler)
		closers = append(closers, file)
	}

	closeFn := func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closeFn, nil
	case 1:
		return slog.New(handlers[0]), closeFn, nil
	default:
		return slog.New(fanoutHandler(handlers)), closeFn, nil
	}
}

// newRotatingFile opens the file sink; the file is rotated once it grows past
// MaxSize megabytes and at most MaxBackups rotated files are kept.
func newRotatingFile(sink config.LogSinkConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   sink.Path,
		MaxSize:    sink.MaxSize,
		MaxBackups: sink.MaxBackups,
	}
}

// newHandler creates a text or JSON handler for one sink.
// Params: out destination writer; sink level/format options.
// Returns: slog handler or error on unsupported options.
func newHandler(out io.Writer, sink config.LogSinkConfig) (slog.Handler, error) {
	level, err := parseLevel(sink.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch sink.Format {
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	case "line", "":
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", sink.Format)
	}
}

// parseLevel maps config level names to slog levels.
// Params: raw level name.
// Returns: slog level or error.
func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported level %q", raw)
	}
}

// fanoutHandler forwards every record to all child handlers that accept its level.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, child := range h {
		if child.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, child := range h {
		if !child.Enabled(ctx, record.Level) {
			continue
		}
		if err := child.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, child := range h {
		out[i] = child.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, child := range h {
		out[i] = child.WithGroup(name)
	}
	return out
}

// colorLineWriter colors text-handler lines by level and highlights values.
// Params: dst terminal writer.
// Returns: io.Writer implementation.
type colorLineWriter struct {
	dst io.Writer
}

// Write colors one rendered log line; lines without a known level pass through.
// Params: p one text-handler line, optionally newline terminated.
// Returns: len(p) and destination write error.
func (w *colorLineWriter) Write(p []byte) (int, error) {
	line := string(p)
	body := strings.TrimSuffix(line, "\n")

	base, ok := levelColor(body)
	if !ok {
		if _, err := w.dst.Write(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	var out strings.Builder
	out.Grow(len(line) + 64)
	out.WriteString(base)
	highlightValues(&out, body, base)
	out.WriteString(ansiReset)
	if len(body) != len(line) {
		out.WriteByte('\n')
	}

	if _, err := io.WriteString(w.dst, out.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// levelColor picks base color from the level=<LEVEL> attribute.
// Params: line rendered log line.
// Returns: ANSI color and true when level is recognized.
func levelColor(line string) (string, bool) {
	idx := strings.Index(line, "level=")
	if idx < 0 {
		return "", false
	}
	level := line[idx+len("level="):]
	if end := strings.IndexByte(level, ' '); end >= 0 {
		level = level[:end]
	}

	switch {
	case strings.HasPrefix(level, "DEBUG"):
		return ansiGray, true
	case strings.HasPrefix(level, "INFO"):
		return ansiBlue, true
	case strings.HasPrefix(level, "WARN"):
		return ansiMagenta, true
	case strings.HasPrefix(level, "ERROR"):
		return ansiRed, true
	default:
		return "", false
	}
}

// highlightValues writes line into out, coloring quoted strings, addresses and numbers.
// Params: out destination builder; line body without newline; base line color restored after tokens.
// Returns: none.
func highlightValues(out *strings.Builder, line string, base string) {
	for i := 0; i < len(line); {
		switch {
		case line[i] == '"':
			end := closingQuote(line, i)
			writeColored(out, line[i:end], ansiGreen, base)
			i = end
		case line[i] == '=' && i+1 < len(line) && line[i+1] != '"':
			out.WriteByte('=')
			i++
			end := strings.IndexByte(line[i:], ' ')
			if end < 0 {
				end = len(line)
			} else {
				end += i
			}
			value := line[i:end]
			switch {
			case isAddress(value):
				writeColored(out, value, ansiCyan, base)
			case isNumber(value):
				writeColored(out, value, ansiYellow, base)
			default:
				out.WriteString(value)
			}
			i = end
		default:
			out.WriteByte(line[i])
			i++
		}
	}
}

// closingQuote returns the index just past the quote closing the string at start.
// Params: line text; start index of opening quote.
// Returns: exclusive end index.
func closingQuote(line string, start int) int {
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(line)
}

func writeColored(out *strings.Builder, token, color, base string) {
	out.WriteString(color)
	out.WriteString(token)
	out.WriteString(ansiReset)
	out.WriteString(base)
}

func isAddress(value string) bool {
	if net.ParseIP(value) != nil {
		return true
	}
	host, _, err := net.SplitHostPort(value)
	return err == nil && net.ParseIP(host) != nil
}

func isNumber(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}
