// Command eventsend publishes JSONL records to an aggregator. Each line is
// {"event": {...}, "attempt": {...}} or {"attempt": {...}, "dropped": true};
// messages use the protobuf JSON mapping, so task_id and event_id are base64.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"eventagg/internal/config"
	"eventagg/internal/eventpb"
	"eventagg/internal/logging"
	"eventagg/internal/publisher"
)

const (
	exitCodeFailure = 1
	maxLineBytes    = 4 << 20
)

// inputLine is one JSONL record: an event produced by attempt, or a dropped attempt.
type inputLine struct {
	Event   *eventpb.RayEvent    `json:"event"`
	Attempt *eventpb.TaskAttempt `json:"attempt"`
	Dropped bool                 `json:"dropped"`
}

// run reads JSONL records and publishes them to an aggregator.
// Params: none.
// Returns: process exit code.
func run() int {
	var (
		addr      string
		inputPath string
		timeout   time.Duration
		batchSize int
		logLevel  string
	)

	flag.StringVar(&addr, "addr", "127.0.0.1:50051", "aggregator gRPC address")
	flag.StringVar(&inputPath, "input", "-", "JSONL input file, - for stdin")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-call timeout")
	flag.IntVar(&batchSize, "batch", 1000, "max events per AddEvents call")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger, closeLogs, err := logging.New(config.LogConfig{
		Console: config.LogSinkConfig{Enabled: true, Level: logLevel, Format: "line"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeFailure
	}
	defer closeLogs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input := io.Reader(os.Stdin)
	if inputPath != "-" {
		file, err := os.Open(inputPath)
		if err != nil {
			logger.Error("open input failed", slog.String("path", inputPath), slog.String("error", err.Error()))
			return exitCodeFailure
		}
		defer file.Close()
		input = file
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Error("create client failed", slog.String("addr", addr), slog.String("error", err.Error()))
		return exitCodeFailure
	}
	defer conn.Close()

	pub := publisher.New(eventpb.NewEventAggregatorServiceClient(conn), publisher.Options{
		MaxBatchEvents: batchSize,
		SendTimeout:    timeout,
	}, logger)

	events, dropped, err := load(input, pub)
	if err != nil {
		logger.Error("read input failed", slog.String("error", err.Error()))
		return exitCodeFailure
	}

	if err := pub.Drain(ctx); err != nil {
		var rejected *publisher.RejectedError
		if errors.As(err, &rejected) {
			logger.Error("aggregator rejected batch", slog.String("code", rejected.Code.String()), slog.String("message", rejected.Message))
		} else {
			logger.Error("publish failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
		return exitCodeFailure
	}

	stats := pub.Stats()
	logger.Info(
		"published",
		slog.String("addr", addr),
		slog.Int("events", events),
		slog.Int("dropped_attempts", dropped),
		slog.Uint64("dropped_overflow", stats.DroppedOverflow),
	)
	return 0
}

// load feeds every JSONL record into pub.
// Params: input JSONL stream; pub destination publisher.
// Returns: buffered event count, dropped attempt count, and read error.
func load(input io.Reader, pub *publisher.Publisher) (int, int, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	events, dropped, lineNo := 0, 0, 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line inputLine
		if err := json.Unmarshal(raw, &line); err != nil {
			return events, dropped, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if line.Attempt != nil && !line.Attempt.Valid() {
			return events, dropped, fmt.Errorf("line %d: invalid task attempt %s", lineNo, line.Attempt.Key())
		}

		switch {
		case line.Dropped:
			if line.Attempt == nil {
				return events, dropped, fmt.Errorf("line %d: dropped record without attempt", lineNo)
			}
			pub.ReportDropped(line.Attempt)
			dropped++
		case line.Event != nil:
			if pub.Record(line.Event, line.Attempt) {
				events++
			} else if line.Attempt != nil {
				dropped++
			}
		default:
			return events, dropped, fmt.Errorf("line %d: record has neither event nor dropped attempt", lineNo)
		}
	}
	return events, dropped, scanner.Err()
}

func main() {
	os.Exit(run())
}
