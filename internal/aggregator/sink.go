package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Sink consumes admitted batches.
// Params: context and one admitted batch.
// Returns: error if sink cannot process the batch.
type Sink interface {
	Consume(ctx context.Context, batch *Batch) error
}

// LogSink writes admitted batches into debug logs.
// Params: logger used for output.
// Returns: debug sink instance.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a debug sink.
// Params: logger instance.
// Returns: batch sink implementation.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Consume logs one batch summary and its contents as compact JSON.
// Params: ctx used for level check; batch admitted payload.
// Returns: marshal error when payload cannot be encoded.
func (s *LogSink) Consume(ctx context.Context, batch *Batch) error {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch %s: %w", batch.ID, err)
	}

	s.logger.Debug(
		"batch admitted",
		slog.String("batch", batch.ID),
		slog.String("peer", batch.Peer),
		slog.Int("events", len(batch.Events)),
		slog.Int("dropped", len(batch.Dropped)),
		slog.String("payload", string(payload)),
	)
	return nil
}

// MultiSink dispatches one batch to multiple sink implementations.
// Params: sink list.
// Returns: composite sink.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink builds composite sink from sink list; nil entries are skipped.
// Params: sinks target list.
// Returns: multi sink implementation.
func NewMultiSink(sinks ...Sink) *MultiSink {
	out := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink == nil {
			continue
		}
		out = append(out, sink)
	}
	return &MultiSink{sinks: out}
}

// Consume forwards the batch to every child sink, even after a failure.
// Params: ctx consume context; batch admitted payload.
// Returns: joined child errors, if any.
func (s *MultiSink) Consume(ctx context.Context, batch *Batch) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Consume(ctx, batch); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
