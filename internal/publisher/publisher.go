// Package publisher buffers events on the producer side and pushes them to
// an aggregator with AddEvents, reporting every task attempt whose events
// could not be delivered as dropped.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"eventagg/internal/eventpb"
)

const (
	defaultMaxBufferedEvents  = 10000
	defaultMaxDroppedAttempts = 10000
	defaultMaxBatchEvents     = 1000
	defaultFlushInterval      = time.Second
	defaultSendTimeout        = 5 * time.Second
	defaultRetryAttempts      = 3
	defaultRetryDelay         = 200 * time.Millisecond
	finalFlushTimeout         = 10 * time.Second
)

// Options configures buffering and delivery; zero values select defaults.
type Options struct {
	MaxBufferedEvents  int
	MaxDroppedAttempts int
	MaxBatchEvents     int
	FlushInterval      time.Duration
	SendTimeout        time.Duration
	RetryAttempts      uint
	RetryDelay         time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxBufferedEvents <= 0 {
		o.MaxBufferedEvents = defaultMaxBufferedEvents
	}
	if o.MaxDroppedAttempts <= 0 {
		o.MaxDroppedAttempts = defaultMaxDroppedAttempts
	}
	if o.MaxBatchEvents <= 0 {
		o.MaxBatchEvents = defaultMaxBatchEvents
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = defaultFlushInterval
	}
	if o.SendTimeout <= 0 {
		o.SendTimeout = defaultSendTimeout
	}
	if o.RetryAttempts == 0 {
		o.RetryAttempts = defaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = defaultRetryDelay
	}
	return o
}

// RejectedError reports a delivered request answered with a non-OK status.
type RejectedError struct {
	Code    codes.Code
	Message string
	Events  int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("aggregator rejected %d events: %s: %s", e.Events, e.Code, e.Message)
}

// Retryable reports whether the aggregator asked the producer to come back later.
func (e *RejectedError) Retryable() bool {
	return e.Code == codes.ResourceExhausted || e.Code == codes.Unavailable
}

// Result summarizes one flush.
type Result struct {
	Events  int
	Dropped int
}

// Stats is a snapshot of publisher buffers.
type Stats struct {
	Buffered        int
	Dropped         int
	DroppedOverflow uint64
}

type pendingEvent struct {
	event   *eventpb.RayEvent
	attempt *eventpb.TaskAttempt
}

// Publisher buffers events and dropped attempts until Flush.
type Publisher struct {
	client eventpb.EventAggregatorServiceClient
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	buffer   []pendingEvent
	dropped  []*eventpb.TaskAttempt
	overflow uint64

	flushMu sync.Mutex
}

// New creates a publisher sending through client.
// Params: client AddEvents client; opts buffering and retry options; logger diagnostics.
// Returns: publisher instance.
func New(client eventpb.EventAggregatorServiceClient, opts Options, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Record buffers event produced by attempt; attempt may be nil for events
// not tied to a task. When the buffer is full the event is discarded and
// its attempt is reported as dropped instead. An attempt without a task id
// or with a negative attempt number is refused.
// Params: event payload; attempt owning task attempt.
// Returns: false when the event was discarded or refused.
func (p *Publisher) Record(event *eventpb.RayEvent, attempt *eventpb.TaskAttempt) bool {
	if event == nil {
		return false
	}
	if attempt != nil && !attempt.Valid() {
		p.logger.Warn("refusing event of invalid task attempt", slog.Int("attempt_number", int(attempt.GetAttemptNumber())))
		return false
	}
	if len(event.GetEventId()) == 0 {
		withID := proto.Clone(event).(*eventpb.RayEvent)
		id := uuid.New()
		withID.EventId = id[:]
		event = withID
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buffer) >= p.opts.MaxBufferedEvents {
		p.reportDroppedLocked(attempt)
		return false
	}
	p.buffer = append(p.buffer, pendingEvent{event: event, attempt: attempt})
	return true
}

// ReportDropped queues attempt for the dropped list of the next flush.
// Params: attempt lost task attempt.
// Returns: false when attempt is nil or invalid and was not queued.
func (p *Publisher) ReportDropped(attempt *eventpb.TaskAttempt) bool {
	if attempt == nil || !attempt.Valid() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reportDroppedLocked(attempt)
	return true
}

// Stats returns buffer sizes.
func (p *Publisher) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Buffered: len(p.buffer), Dropped: len(p.dropped), DroppedOverflow: p.overflow}
}

// Flush sends up to MaxBatchEvents buffered events plus all pending dropped attempts.
// Unavailable and DeadlineExceeded transport errors are retried; when
// retries are exhausted, or on any other transport error, the attempts of
// unsent events become dropped records. A non-OK reply is returned as
// *RejectedError without retry; after a final rejection the attempts of its
// events and its dropped attempts are queued once more as a dropped-only
// batch, and a rejected dropped-only batch is discarded.
// Params: ctx bounds the whole flush including retries.
// Returns: sent counts and delivery error.
func (p *Publisher) Flush(ctx context.Context) (Result, error) {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	events, dropped := p.take()
	if len(events) == 0 && len(dropped) == 0 {
		return Result{}, nil
	}

	request := buildRequest(events, dropped)
	var replyStatus *eventpb.AddEventStatus
	err := retry.Do(
		func() error {
			callCtx, cancel := context.WithTimeout(ctx, p.opts.SendTimeout)
			defer cancel()
			reply, callErr := p.client.AddEvents(callCtx, request)
			if callErr != nil {
				return callErr
			}
			if reply.GetStatus() == nil {
				return retry.Unrecoverable(fmt.Errorf("reply without status"))
			}
			replyStatus = reply.GetStatus()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(p.opts.RetryAttempts),
		retry.Delay(p.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryableTransport),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Warn("add events failed, retrying", slog.Uint64("attempt", uint64(n)+1), slog.String("error", err.Error()))
		}),
	)
	if err != nil {
		p.giveUp(events, dropped)
		return Result{}, fmt.Errorf("send %d events: %w", len(events), err)
	}

	if !replyStatus.IsOK() {
		rejected := &RejectedError{Code: replyStatus.CanonicalCode(), Message: replyStatus.GetMessage(), Events: len(events)}
		switch {
		case rejected.Retryable():
			p.requeue(events, dropped)
		case len(events) > 0:
			p.giveUp(events, dropped)
		default:
			p.logger.Warn("dropped task attempts rejected", slog.Int("attempts", len(dropped)), slog.String("code", rejected.Code.String()))
		}
		return Result{}, rejected
	}

	return Result{Events: len(events), Dropped: len(dropped)}, nil
}

// Run flushes every FlushInterval until ctx is canceled, then flushes what is left.
// Params: ctx lifecycle context.
// Returns: error of the final flush, nil when everything was delivered.
func (p *Publisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
			defer cancel()
			return p.Drain(finalCtx)
		case <-ticker.C:
			if _, err := p.Flush(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("periodic flush failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Drain flushes until both buffers are empty or a flush fails. A final
// rejection does not stop draining: its events are reported as dropped by
// the following flushes.
// Params: ctx bounds all flushes.
// Returns: transport or retryable rejection error; otherwise the first
// final *RejectedError seen, nil when every batch was accepted.
func (p *Publisher) Drain(ctx context.Context) error {
	var firstRejected error
	for {
		stats := p.Stats()
		if stats.Buffered == 0 && stats.Dropped == 0 {
			return firstRejected
		}
		if _, err := p.Flush(ctx); err != nil {
			var rejected *RejectedError
			if errors.As(err, &rejected) && !rejected.Retryable() {
				if firstRejected == nil {
					firstRejected = err
				}
				continue
			}
			return err
		}
	}
}

// retryableTransport reports whether a failed call may succeed when repeated.
func retryableTransport(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// take removes the next batch from the buffers.
func (p *Publisher) take() ([]pendingEvent, []*eventpb.TaskAttempt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := min(len(p.buffer), p.opts.MaxBatchEvents)
	events := make([]pendingEvent, n)
	copy(events, p.buffer[:n])
	p.buffer = append(p.buffer[:0], p.buffer[n:]...)

	dropped := p.dropped
	p.dropped = nil
	return events, dropped
}

// requeue puts an unsent batch back in front of the buffers.
func (p *Publisher) requeue(events []pendingEvent, dropped []*eventpb.TaskAttempt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffer = append(events, p.buffer...)
	for len(p.buffer) > p.opts.MaxBufferedEvents {
		last := p.buffer[len(p.buffer)-1]
		p.buffer = p.buffer[:len(p.buffer)-1]
		p.reportDroppedLocked(last.attempt)
	}
	p.restoreDroppedLocked(dropped)
}

// giveUp turns undeliverable events into dropped records and restores unsent drops.
func (p *Publisher) giveUp(events []pendingEvent, dropped []*eventpb.TaskAttempt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.restoreDroppedLocked(dropped)
	for _, pending := range events {
		p.reportDroppedLocked(pending.attempt)
	}
}

func (p *Publisher) restoreDroppedLocked(dropped []*eventpb.TaskAttempt) {
	for _, attempt := range dropped {
		p.reportDroppedLocked(attempt)
	}
}

func (p *Publisher) reportDroppedLocked(attempt *eventpb.TaskAttempt) {
	if attempt == nil {
		return
	}
	if len(p.dropped) >= p.opts.MaxDroppedAttempts {
		p.overflow++
		return
	}
	p.dropped = append(p.dropped, attempt)
}

func buildRequest(events []pendingEvent, dropped []*eventpb.TaskAttempt) *eventpb.AddEventRequest {
	data := &eventpb.RayEventsData{Events: make([]*eventpb.RayEvent, 0, len(events))}
	for _, pending := range events {
		data.Events = append(data.Events, pending.event)
	}
	if len(dropped) > 0 {
		data.TaskEventsMetadata = &eventpb.TaskEventsMetadata{DroppedTaskAttempts: dropped}
	}
	return &eventpb.AddEventRequest{EventsData: data}
}
