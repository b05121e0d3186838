package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/protobuf/proto"

	"eventagg/internal/config"
	"eventagg/internal/eventpb"
)

const (
	defaultUpstreamInputBuffer = 1024
	maxUpstreamFlushTick       = time.Second
	minUpstreamFlushTick       = 10 * time.Millisecond
)

// UpstreamSink forwards admitted batches to upstream aggregators.
// Every configured upstream gets its own worker, batch, and spool.
type UpstreamSink struct {
	workers []*upstreamWorker
	logger  *slog.Logger
	sender  UpstreamSender

	workersWG sync.WaitGroup
	closeOnce sync.Once
}

type upstreamWorker struct {
	name    string
	cfg     config.UpstreamConfig
	logger  *slog.Logger
	sender  UpstreamSender
	spool   *Spool
	metrics *Metrics

	input chan *Batch

	events     []*eventpb.RayEvent
	dropped    []*eventpb.TaskAttempt
	batchStart time.Time
}

// NewUpstreamSink creates upstream workers and starts their loops.
// Params: ctx worker lifecycle; upstreams config list; logger root logger; sender transport; metrics optional counters.
// Returns: sink or spool setup error.
func NewUpstreamSink(
	ctx context.Context,
	upstreams []config.UpstreamConfig,
	logger *slog.Logger,
	sender UpstreamSender,
	metrics *Metrics,
) (*UpstreamSink, error) {
	if len(upstreams) == 0 {
		return nil, fmt.Errorf("upstream list is empty")
	}
	if sender == nil {
		return nil, fmt.Errorf("upstream sender is nil")
	}

	out := &UpstreamSink{
		workers: make([]*upstreamWorker, 0, len(upstreams)),
		logger:  logger,
		sender:  sender,
	}
	closeSpools := func() {
		for _, worker := range out.workers {
			if worker.spool != nil {
				_ = worker.spool.Close()
			}
		}
	}

	for idx, cfg := range upstreams {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			name = fmt.Sprintf("upstream-%d", idx)
		}

		var spool *Spool
		if cfg.Queue.Enabled {
			var err error
			spool, err = OpenSpool(cfg.Queue.Dir, cfg.Queue.MaxBatches, cfg.Queue.MaxAge.Duration)
			if err != nil {
				closeSpools()
				return nil, fmt.Errorf("open spool for %s: %w", name, err)
			}
		}

		out.workers = append(out.workers, &upstreamWorker{
			name:    name,
			cfg:     cfg,
			logger:  logger.With(slog.String("upstream", name)),
			sender:  sender,
			spool:   spool,
			metrics: metrics,
			input:   make(chan *Batch, defaultUpstreamInputBuffer),
		})
	}

	out.workersWG.Add(len(out.workers))
	for _, worker := range out.workers {
		go func(active *upstreamWorker) {
			defer out.workersWG.Done()
			active.run(ctx)
		}(worker)
	}

	return out, nil
}

// Consume hands the batch to every upstream worker.
// Params: ctx bounds the wait when a worker input is full; batch admitted payload.
// Returns: context error when canceled while waiting.
func (s *UpstreamSink) Consume(ctx context.Context, batch *Batch) error {
	for _, worker := range s.workers {
		select {
		case worker.input <- batch:
		case <-ctx.Done():
			return fmt.Errorf("forward batch %s to %s: %w", batch.ID, worker.name, ctx.Err())
		}
	}
	return nil
}

// Wait blocks until every worker finished its shutdown flush, then closes the sender.
// Params: none.
// Returns: none.
func (s *UpstreamSink) Wait() {
	s.workersWG.Wait()
	s.closeOnce.Do(func() {
		closer, ok := s.sender.(interface{ Close() error })
		if !ok {
			return
		}
		if err := closer.Close(); err != nil {
			s.logger.Error("close upstream sender failed", slog.String("error", err.Error()))
		}
	})
}

// run executes the worker loop: merging, sending, and spool draining.
// Params: ctx worker lifecycle context.
// Returns: none.
func (w *upstreamWorker) run(ctx context.Context) {
	defer func() {
		if w.spool == nil {
			return
		}
		if err := w.spool.Close(); err != nil {
			w.logger.Error("close spool failed", slog.String("error", err.Error()))
		}
	}()

	flushTicker := time.NewTicker(w.flushTick())
	retryTicker := time.NewTicker(w.cfg.RetryInterval.Duration)
	defer flushTicker.Stop()
	defer retryTicker.Stop()

	_ = w.drainSpool(ctx)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout())
			w.drainInput()
			w.flush(shutdownCtx)
			_ = w.drainSpool(shutdownCtx)
			cancel()
			return
		case batch := <-w.input:
			w.merge(batch)
			if uint64(w.pendingSize()) >= w.cfg.Batch.MaxEvents {
				w.flush(ctx)
			}
		case <-flushTicker.C:
			if w.pendingSize() > 0 && time.Since(w.batchStart) >= w.cfg.Batch.MaxAge.Duration {
				w.flush(ctx)
			}
		case <-retryTicker.C:
			_ = w.drainSpool(ctx)
		}
	}
}

// drainInput merges batches still buffered in the input channel.
func (w *upstreamWorker) drainInput() {
	for {
		select {
		case batch := <-w.input:
			w.merge(batch)
		default:
			return
		}
	}
}

func (w *upstreamWorker) merge(batch *Batch) {
	if w.pendingSize() == 0 {
		w.batchStart = time.Now()
	}
	w.events = append(w.events, batch.Events...)
	w.dropped = append(w.dropped, batch.Dropped...)
}

func (w *upstreamWorker) pendingSize() int {
	return len(w.events) + len(w.dropped)
}

// flushTick derives the age-check period from batch.max_age.
func (w *upstreamWorker) flushTick() time.Duration {
	return min(max(w.cfg.Batch.MaxAge.Duration/2, minUpstreamFlushTick), maxUpstreamFlushTick)
}

// shutdownTimeout bounds the final flush by one timeout per address.
func (w *upstreamWorker) shutdownTimeout() time.Duration {
	timeout := time.Duration(max(len(w.cfg.Addr), 1))*w.cfg.Timeout.Duration + 2*time.Second
	return min(max(timeout, 3*time.Second), time.Minute)
}

// flush sends the merged request, spooling it when every address fails.
// Params: ctx lifecycle context.
// Returns: none.
func (w *upstreamWorker) flush(ctx context.Context) {
	if w.pendingSize() == 0 {
		return
	}

	request := (&Batch{Events: w.events, Dropped: w.dropped}).request()
	events := len(w.events)
	w.events = nil
	w.dropped = nil

	status, err := w.sendWithFailover(ctx, request)
	if err == nil {
		w.observeStatus(status, events)
		_ = w.drainSpool(ctx)
		return
	}

	if w.spool == nil {
		w.metrics.observeUpstream(w.name, upstreamResultLost, events)
		w.logger.Error(
			"upstream unavailable, dropping request (queue disabled)",
			slog.Int("events", events),
			slog.String("error", err.Error()),
		)
		return
	}

	payload, encodeErr := proto.Marshal(request)
	if encodeErr != nil {
		w.metrics.observeUpstream(w.name, upstreamResultLost, events)
		w.logger.Error("encode upstream request failed", slog.String("error", encodeErr.Error()))
		return
	}
	if spoolErr := w.spool.Append(payload); spoolErr != nil {
		w.metrics.observeUpstream(w.name, upstreamResultLost, events)
		w.logger.Error("spool append failed", slog.Int("events", events), slog.String("error", spoolErr.Error()))
		return
	}
	w.metrics.observeUpstream(w.name, upstreamResultSpool, events)
	w.logger.Warn("upstream unavailable, request spooled", slog.Int("events", events), slog.Int("bytes", len(payload)))
}

// observeStatus records one delivered request; non-OK replies are soft failures.
func (w *upstreamWorker) observeStatus(status *eventpb.AddEventStatus, events int) {
	if status.IsOK() {
		w.metrics.observeUpstream(w.name, upstreamResultOK, events)
		return
	}
	w.metrics.observeUpstream(w.name, upstreamResultSoft, events)
	w.logger.Warn(
		"upstream rejected request",
		slog.String("code", status.CanonicalCode().String()),
		slog.String("message", status.GetMessage()),
		slog.Int("events", events),
	)
}

// sendWithFailover tries upstream addresses in order until one answers.
// Params: ctx lifecycle context; request payload.
// Returns: reply status of the first answering address, or the last transport error.
func (w *upstreamWorker) sendWithFailover(
	ctx context.Context,
	request *eventpb.AddEventRequest,
) (*eventpb.AddEventStatus, error) {
	var lastErr error
	for _, address := range w.cfg.Addr {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}

		sendCtx, cancel := sendTimeout(ctx, w.cfg.Timeout.Duration)
		status, err := w.sender.Send(sendCtx, address, request)
		cancel()
		if err == nil {
			return status, nil
		}
		lastErr = err
		w.metrics.observeUpstream(w.name, upstreamResultFail, 0)
		w.logger.Warn("send attempt failed", slog.String("address", address), slog.String("error", err.Error()))
	}

	if lastErr == nil {
		return nil, fmt.Errorf("no upstream addresses configured")
	}
	return nil, lastErr
}

// drainSpool resends spooled requests while an upstream answers.
// Params: ctx lifecycle context.
// Returns: nil when spool is empty, error on transport or spool failure.
func (w *upstreamWorker) drainSpool(ctx context.Context) error {
	if w.spool == nil {
		return nil
	}

	for {
		record, err := w.spool.Peek()
		if errors.Is(err, errSpoolEmpty) {
			return nil
		}
		if err != nil {
			w.logger.Error("peek spool failed", slog.String("error", err.Error()))
			return err
		}

		var request eventpb.AddEventRequest
		if err := proto.Unmarshal(record.payload, &request); err != nil {
			w.logger.Error("discarding undecodable spool record", slog.String("error", err.Error()))
		} else {
			status, sendErr := w.sendWithFailover(ctx, &request)
			if sendErr != nil {
				return sendErr
			}
			w.observeStatus(status, len(request.GetEventsData().GetEvents()))
		}

		if err := w.spool.Ack(record); err != nil {
			w.logger.Error("ack spool record failed", slog.String("error", err.Error()))
			return err
		}
	}
}
