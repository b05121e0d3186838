package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"

	"eventagg/internal/eventpb"
)

// ServerOptions is the admission policy of one aggregator.
type ServerOptions struct {
	// MaxBatchEvents rejects larger batches whole; 0 disables the limit.
	MaxBatchEvents int
	// RejectEmpty answers InvalidArgument to batches without events and drops.
	RejectEmpty bool
	// QueueSize bounds admitted batches waiting for sink workers.
	QueueSize int
	// DropEvent discards matching events before admission.
	DropEvent []DropCondition
}

// Server implements EventAggregatorService.AddEvents.
// Every application outcome is returned in the reply status; the handler
// never fails the RPC itself.
type Server struct {
	eventpb.UnimplementedEventAggregatorServiceServer

	opts    ServerOptions
	logger  *slog.Logger
	metrics *Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan *Batch

	now   func() time.Time
	newID func() string
}

// NewServer creates an admission server with a bounded queue.
// Params: opts admission policy; logger root logger; metrics optional counters.
// Returns: server ready to accept calls.
func NewServer(opts ServerOptions, logger *slog.Logger, metrics *Metrics) *Server {
	return &Server{
		opts:    opts,
		logger:  logger,
		metrics: metrics,
		queue:   make(chan *Batch, max(opts.QueueSize, 0)),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// AddEvents admits one producer batch.
// Params: ctx rpc context carrying the peer; request producer batch.
// Returns: reply with populated status and a nil error.
func (s *Server) AddEvents(ctx context.Context, request *eventpb.AddEventRequest) (*eventpb.AddEventReply, error) {
	return eventpb.NewReply(s.Admit(ctx, request.GetEventsData(), peerAddress(ctx))), nil
}

// Admit applies the admission policy to data and enqueues the admitted part.
// Params: ctx request context; data batch, nil is an empty batch; peerAddr producer address for bookkeeping.
// Returns: reply status.
func (s *Server) Admit(ctx context.Context, data *eventpb.RayEventsData, peerAddr string) *eventpb.AddEventStatus {
	status := s.admit(ctx, data, peerAddr)
	s.metrics.observeReply(status)
	return status
}

func (s *Server) admit(ctx context.Context, data *eventpb.RayEventsData, peerAddr string) *eventpb.AddEventStatus {
	if data.IsEmpty() {
		if s.opts.RejectEmpty {
			return eventpb.NewStatus(codes.InvalidArgument, "batch carries neither events nor dropped task attempts")
		}
		return eventpb.OKStatus()
	}

	events := data.GetEvents()
	if s.opts.MaxBatchEvents > 0 && len(events) > s.opts.MaxBatchEvents {
		return eventpb.NewStatus(codes.InvalidArgument,
			"batch has %d events, limit is %d", len(events), s.opts.MaxBatchEvents)
	}

	batch := &Batch{
		ReceivedAt: s.now(),
		Peer:       peerAddr,
		Events:     make([]*eventpb.RayEvent, 0, len(events)),
	}

	filtered, nilEvents := 0, 0
	for _, event := range events {
		switch {
		case event == nil:
			nilEvents++
		case ShouldDrop(s.opts.DropEvent, event):
			filtered++
		default:
			batch.Events = append(batch.Events, event)
		}
	}

	attempts := data.GetTaskEventsMetadata().GetDroppedTaskAttempts()
	malformed := 0
	for _, attempt := range attempts {
		if !attempt.Valid() {
			malformed++
			continue
		}
		batch.Dropped = append(batch.Dropped, attempt)
	}

	s.metrics.observeFiltered(filtered)
	s.metrics.observeMalformed(malformed)

	if batch.Size() > 0 {
		if status := s.enqueue(ctx, batch); status != nil {
			return status
		}
	}

	if malformed > 0 || nilEvents > 0 {
		s.logger.Warn(
			"batch partially admitted",
			slog.String("peer", peerAddr),
			slog.Int("malformed_attempts", malformed),
			slog.Int("null_events", nilEvents),
		)
		return eventpb.NewStatus(codes.InvalidArgument,
			"admitted %d events and %d dropped task attempts; skipped %d malformed task attempts and %d null events",
			len(batch.Events), len(batch.Dropped), malformed, nilEvents)
	}
	return eventpb.OKStatus()
}

// enqueue hands batch to sink workers without blocking.
// Params: ctx request context; batch admitted payload.
// Returns: nil on success, non-OK status when shutting down or full.
func (s *Server) enqueue(ctx context.Context, batch *Batch) *eventpb.AddEventStatus {
	if err := ctx.Err(); err != nil {
		return eventpb.NewStatus(codes.Canceled, "request canceled: %v", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return eventpb.NewStatus(codes.Unavailable, "aggregator is shutting down")
	}

	batch.ID = s.newID()
	select {
	case s.queue <- batch:
		s.metrics.observeAdmitted(batch)
		return nil
	default:
		s.logger.Warn("admission queue full", slog.String("peer", batch.Peer), slog.Int("capacity", cap(s.queue)))
		return eventpb.NewStatus(codes.ResourceExhausted, "admission queue is full, retry later")
	}
}

// Close stops admission; later calls are answered with Unavailable.
// Batches already queued are still delivered to Work.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.queue)
}

// QueueDepth returns the number of admitted batches not yet consumed.
func (s *Server) QueueDepth() int {
	return len(s.queue)
}

// Work drains admitted batches into sink until Close and the queue is empty.
// Params: ctx sink context; sink destination chain.
// Returns: none.
func (s *Server) Work(ctx context.Context, sink Sink) {
	for batch := range s.queue {
		if err := sink.Consume(ctx, batch); err != nil {
			s.logger.Error("sink failed", slog.String("batch", batch.ID), slog.String("error", err.Error()))
		}
	}
}

// peerAddress extracts the caller address from a gRPC context.
func peerAddress(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	return p.Addr.String()
}
