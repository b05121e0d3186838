package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"

	"eventagg/internal/config"
	"eventagg/internal/eventpb"
)

type sentRequest struct {
	address string
	request *eventpb.AddEventRequest
}

// fakeSender answers per address through a replaceable respond function.
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentRequest
	respond func(address string) (*eventpb.AddEventStatus, error)
}

func (s *fakeSender) Send(_ context.Context, address string, request *eventpb.AddEventRequest) (*eventpb.AddEventStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentRequest{address: address, request: request})
	if s.respond == nil {
		return eventpb.OKStatus(), nil
	}
	return s.respond(address)
}

func (s *fakeSender) setRespond(respond func(address string) (*eventpb.AddEventStatus, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond = respond
}

func (s *fakeSender) requests() []sentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentRequest(nil), s.sent...)
}

func testUpstream(addr ...string) config.UpstreamConfig {
	return config.UpstreamConfig{
		Name:          "central",
		Addr:          addr,
		Timeout:       config.Duration{Duration: time.Second},
		RetryInterval: config.Duration{Duration: 20 * time.Millisecond},
		Batch: config.UpstreamBatchConfig{
			MaxEvents: 1,
			MaxAge:    config.Duration{Duration: time.Hour},
		},
	}
}

func startUpstream(t *testing.T, cfg config.UpstreamConfig, sender UpstreamSender) (*UpstreamSink, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	sink, err := NewUpstreamSink(ctx, []config.UpstreamConfig{cfg}, discardLogger(), sender, nil)
	if err != nil {
		cancel()
		t.Fatalf("new upstream sink: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		sink.Wait()
	})
	return sink, cancel
}

func eventBatch(messages ...string) *Batch {
	batch := &Batch{ID: "b"}
	for _, message := range messages {
		batch.Events = append(batch.Events, &eventpb.RayEvent{Severity: eventpb.Severity_INFO, Message: message})
	}
	return batch
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}

var errConnectionRefused = errors.New("connection refused")

// TestUpstreamSink_FailsOverToNextAddress verifies addresses are tried in order.
// Params: testing.T for assertions.
// Returns: none.
func TestUpstreamSink_FailsOverToNextAddress(t *testing.T) {
	sender := &fakeSender{respond: func(address string) (*eventpb.AddEventStatus, error) {
		if address == "primary:50051" {
			return nil, errConnectionRefused
		}
		return eventpb.OKStatus(), nil
	}}
	sink, _ := startUpstream(t, testUpstream("primary:50051", " backup:50051 "), sender)

	if err := sink.Consume(context.Background(), eventBatch("a")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	waitFor(t, "two send attempts", func() bool { return len(sender.requests()) == 2 })

	sent := sender.requests()
	if sent[0].address != "primary:50051" || sent[1].address != "backup:50051" {
		t.Fatalf("unexpected send order: %s, %s", sent[0].address, sent[1].address)
	}
	if got := sent[1].request.GetEventsData().GetEvents(); len(got) != 1 || got[0].GetMessage() != "a" {
		t.Fatalf("unexpected forwarded events: %+v", got)
	}
}

// TestUpstreamSink_SpoolsAndResends verifies failed requests are persisted and resent later.
// Params: testing.T for assertions.
// Returns: none.
func TestUpstreamSink_SpoolsAndResends(t *testing.T) {
	sender := &fakeSender{respond: func(string) (*eventpb.AddEventStatus, error) {
		return nil, errConnectionRefused
	}}
	cfg := testUpstream("central:50051")
	cfg.Queue = config.UpstreamQueueConfig{Enabled: true, Dir: t.TempDir(), MaxBatches: 10}
	sink, _ := startUpstream(t, cfg, sender)
	spool := sink.workers[0].spool

	batch := eventBatch("spooled")
	batch.Dropped = []*eventpb.TaskAttempt{{TaskId: []byte("abc"), AttemptNumber: 1}}
	if err := sink.Consume(context.Background(), batch); err != nil {
		t.Fatalf("consume: %v", err)
	}
	waitFor(t, "spooled request", func() bool { return spool.Pending() == 1 })

	sender.setRespond(func(string) (*eventpb.AddEventStatus, error) {
		return eventpb.OKStatus(), nil
	})
	waitFor(t, "spool drain", func() bool { return spool.Pending() == 0 })

	sent := sender.requests()
	last := sent[len(sent)-1].request.GetEventsData()
	if len(last.GetEvents()) != 1 || last.GetEvents()[0].GetMessage() != "spooled" {
		t.Fatalf("unexpected resent events: %+v", last.GetEvents())
	}
	dropped := last.GetTaskEventsMetadata().GetDroppedTaskAttempts()
	if len(dropped) != 1 || string(dropped[0].TaskId) != "abc" || dropped[0].AttemptNumber != 1 {
		t.Fatalf("unexpected resent dropped attempts: %+v", dropped)
	}
}

// TestUpstreamSink_RejectionIsNotSpooled verifies a non-OK reply counts as delivered.
// Params: testing.T for assertions.
// Returns: none.
func TestUpstreamSink_RejectionIsNotSpooled(t *testing.T) {
	sender := &fakeSender{respond: func(string) (*eventpb.AddEventStatus, error) {
		return eventpb.NewStatus(codes.ResourceExhausted, "busy"), nil
	}}
	cfg := testUpstream("central:50051", "backup:50051")
	cfg.Queue = config.UpstreamQueueConfig{Enabled: true, Dir: t.TempDir(), MaxBatches: 10}
	sink, _ := startUpstream(t, cfg, sender)

	if err := sink.Consume(context.Background(), eventBatch("a")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	waitFor(t, "send attempt", func() bool { return len(sender.requests()) == 1 })
	time.Sleep(50 * time.Millisecond)

	if got := len(sender.requests()); got != 1 {
		t.Fatalf("rejected request must not fail over or be resent, sends=%d", got)
	}
	if pending := sink.workers[0].spool.Pending(); pending != 0 {
		t.Fatalf("rejected request must not be spooled, pending=%d", pending)
	}
}

// TestUpstreamSink_MergesUntilMaxEvents verifies batches are merged into one request.
// Params: testing.T for assertions.
// Returns: none.
func TestUpstreamSink_MergesUntilMaxEvents(t *testing.T) {
	sender := &fakeSender{}
	cfg := testUpstream("central:50051")
	cfg.Batch.MaxEvents = 3
	sink, _ := startUpstream(t, cfg, sender)

	first := eventBatch("a")
	first.Dropped = []*eventpb.TaskAttempt{{TaskId: []byte("t1"), AttemptNumber: 0}}
	if err := sink.Consume(context.Background(), first); err != nil {
		t.Fatalf("consume first: %v", err)
	}
	if err := sink.Consume(context.Background(), eventBatch("b")); err != nil {
		t.Fatalf("consume second: %v", err)
	}
	waitFor(t, "merged send", func() bool { return len(sender.requests()) == 1 })

	data := sender.requests()[0].request.GetEventsData()
	if len(data.GetEvents()) != 2 || len(data.GetTaskEventsMetadata().GetDroppedTaskAttempts()) != 1 {
		t.Fatalf("unexpected merged request: %+v", data)
	}
}

// TestUpstreamSink_FlushesOnShutdown verifies pending batches are sent when the context ends.
// Params: testing.T for assertions.
// Returns: none.
func TestUpstreamSink_FlushesOnShutdown(t *testing.T) {
	sender := &fakeSender{}
	cfg := testUpstream("central:50051")
	cfg.Batch.MaxEvents = 100
	sink, cancel := startUpstream(t, cfg, sender)

	if err := sink.Consume(context.Background(), eventBatch("a", "b")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	cancel()
	sink.Wait()

	sent := sender.requests()
	if len(sent) != 1 || len(sent[0].request.GetEventsData().GetEvents()) != 2 {
		t.Fatalf("expected one final request with two events, got %d requests", len(sent))
	}
}

// TestNewUpstreamSink_Validation verifies constructor argument checks.
// Params: testing.T for assertions.
// Returns: none.
func TestNewUpstreamSink_Validation(t *testing.T) {
	if _, err := NewUpstreamSink(context.Background(), nil, discardLogger(), &fakeSender{}, nil); err == nil {
		t.Fatalf("expected error for empty upstream list")
	}
	if _, err := NewUpstreamSink(context.Background(), []config.UpstreamConfig{testUpstream("a:1")}, discardLogger(), nil, nil); err == nil {
		t.Fatalf("expected error for nil sender")
	}
}
