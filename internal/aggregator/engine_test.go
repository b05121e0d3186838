package aggregator

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"eventagg/internal/config"
	"eventagg/internal/eventpb"
)

func testEngineConfig() *config.Config {
	return &config.Config{
		Global: config.GlobalConfig{Cluster: "test", Node: "node-1"},
		Server: config.ServerConfig{
			Listen:         "127.0.0.1:0",
			MaxRecvBytes:   4 << 20,
			MaxBatchEvents: 100,
			QueueSize:      16,
			Workers:        2,
		},
		Ledger: config.LedgerConfig{
			Enabled:    true,
			Backend:    config.LedgerBackendMemory,
			MaxEntries: 100,
		},
	}
}

// startEngine runs an engine in the background; stop cancels it and returns the Run result.
func startEngine(t *testing.T, cfg *config.Config, sender UpstreamSender) (*Engine, func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	engine, err := newEngine(ctx, cfg, discardLogger(), sender)
	if err != nil {
		cancel()
		t.Fatalf("new engine: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- engine.Run(ctx)
	}()

	stop := sync.OnceValue(func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(10 * time.Second):
			return errors.New("timeout waiting engine stop")
		}
	})
	t.Cleanup(func() {
		if err := stop(); err != nil {
			t.Errorf("stop engine: %v", err)
		}
	})
	return engine, stop
}

func dialEngine(t *testing.T, engine *Engine) eventpb.EventAggregatorServiceClient {
	t.Helper()
	conn, err := grpc.NewClient(engine.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return eventpb.NewEventAggregatorServiceClient(conn)
}

func exampleRequest() *eventpb.AddEventRequest {
	return &eventpb.AddEventRequest{EventsData: &eventpb.RayEventsData{
		Events: []*eventpb.RayEvent{{
			EventId:    []byte{0x01},
			SourceType: eventpb.SourceType_CORE_WORKER,
			EventType:  eventpb.EventType_TASK_EXECUTION_EVENT,
			Severity:   eventpb.Severity_INFO,
			Message:    "task started",
		}},
		TaskEventsMetadata: &eventpb.TaskEventsMetadata{DroppedTaskAttempts: []*eventpb.TaskAttempt{
			{TaskId: []byte("abc"), AttemptNumber: 1},
		}},
	}}
}

// TestEngine_AddEventsOverGRPC verifies the full path from RPC to dropped ledger.
// Params: testing.T for assertions.
// Returns: none.
func TestEngine_AddEventsOverGRPC(t *testing.T) {
	engine, stop := startEngine(t, testEngineConfig(), &fakeSender{})
	client := dialEngine(t, engine)

	ctx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()
	reply, err := client.AddEvents(ctx, exampleRequest())
	if err != nil {
		t.Fatalf("add events: %v", err)
	}
	if reply.GetStatus().GetCode() != 0 || reply.GetStatus().GetMessage() != "" {
		t.Fatalf("unexpected reply status: %+v", reply.GetStatus())
	}

	attempt := &eventpb.TaskAttempt{TaskId: []byte("abc"), AttemptNumber: 1}
	waitFor(t, "ledger record", func() bool {
		_, found, _ := engine.Ledger().Lookup(context.Background(), attempt)
		return found
	})

	empty, err := client.AddEvents(ctx, &eventpb.AddEventRequest{})
	if err != nil || !empty.GetStatus().IsOK() {
		t.Fatalf("empty request: reply=%+v err=%v", empty, err)
	}

	if err := stop(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

// TestEngine_ForwardsToUpstreamAggregator verifies batches reach a second aggregator over gRPC.
// Params: testing.T for assertions.
// Returns: none.
func TestEngine_ForwardsToUpstreamAggregator(t *testing.T) {
	central, _ := startEngine(t, testEngineConfig(), &fakeSender{})

	edgeCfg := testEngineConfig()
	edgeCfg.Ledger.Enabled = false
	edgeCfg.Upstream = []config.UpstreamConfig{testUpstream(central.Addr().String())}
	edge, _ := startEngine(t, edgeCfg, NewGRPCSender())
	client := dialEngine(t, edge)

	ctx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()
	reply, err := client.AddEvents(ctx, exampleRequest())
	if err != nil || !reply.GetStatus().IsOK() {
		t.Fatalf("add events: reply=%+v err=%v", reply, err)
	}

	attempt := &eventpb.TaskAttempt{TaskId: []byte("abc"), AttemptNumber: 1}
	waitFor(t, "upstream ledger record", func() bool {
		_, found, _ := central.Ledger().Lookup(context.Background(), attempt)
		return found
	})
}

// TestNewEngine_MovesToNextFreePort verifies server.port_retries skips a taken port.
// Params: testing.T for assertions.
// Returns: none.
func TestNewEngine_MovesToNextFreePort(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer taken.Close()

	cfg := testEngineConfig()
	cfg.Server.Listen = taken.Addr().String()
	cfg.Server.PortRetries = 5
	engine, _ := startEngine(t, cfg, &fakeSender{})

	if engine.Addr().String() == taken.Addr().String() {
		t.Fatalf("engine bound the taken address %s", taken.Addr())
	}
	client := dialEngine(t, engine)
	ctx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()
	if reply, err := client.AddEvents(ctx, exampleRequest()); err != nil || !reply.GetStatus().IsOK() {
		t.Fatalf("add events on moved port: reply=%+v err=%v", reply, err)
	}
}

// TestNewEngine_InvalidDropRule verifies setup fails before binding listeners.
// Params: testing.T for assertions.
// Returns: none.
func TestNewEngine_InvalidDropRule(t *testing.T) {
	cfg := testEngineConfig()
	cfg.Filter.DropEvent = []string{"severity=LOUD"}

	if _, err := newEngine(context.Background(), cfg, discardLogger(), &fakeSender{}); err == nil {
		t.Fatalf("expected invalid drop rule error")
	}
}
