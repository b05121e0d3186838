package eventpb

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type recordingServer struct {
	UnimplementedEventAggregatorServiceServer

	mu       sync.Mutex
	requests []*AddEventRequest
	reply    *AddEventReply
}

// AddEvents records the request and returns the configured reply.
// Params: ctx rpc context; request decoded batch.
// Returns: configured reply or OK reply.
func (s *recordingServer) AddEvents(_ context.Context, request *AddEventRequest) (*AddEventReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, request)
	if s.reply != nil {
		return s.reply, nil
	}
	return NewReply(OKStatus()), nil
}

// startBufconnServer serves srv on an in-memory listener.
// Params: t test context; srv service implementation.
// Returns: connected client.
func startBufconnServer(t *testing.T, srv EventAggregatorServiceServer) EventAggregatorServiceClient {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	RegisterEventAggregatorServiceServer(server, srv)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return NewEventAggregatorServiceClient(conn)
}

// TestAddEvents_RoundTripOverGRPC verifies request and reply travel over a gRPC connection.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEvents_RoundTripOverGRPC(t *testing.T) {
	srv := &recordingServer{}
	client := startBufconnServer(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := client.AddEvents(ctx, droppedOnlyRequest())
	if err != nil {
		t.Fatalf("add events: %v", err)
	}
	if !reply.GetStatus().IsOK() || reply.GetStatus().GetMessage() != "" {
		t.Fatalf("unexpected reply: %+v", reply.GetStatus())
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if len(srv.requests) != 1 {
		t.Fatalf("unexpected request count: %d", len(srv.requests))
	}
	dropped := srv.requests[0].GetEventsData().GetTaskEventsMetadata().GetDroppedTaskAttempts()
	if len(dropped) != 1 || string(dropped[0].GetTaskId()) != "abc" || dropped[0].GetAttemptNumber() != 1 {
		t.Fatalf("unexpected dropped attempts on server: %+v", dropped)
	}
}

// TestAddEvents_SoftFailureIsNotTransportError verifies non-OK codes arrive in the reply.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEvents_SoftFailureIsNotTransportError(t *testing.T) {
	srv := &recordingServer{reply: NewReply(NewStatus(codes.ResourceExhausted, "slow down"))}
	client := startBufconnServer(t, srv)

	reply, err := client.AddEvents(context.Background(), &AddEventRequest{})
	if err != nil {
		t.Fatalf("expected reply, got transport error: %v", err)
	}
	if reply.GetStatus().CanonicalCode() != codes.ResourceExhausted {
		t.Fatalf("unexpected code: %v", reply.GetStatus().CanonicalCode())
	}

	statusErr, ok := reply.GetStatus().Err().(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError, got %T", reply.GetStatus().Err())
	}
	if statusErr.Code != codes.ResourceExhausted || statusErr.Message != "slow down" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

// TestAddEvents_UnimplementedServer verifies the embedded default server.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEvents_UnimplementedServer(t *testing.T) {
	client := startBufconnServer(t, UnimplementedEventAggregatorServiceServer{})

	_, err := client.AddEvents(context.Background(), &AddEventRequest{})
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", err)
	}
}

// TestAddEventStatus_ErrOnMissingStatus verifies a reply without status is not success.
// Params: testing.T for assertions.
// Returns: none.
func TestAddEventStatus_ErrOnMissingStatus(t *testing.T) {
	var reply AddEventReply
	if reply.GetStatus().IsOK() {
		t.Fatalf("missing status must not be OK")
	}
	if err := reply.GetStatus().Err(); err == nil {
		t.Fatalf("expected error for missing status")
	}
	if err := OKStatus().Err(); err != nil {
		t.Fatalf("unexpected error for OK status: %v", err)
	}
}
