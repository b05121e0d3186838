package aggregator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"eventagg/internal/eventpb"
)

// UpstreamSender delivers one request to one upstream address.
// A transport failure is returned as error; an application outcome,
// including a non-OK one, is returned as status.
type UpstreamSender interface {
	Send(ctx context.Context, address string, request *eventpb.AddEventRequest) (*eventpb.AddEventStatus, error)
}

// GRPCSender sends AddEvents requests over gRPC with one cached client per address.
type GRPCSender struct {
	mu      sync.Mutex
	clients map[string]eventpb.EventAggregatorServiceClient
	conns   map[string]*grpc.ClientConn
	dialOpt []grpc.DialOption
}

// NewGRPCSender creates a sender; extra dial options are appended to the defaults.
// Params: opts additional gRPC dial options.
// Returns: sender instance.
func NewGRPCSender(opts ...grpc.DialOption) *GRPCSender {
	dialOpt := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	return &GRPCSender{
		clients: make(map[string]eventpb.EventAggregatorServiceClient),
		conns:   make(map[string]*grpc.ClientConn),
		dialOpt: dialOpt,
	}
}

// Send pushes request to address and returns the reply status.
// Params: ctx call context carrying the per-send deadline; address host:port; request payload.
// Returns: reply status or transport error.
func (s *GRPCSender) Send(
	ctx context.Context,
	address string,
	request *eventpb.AddEventRequest,
) (*eventpb.AddEventStatus, error) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return nil, fmt.Errorf("upstream address is empty")
	}

	client, err := s.clientForAddress(addr)
	if err != nil {
		return nil, err
	}

	reply, err := client.AddEvents(ctx, request)
	if err != nil {
		s.dropAddress(addr)
		return nil, fmt.Errorf("add events %s: %w", addr, err)
	}
	if reply.GetStatus() == nil {
		return nil, fmt.Errorf("add events %s: reply without status", addr)
	}
	return reply.GetStatus(), nil
}

// Close closes all cached connections.
// Params: none.
// Returns: first close error.
func (s *GRPCSender) Close() error {
	s.mu.Lock()
	conns := s.conns
	s.conns = make(map[string]*grpc.ClientConn)
	s.clients = make(map[string]eventpb.EventAggregatorServiceClient)
	s.mu.Unlock()

	var firstErr error
	for _, conn := range conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// clientForAddress returns the cached client or creates a new one.
// Params: address destination host:port.
// Returns: client or connection setup error.
func (s *GRPCSender) clientForAddress(address string) (eventpb.EventAggregatorServiceClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[address]; ok {
		return client, nil
	}

	conn, err := grpc.NewClient(address, s.dialOpt...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", address, err)
	}
	client := eventpb.NewEventAggregatorServiceClient(conn)
	s.clients[address] = client
	s.conns[address] = conn
	return client, nil
}

// dropAddress forgets the client of a failed address so the next send reconnects.
func (s *GRPCSender) dropAddress(address string) {
	s.mu.Lock()
	conn, ok := s.conns[address]
	delete(s.conns, address)
	delete(s.clients, address)
	s.mu.Unlock()

	if ok {
		_ = conn.Close()
	}
}

// sendTimeout bounds ctx by timeout when positive.
func sendTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
