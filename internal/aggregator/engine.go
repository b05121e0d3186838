package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"eventagg/internal/config"
	"eventagg/internal/eventpb"
)

const grpcStopTimeout = 5 * time.Second

// Engine owns the aggregator runtime: gRPC endpoint, HTTP side endpoint,
// sink workers, upstream forwarding, and the dropped ledger.
type Engine struct {
	logger  *slog.Logger
	server  *Server
	metrics *Metrics
	ledger  DroppedLedger

	grpcServer *grpc.Server
	grpcLn     net.Listener
	http       *httpServer

	sink     Sink
	workers  int
	upstream *UpstreamSink

	stopSinks context.CancelFunc
}

// NewFromConfig builds every runtime component and binds listeners.
// Params: ctx parent lifecycle context; cfg validated runtime config; logger initialized logger.
// Returns: engine ready to Run, or setup error with partial resources released.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	return newEngine(ctx, cfg, logger, NewGRPCSender())
}

func newEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, sender UpstreamSender) (_ *Engine, err error) {
	conditions, err := CompileDropConditions(cfg.Filter.DropEvent)
	if err != nil {
		return nil, err
	}

	logger = logger.With(slog.String("cluster", cfg.Global.Cluster), slog.String("node", cfg.Global.Node))
	e := &Engine{logger: logger, workers: max(cfg.Server.Workers, 1)}

	var cleanups []func()
	defer func() {
		if err == nil {
			return
		}
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	var server *Server
	e.metrics = NewMetrics(func() float64 { return float64(server.QueueDepth()) }, logger)
	server = NewServer(ServerOptions{
		MaxBatchEvents: cfg.Server.MaxBatchEvents,
		RejectEmpty:    cfg.Server.RejectEmpty,
		QueueSize:      cfg.Server.QueueSize,
		DropEvent:      conditions,
	}, logger, e.metrics)
	e.server = server

	sinks := []Sink{NewLogSink(logger)}

	if cfg.Ledger.Enabled {
		e.ledger, err = newLedger(ctx, cfg.Ledger)
		if err != nil {
			return nil, err
		}
		cleanups = append(cleanups, func() { _ = e.ledger.Close() })
		sinks = append(sinks, NewLedgerSink(e.ledger))
	}

	sinkCtx, stopSinks := context.WithCancel(context.WithoutCancel(ctx))
	e.stopSinks = stopSinks
	cleanups = append(cleanups, stopSinks)

	if len(cfg.Upstream) > 0 {
		e.upstream, err = NewUpstreamSink(sinkCtx, cfg.Upstream, logger, sender, e.metrics)
		if err != nil {
			return nil, fmt.Errorf("init upstream sink: %w", err)
		}
		upstream := e.upstream
		cleanups = append(cleanups, func() {
			stopSinks()
			upstream.Wait()
		})
		sinks = append(sinks, upstream)
	}
	e.sink = NewMultiSink(sinks...)

	e.grpcLn, err = listenTCP(cfg.Server.Listen, cfg.Server.PortRetries)
	if err != nil {
		return nil, err
	}
	cleanups = append(cleanups, func() { _ = e.grpcLn.Close() })

	e.grpcServer = grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.Server.MaxRecvBytes),
	)
	eventpb.RegisterEventAggregatorServiceServer(e.grpcServer, server)

	if cfg.HTTP.Enabled {
		handler := newHTTPHandler(&httpHandlers{
			server:       server,
			ledger:       e.ledger,
			metrics:      e.metrics,
			maxBodyBytes: int64(cfg.Server.MaxRecvBytes),
			logger:       logger,
		})
		e.http, err = newHTTPServer(cfg.HTTP.Listen, cfg.HTTP.PortRetries, handler, logger)
		if err != nil {
			return nil, fmt.Errorf("init http server: %w", err)
		}
	}

	return e, nil
}

// newLedger opens the configured dropped ledger backend.
func newLedger(ctx context.Context, cfg config.LedgerConfig) (DroppedLedger, error) {
	switch cfg.Backend {
	case config.LedgerBackendRedis:
		ledger, err := NewRedisLedger(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis ledger: %w", err)
		}
		return ledger, nil
	default:
		return NewMemoryLedger(cfg.MaxEntries), nil
	}
}

// Addr returns the bound gRPC listen address.
func (e *Engine) Addr() net.Addr {
	return e.grpcLn.Addr()
}

// Ledger returns the dropped ledger, nil when disabled.
func (e *Engine) Ledger() DroppedLedger {
	return e.ledger
}

// Run serves until ctx is canceled, then drains admitted batches through the sinks.
// Params: ctx lifecycle context.
// Returns: first serve error, or nil on graceful stop.
func (e *Engine) Run(ctx context.Context) error {
	defer e.release()

	sinkCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()

	var workersWG sync.WaitGroup
	workersWG.Add(e.workers)
	for range e.workers {
		go func() {
			defer workersWG.Done()
			e.server.Work(sinkCtx, e.sink)
		}()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return e.serveGRPC(groupCtx)
	})
	if e.http != nil {
		group.Go(func() error {
			return e.http.run(groupCtx)
		})
	}

	httpAddr := ""
	if e.http != nil {
		httpAddr = e.http.listen
	}
	e.logger.Info(
		"aggregator serving",
		slog.String("grpc", e.grpcLn.Addr().String()),
		slog.Int("workers", e.workers),
		slog.String("http", httpAddr),
	)

	runErr := group.Wait()

	e.server.Close()
	workersWG.Wait()
	return runErr
}

// serveGRPC runs the gRPC server until ctx is canceled.
// Params: ctx lifecycle context.
// Returns: serve error when the server stops on its own.
func (e *Engine) serveGRPC(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.grpcServer.Serve(e.grpcLn)
	}()

	select {
	case <-ctx.Done():
		stopped := make(chan struct{})
		go func() {
			e.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(grpcStopTimeout):
			e.grpcServer.Stop()
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		e.logger.Error("grpc server stopped unexpectedly", slog.String("error", err.Error()))
		return fmt.Errorf("serve grpc: %w", err)
	}
}

// release stops upstream workers after the last batch was handed over and closes the ledger.
func (e *Engine) release() {
	e.stopSinks()
	if e.upstream != nil {
		e.upstream.Wait()
	}
	if e.ledger != nil {
		if err := e.ledger.Close(); err != nil {
			e.logger.Warn("close ledger failed", slog.String("error", err.Error()))
		}
	}
}
