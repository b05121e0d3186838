package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	pprofhttp "net/http/pprof"
	"sync"
	"time"

	"eventagg/internal/config"
)

const (
	pprofShutdownTimeout = 3 * time.Second
	pprofReadHeaderTO    = 2 * time.Second
)

// namedProfiles are runtime/pprof profiles served under /debug/pprof/<name>.
var namedProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// newPprofHandler routes the profiling endpoints.
func newPprofHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/{$}", pprofhttp.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprofhttp.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprofhttp.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprofhttp.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprofhttp.Trace)
	for _, name := range namedProfiles {
		mux.Handle("GET /debug/pprof/"+name, pprofhttp.Handler(name))
	}
	return mux
}

// startPprofServer serves profiling endpoints on their own listener until ctx ends.
// Params: ctx runtime lifecycle; cfg pprof section; logger for runtime events.
// Returns: idempotent stop function and bind error.
func startPprofServer(ctx context.Context, cfg config.PprofConfig, logger *slog.Logger) (func(), error) {
	if !cfg.Enabled {
		return func() {}, nil
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, fmt.Errorf("listen %q: %w", cfg.Listen, err)
	}
	addr := ln.Addr().String()

	server := &http.Server{
		Handler:           newPprofHandler(),
		ReadHeaderTimeout: pprofReadHeaderTO,
	}

	stop := sync.OnceFunc(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), pprofShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("pprof shutdown failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	})
	context.AfterFunc(ctx, stop)

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()

	logger.Info("pprof server started", slog.String("addr", addr))
	return stop, nil
}
