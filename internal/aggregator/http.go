package aggregator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc/codes"

	"eventagg/internal/eventpb"
)

const (
	httpReadHeaderTimeout = 5 * time.Second
	httpShutdownTimeout   = 5 * time.Second
)

// httpServer runs the side HTTP endpoint tied to a lifecycle context.
// Params: listener, handler, and logger for diagnostics.
// Returns: runnable HTTP server instance.
type httpServer struct {
	listen string
	ln     net.Listener
	server *http.Server
	logger *slog.Logger
}

// newHTTPServer binds the listen address and prepares the server.
// Params: listen address in host:port; portRetries following ports to try; handler HTTP handler; logger root logger.
// Returns: server instance or bind error.
func newHTTPServer(listen string, portRetries int, handler http.Handler, logger *slog.Logger) (*httpServer, error) {
	ln, err := listenTCP(listen, portRetries)
	if err != nil {
		return nil, err
	}

	return &httpServer{
		listen: ln.Addr().String(),
		ln:     ln,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
		},
		logger: logger,
	}, nil
}

// run serves until ctx is canceled, then shuts down gracefully.
// Params: ctx lifecycle context.
// Returns: nil on graceful stop; error on early serve failures.
func (s *httpServer) run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(s.ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("http server stopped unexpectedly", slog.String("listen", s.listen), slog.String("error", err.Error()))
		return fmt.Errorf("serve http %s: %w", s.listen, err)
	}
}

// httpHandlers exposes metrics, health, JSON ingest, and ledger lookup.
type httpHandlers struct {
	server       *Server
	ledger       DroppedLedger
	metrics      *Metrics
	maxBodyBytes int64
	logger       *slog.Logger
}

// newHTTPHandler builds the side endpoint router.
// Params: h handler dependencies; ledger and metrics may be nil.
// Returns: HTTP handler.
func newHTTPHandler(h *httpHandlers) http.Handler {
	mux := http.NewServeMux()
	if registry := h.metrics.Registry(); registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("POST /v1/events", h.addEvents)
	mux.HandleFunc("GET /v1/dropped/{task_id}/{attempt}", h.lookupDropped)
	return mux
}

func (h *httpHandlers) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// addEvents admits a JSON AddEventRequest through the same policy as gRPC.
// Every application outcome is HTTP 200; only undecodable bodies get 400.
func (h *httpHandlers) addEvents(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var request eventpb.AddEventRequest
	if err := json.NewDecoder(body).Decode(&request); err != nil {
		h.writeJSON(w, http.StatusBadRequest, eventpb.NewReply(
			eventpb.NewStatus(codes.InvalidArgument, "decode request: %v", err)))
		return
	}

	status := h.server.Admit(r.Context(), request.GetEventsData(), r.RemoteAddr)
	h.writeJSON(w, http.StatusOK, eventpb.NewReply(status))
}

// lookupDropped returns the ledger record of one task attempt.
func (h *httpHandlers) lookupDropped(w http.ResponseWriter, r *http.Request) {
	if h.ledger == nil {
		http.Error(w, "dropped ledger is disabled", http.StatusNotFound)
		return
	}

	taskID, err := decodeTaskID(r.PathValue("task_id"))
	if err != nil || len(taskID) == 0 {
		http.Error(w, "task_id must be non-empty url-safe base64", http.StatusBadRequest)
		return
	}
	attempt, err := strconv.ParseInt(r.PathValue("attempt"), 10, 32)
	if err != nil || attempt < 0 {
		http.Error(w, "attempt must be a non-negative int32", http.StatusBadRequest)
		return
	}

	record, found, err := h.ledger.Lookup(r.Context(), &eventpb.TaskAttempt{TaskId: taskID, AttemptNumber: int32(attempt)})
	if err != nil {
		h.logger.Error("ledger lookup failed", slog.String("error", err.Error()))
		http.Error(w, "ledger lookup failed", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "task attempt not reported as dropped", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// decodeTaskID reads the path form of a task id: the base64 used by JSON
// bodies in its url-safe alphabet, padding optional.
func decodeTaskID(raw string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
}

func (h *httpHandlers) writeJSON(w http.ResponseWriter, code int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		h.logger.Debug("write http response failed", slog.String("error", err.Error()))
	}
}
