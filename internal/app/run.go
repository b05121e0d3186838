// Package app wires configuration, logging, profiling, and the aggregator
// engine into one process lifecycle with SIGHUP-driven reload.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventagg/internal/aggregator"
	"eventagg/internal/config"
	"eventagg/internal/logging"
)

// Runtime defines the process inputs.
// Params: ConfigPath is a TOML file or directory; Reload delivers reload requests.
// Returns: value consumed by Run.
type Runtime struct {
	ConfigPath string
	Reload     <-chan struct{}
}

type engineRunner interface {
	Run(context.Context) error
}

type runDeps struct {
	loadConfig func(string) (*config.Config, error)
	newLogger  func(config.LogConfig) (*slog.Logger, func(), error)
	startPprof func(context.Context, config.PprofConfig, *slog.Logger) (func(), error)
	newEngine  func(context.Context, *config.Config, *slog.Logger) (engineRunner, error)
}

// generation is one running configuration: its engine, pprof server, and logger.
type generation struct {
	seq       int
	cfg       *config.Config
	logger    *slog.Logger
	closeLog  func()
	cancel    context.CancelFunc
	done      chan error
	stopPprof func()
}

// supervisor owns the current generation and replaces it on reload.
type supervisor struct {
	path    string
	deps    runDeps
	current *generation
	seq     int
}

// Run loads configuration and serves until ctx ends.
// Params: ctx process lifecycle; rt config path and reload trigger.
// Returns: startup error, fatal reload error, or engine failure; nil on graceful stop.
func Run(ctx context.Context, rt Runtime) error {
	return runWithDeps(ctx, rt, defaultRunDeps())
}

func defaultRunDeps() runDeps {
	return runDeps{
		loadConfig: config.Load,
		newLogger:  logging.New,
		startPprof: startPprofServer,
		newEngine: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (engineRunner, error) {
			return aggregator.NewFromConfig(ctx, cfg, logger)
		},
	}
}

func runWithDeps(ctx context.Context, rt Runtime, deps runDeps) error {
	path := strings.TrimSpace(rt.ConfigPath)
	if path == "" {
		return errors.New("config path is required")
	}

	s := &supervisor{path: path, deps: deps}
	cfg, err := deps.loadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, closeLog, err := deps.newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if s.current, err = s.launch(ctx, cfg, logger, closeLog); err != nil {
		closeLog()
		return err
	}

	return s.supervise(ctx, rt.Reload)
}

// supervise waits for shutdown, engine exit, or reload requests.
func (s *supervisor) supervise(ctx context.Context, reload <-chan struct{}) error {
	for {
		select {
		case runErr := <-s.current.done:
			return s.engineExited(ctx, runErr)
		case <-ctx.Done():
			current := s.current
			current.halt()
			current.logger.Info("aggregator stopped", slog.String("reason", context.Cause(ctx).Error()))
			current.closeLogger()
			return nil
		case _, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			if err := s.reload(ctx); err != nil {
				return err
			}
		}
	}
}

// engineExited handles an engine that returned on its own.
func (s *supervisor) engineExited(ctx context.Context, runErr error) error {
	current := s.current
	current.done = nil
	current.halt()
	defer current.closeLogger()

	if ctx.Err() != nil {
		current.logger.Info("aggregator stopped", slog.String("reason", context.Cause(ctx).Error()))
		return nil
	}
	if runErr == nil {
		runErr = errors.New("exited without context cancellation")
	}
	current.logger.Error("engine stopped unexpectedly", slog.String("error", runErr.Error()))
	return fmt.Errorf("run engine: %w", runErr)
}

// launch starts pprof and the engine for cfg. The caller keeps ownership of
// closeLog when launch fails.
// Params: ctx process lifecycle; cfg validated config; logger/closeLog generation logger.
// Returns: running generation or startup error.
func (s *supervisor) launch(ctx context.Context, cfg *config.Config, logger *slog.Logger, closeLog func()) (*generation, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("runtime context canceled: %w", ctx.Err())
	}

	s.seq++
	gen := &generation{seq: s.seq, cfg: cfg, logger: logger, closeLog: closeLog}

	runCtx, cancel := context.WithCancel(ctx)
	stopPprof, err := s.deps.startPprof(runCtx, cfg.Pprof, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("start pprof: %w", err)
	}

	engine, err := s.deps.newEngine(runCtx, cfg, logger.With(slog.Int("generation", gen.seq)))
	if err != nil {
		stopPprof()
		cancel()
		return nil, fmt.Errorf("build engine: %w", err)
	}

	gen.cancel = cancel
	gen.stopPprof = stopPprof
	gen.done = make(chan error, 1)
	go func() {
		gen.done <- engine.Run(runCtx)
	}()

	gen.announce()
	return gen, nil
}

// reload swaps the current generation for one built from a fresh config.
// A config that fails to load keeps the current generation untouched; a
// generation that fails to start is replaced by a restart of the previous config.
// Params: ctx process lifecycle.
// Returns: error only when neither the new nor the previous config could start.
func (s *supervisor) reload(ctx context.Context) error {
	prev := s.current
	prev.logger.Info("config reload requested", slog.Int("generation", prev.seq))

	cfg, err := s.deps.loadConfig(s.path)
	if err != nil {
		prev.logger.Error("config reload validation failed", slog.String("error", err.Error()))
		return nil
	}
	logger, closeLog, err := s.deps.newLogger(cfg.Log)
	if err != nil {
		prev.logger.Error("config reload logger init failed", slog.String("error", err.Error()))
		return nil
	}

	prev.halt()
	next, startErr := s.launch(ctx, cfg, logger, closeLog)
	if startErr == nil {
		prev.closeLogger()
		s.current = next
		next.logger.Info("config reload applied", slog.Int("generation", next.seq))
		return nil
	}
	closeLog()

	if ctx.Err() != nil {
		prev.logger.Info("config reload interrupted by shutdown")
		return nil
	}

	prev.logger.Error("config reload apply failed, restoring previous runtime", slog.String("error", startErr.Error()))
	restored, rollbackErr := s.launch(ctx, prev.cfg, prev.logger, prev.closeLog)
	if rollbackErr != nil {
		prev.closeLogger()
		return fmt.Errorf("apply reload: %w; rollback failed: %w", startErr, rollbackErr)
	}
	s.current = restored
	restored.logger.Warn("config reload rejected, previous runtime restored", slog.String("error", startErr.Error()))
	return nil
}

// halt stops the engine and pprof; the logger stays open.
func (g *generation) halt() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	if g.done != nil {
		<-g.done
		g.done = nil
	}
	if g.stopPprof != nil {
		g.stopPprof()
		g.stopPprof = nil
	}
}

func (g *generation) closeLogger() {
	if g.closeLog != nil {
		g.closeLog()
		g.closeLog = nil
	}
}

// announce logs what this generation serves.
func (g *generation) announce() {
	cfg := g.cfg
	g.logger.Info(
		"aggregator started",
		slog.Int("generation", g.seq),
		slog.String("cluster", cfg.Global.Cluster),
		slog.String("node", cfg.Global.Node),
		slog.String("listen", cfg.Server.Listen),
		slog.Int("max_batch_events", cfg.Server.MaxBatchEvents),
		slog.Int("drop_rules", len(cfg.Filter.DropEvent)),
		slog.Bool("ledger", cfg.Ledger.Enabled),
		slog.Int("upstreams", len(cfg.Upstream)),
	)
}
