package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"eventagg/internal/app"
)

const (
	exitCodeFailure = 1
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// run starts the aggregator process.
// Params: none.
// Returns: process exit code.
func run() int {
	var (
		configPath string
		stdoutPath string
		stderrPath string
		showInfo   bool
	)

	flag.StringVar(&configPath, "config", "eventagg.toml", "path to TOML config file or directory")
	flag.StringVar(&stdoutPath, "stdout-file", "", "append process stdout to this file")
	flag.StringVar(&stderrPath, "stderr-file", "", "append process stderr and crash reports to this file")
	flag.BoolVar(&showInfo, "v", false, "show build information")
	flag.BoolVar(&showInfo, "version", false, "show build information")
	flag.Parse()

	if showInfo {
		fmt.Printf("eventagg version=%s commit=%s date=%s\n", version, commit, date)
		return 0
	}

	restoreOutput, err := redirectOutput(stdoutPath, stderrPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeFailure
	}
	defer restoreOutput()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	if err := app.Run(ctx, app.Runtime{ConfigPath: configPath, Reload: coalesce(ctx, hup)}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeFailure
	}

	return 0
}

// coalesce turns SIGHUP deliveries into reload requests; bursts collapse into one pending request.
// Params: ctx stops the relay; signals SIGHUP channel.
// Returns: reload request channel.
func coalesce(ctx context.Context, signals <-chan os.Signal) <-chan struct{} {
	reload := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				select {
				case reload <- struct{}{}:
				default:
				}
			}
		}
	}()
	return reload
}

func main() {
	os.Exit(run())
}
