// Command studio-bridge is the AI-agent-facing half of a bidirectional
// bridge to a Roblox Studio plugin: it speaks line-delimited JSON-RPC on
// stdio to the agent and exposes a long-poll HTTP API the plugin calls
// into, since the plugin itself cannot accept inbound connections.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-bridge/internal/config"
	"studio-bridge/internal/dispatcher"
	"studio-bridge/internal/httptransport"
	"studio-bridge/internal/jobqueue"
	"studio-bridge/internal/log"
	"studio-bridge/internal/metrics"
	"studio-bridge/internal/stdiotransport"
	"studio-bridge/internal/sweeper"
)

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, config.ErrVersionRequested) {
			fmt.Printf("studio-bridge %s (commit %s, built %s)\n", version, gitCommit, buildDate)
			return 0
		}
		fmt.Fprintln(os.Stderr, "studio-bridge:", err)
		return 2
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("main")

	fmt.Fprintf(os.Stderr, "studio-bridge %s starting: http=%s:%d poll_timeout=%s job_timeout=%s\n",
		version, cfg.HTTPBind, cfg.HTTPPort, cfg.PollTimeout, cfg.JobTimeout)

	var metricsHandler http.Handler
	var queueOpts []jobqueue.Option
	if cfg.Metrics {
		recorder := metrics.NewRecorder()
		metricsHandler = metrics.Handler()
		queueOpts = append(queueOpts, jobqueue.WithRecorder(recorder))
	}

	queue := jobqueue.New(queueOpts...)
	dispatch := dispatcher.New(queue, cfg.JobTimeout, cfg.LivenessWindow)

	httpServer := httptransport.New(httptransport.Options{
		Bind:           cfg.HTTPBind,
		Port:           cfg.HTTPPort,
		Queue:          queue,
		PollTimeout:    cfg.PollTimeout,
		LivenessWindow: cfg.LivenessWindow,
		Quiet:          cfg.Quiet,
		MetricsHandler: metricsHandler,
	})

	httpErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErrCh <- err
		}
	}()

	var sweep *sweeper.Sweeper
	if cfg.SweepInterval > 0 {
		sweep = sweeper.New(queue, cfg.JobTimeout+cfg.PollTimeout)
		if err := sweep.Start(cfg.SweepInterval); err != nil {
			logger.Error("failed to start sweeper", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := stdiotransport.New(os.Stdin, os.Stdout, dispatch)
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	exitCode := 0
	select {
	case err := <-loopDone:
		if err != nil {
			logger.Error("stdio loop exited", "error", err)
			exitCode = 1
		}
	case err := <-httpErrCh:
		logger.Error("http server failed", "error", err)
		exitCode = 1
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	if sweep != nil {
		sweep.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown did not complete cleanly", "error", err)
	}

	return exitCode
}
