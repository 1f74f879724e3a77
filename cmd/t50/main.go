// t50 synthesises raw IP-layer datagrams for a selection of network
// protocols and transmits them against an address range (§1, §4).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/t50io/t50/internal/banner"
	"github.com/t50io/t50/internal/cli"
	"github.com/t50io/t50/internal/inject"
	"github.com/t50io/t50/internal/metrics"
	"github.com/t50io/t50/internal/rawsock"
	appversion "github.com/t50io/t50/internal/version"
)

// trappedSignals mirrors the original's sigaction table: every
// "interrupt" signal except SIGKILL, SIGSTOP and SIGSEGV, which are
// uncatchable per signal(7) (§6).
var trappedSignals = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGPIPE,
	syscall.SIGINT,
	syscall.SIGQUIT,
	syscall.SIGABRT,
	syscall.SIGTRAP,
	syscall.SIGTERM,
	syscall.SIGTSTP,
	syscall.SIGALRM,
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if os.Getuid() != 0 {
		logger.Error("t50 requires raw-socket privileges", slog.String("hint", "run as root"))
		return 1
	}

	var runErr error
	cmd := cli.BuildCommand(func(cmd *cobra.Command, parsed cli.Parsed) error {
		runErr = execute(cmd.Context(), parsed, logger)
		return runErr
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if runErr == nil {
			// Flag parsing/validation failed before execute ran.
			logger.Error("configuration error", slog.String("error", err.Error()))
			return 1
		}
		logger.Error("injection failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func execute(ctx context.Context, parsed cli.Parsed, logger *slog.Logger) error {
	sock, err := rawsock.Open()
	if err != nil {
		return fmt.Errorf("open raw socket: %w", err)
	}

	var coll *metrics.Collector
	var metricsSrv *http.Server
	if parsed.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		coll = metrics.NewCollector(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: parsed.MetricsAddr, Handler: mux}
		go func() {
			logger.Info("metrics server listening", slog.String("addr", parsed.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	runCtx, cancel := context.WithCancel(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, trappedSignals...)
	signal.Ignore(syscall.SIGCHLD)

	exitCode := make(chan int, 1)
	go func() {
		select {
		case sig := <-sigCh:
			cancel()
			sock.Close()
			signum, ok := sig.(syscall.Signal)
			if !ok {
				exitCode <- 1
				return
			}
			exitCode <- 128 + int(signum)
		case <-runCtx.Done():
		}
	}()

	fmt.Println(banner.Line("t50", appversion.Version, "launched", time.Now()))

	seed := uint64(time.Now().UnixNano())
	result, runErr := inject.Run(runCtx, &parsed.Config, parsed.Options, sock, seed, coll)

	signal.Stop(sigCh)
	cancel()

	select {
	case code := <-exitCode:
		os.Exit(code)
	default:
	}

	closeErr := sock.Close()
	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}

	logger.Info("injection finished",
		slog.Int64("sent", int64(result.Sent)),
		slog.Bool("turbo", result.Turbo),
	)
	fmt.Println(banner.Line("t50", appversion.Version, "finished", time.Now()))

	if runErr != nil {
		return runErr
	}
	return closeErr
}
