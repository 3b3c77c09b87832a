package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/okian/rinkfeed/internal/app"
	"github.com/okian/rinkfeed/internal/config"
	"github.com/okian/rinkfeed/internal/domain/gameid"
	"github.com/okian/rinkfeed/pkg/logger"
	"github.com/okian/rinkfeed/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics endpoint server timeouts.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

const usage = `usage: rinkfeed <command>

commands:
  scrape     walk the configured seasons and persist raw game files
  extract    project raw game files into the per-team corpus
  standings  fold the corpus into season point totals (CSV on stdout)
  restdays   derive rest-interval series per team (JSON on stdout)
`

func main() {
	if len(os.Args) < 2 {
		os.Stderr.WriteString(usage)
		os.Exit(2)
	}
	command := os.Args[1]

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	kind, err := gameid.ParseKind(cfg.GameKind)
	if err != nil {
		os.Stderr.WriteString("invalid game_kind: " + err.Error() + "\n")
		os.Exit(1)
	}

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithSeasons(cfg.StartSeason, cfg.EndSeason),
		app.WithKind(kind),
		app.WithStartGame(cfg.StartGame),
		app.WithWait(cfg.Wait()),
		app.WithSkipExisting(cfg.SkipExisting),
		app.WithBaseURL(cfg.BaseURL),
		app.WithFetchTimeout(cfg.FetchTimeout()),
		app.WithRawDir(cfg.RawDir),
		app.WithCorpusPath(cfg.CorpusPath),
		app.WithTeams(cfg.Teams),
		app.WithWindowDays(cfg.WindowDays),
	)

	// Long scrape runs can expose /metrics for Prometheus scraping.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, loggerInstance, cfg.MetricsAddr)
	}

	if err := run(ctx, svc, command); err != nil {
		loggerInstance.Error(ctx, "command failed",
			logger.String("command", command),
			logger.Error(err),
		)
		os.Exit(1)
	}
}

// run dispatches one command against the service.
func run(ctx context.Context, svc *app.Service, command string) error {
	switch command {
	case "scrape":
		report, err := svc.Scrape(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "fetched=%d saved=%d skipped=%d not_found=%d seasons=%d\n",
			report.Fetched, report.Saved, report.Skipped, report.NotFound, report.SeasonsFinished)
		return nil
	case "extract":
		report, err := svc.Extract(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "files=%d extracted=%d malformed=%d entries=%d\n",
			report.Files, report.Extracted, report.Malformed, report.Entries)
		return nil
	case "standings":
		return svc.Standings(ctx, os.Stdout)
	case "restdays":
		return svc.WriteRestDays(ctx, os.Stdout)
	default:
		os.Stderr.WriteString(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// serveMetrics exposes the Prometheus registry until the context ends.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "metrics server failed", logger.Error(err))
	}
}
