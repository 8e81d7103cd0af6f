package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sig-0/pbrates/ingest"
	"github.com/sig-0/pbrates/metrics"
	"github.com/sig-0/pbrates/provider/privatbank"
	"github.com/sig-0/pbrates/server"
	"github.com/sig-0/pbrates/server/config"
	"github.com/sig-0/pbrates/storage"
)

// newPipeline creates the day fetch orchestrator, reporting to the
// logger and the metrics, and archiving found days to the store
func newPipeline(
	cfg *config.Fetch,
	logger *slog.Logger,
	m *metrics.Metrics,
	store storage.Storage,
) (*ingest.Orchestrator, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	client := privatbank.NewClient(
		cfg.BaseURL,
		timeout,
		privatbank.WithLogger(logger),
		privatbank.WithReporter(privatbank.MultiReporter{
			privatbank.NewLogReporter(logger),
			m,
		}),
	)

	return ingest.New(
		client,
		ingest.WithLogger(logger),
		ingest.WithObserver(m),
		ingest.WithArchive(store),
	), nil
}

// serveStore serves the API on top of the given archive until ctx is done
// or a termination signal is received
func serveStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	store storage.Storage,
) error {
	m := metrics.New()

	orchestrator, err := newPipeline(cfg.Fetch, logger, m, store)
	if err != nil {
		return fmt.Errorf("unable to create fetch pipeline, %w", err)
	}

	s, err := server.New(
		orchestrator,
		store,
		server.WithLogger(logger),
		server.WithConfig(cfg),
		server.WithMetricsHandler(m.Handler()),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	return group.Wait()
}
