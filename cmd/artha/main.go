package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/arthadash/artha/internal/allocation"
	"github.com/arthadash/artha/internal/api"
	"github.com/arthadash/artha/internal/asset"
	"github.com/arthadash/artha/internal/cash"
	"github.com/arthadash/artha/internal/config"
	"github.com/arthadash/artha/internal/database"
	"github.com/arthadash/artha/internal/export"
	"github.com/arthadash/artha/internal/fx"
	"github.com/arthadash/artha/internal/portfolio"
	"github.com/arthadash/artha/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// services bundles everything wired on top of one database pool.
type services struct {
	pool        *pgxpool.Pool
	assetRepo   *asset.PgRepository
	rates       *fx.Service
	assets      *asset.Service
	cash        *cash.Service
	summary     *portfolio.Service
	allocations *allocation.Service
}

func (s *services) close() {
	s.pool.Close()
}

// setup connects, migrates and wires the service graph.
func setup(ctx context.Context, cfg config.Config) (*services, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	loc := cfg.Timezone()

	var fetcher fx.RateFetcher
	if cfg.RateAPIKey != "" {
		fetcher = fx.NewClient(cfg.RateAPIURL, cfg.RateAPIKey)
	} else {
		slog.Warn("RATE_API_KEY not set, using stored or default exchange rate")
	}
	rates := fx.NewService(fetcher, fx.NewPgRateRepository(pool), cfg.DefaultUSDIDRRate, loc)

	assetRepo := asset.NewPgRepository(pool)
	cashRepo := cash.NewPgRepository(pool)

	summary := portfolio.NewService(assetRepo, cashRepo, rates)
	allocations := allocation.NewService(assetRepo, cashRepo, cashRepo, rates)
	assets := asset.NewService(assetRepo, summary, loc)
	cashSvc := cash.NewService(cashRepo, loc)

	return &services{
		pool:        pool,
		assetRepo:   assetRepo,
		rates:       rates,
		assets:      assets,
		cash:        cashSvc,
		summary:     summary,
		allocations: allocations,
	}, nil
}

// exporter builds the report pipeline from config, or nil when no
// destination is configured.
func exporter(ctx context.Context, cfg config.Config, svcs *services) (*export.Service, error) {
	var writers []export.ReportWriter
	loc := cfg.Timezone()

	if cfg.ExportXLSXPath != "" {
		writers = append(writers, export.NewXLSXWriter(cfg.ExportXLSXPath, loc))
	}
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON != "" {
		sw, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON, loc)
		if err != nil {
			return nil, fmt.Errorf("creating sheets writer: %w", err)
		}
		writers = append(writers, sw)
	}

	if len(writers) == 0 {
		return nil, nil
	}
	return export.NewService(svcs.summary, svcs.allocations, svcs.assets, loc, writers...), nil
}

func serve(ctx context.Context, cfg config.Config) error {
	svcs, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.close()

	rateWorker := worker.NewRateWorker(svcs.rates, cfg.RateWorkerInterval)
	go rateWorker.Run(ctx)

	exportSvc, err := exporter(ctx, cfg, svcs)
	if err != nil {
		return err
	}
	var hook worker.AfterSnapshotHook
	if exportSvc != nil {
		hook = exportSvc
	}

	snapshotWorker := worker.NewSnapshotWorker(svcs.summary, svcs.assetRepo, cfg.SnapshotWorkerInterval, cfg.Timezone(), hook)
	go snapshotWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, mutating endpoints are unprotected")
	}

	handler := api.NewHandler(svcs.assets, svcs.cash, svcs.summary, svcs.allocations, svcs.rates, cfg.Timezone())
	srv := api.NewServer(cfg.HTTPPort, handler, cfg.AdminAPIKey)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func snapshotOnce(ctx context.Context, cfg config.Config) error {
	svcs, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.close()

	svcs.rates.Refresh(ctx)

	summary, err := svcs.summary.Summary(ctx)
	if err != nil {
		return fmt.Errorf("computing summary: %w", err)
	}

	if err := svcs.assetRepo.AddSnapshot(ctx, summary.TotalValue, time.Now().In(cfg.Timezone())); err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}

	log.Printf("Snapshot recorded: total value %s IDR", summary.TotalValue)
	return nil
}

func exportOnce(ctx context.Context, cfg config.Config) error {
	svcs, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.close()

	svcs.rates.Refresh(ctx)

	exportSvc, err := exporter(ctx, cfg, svcs)
	if err != nil {
		return err
	}
	if exportSvc == nil {
		return fmt.Errorf("no export destination configured, set EXPORT_XLSX_PATH or SHEETS_SPREADSHEET_ID")
	}

	if err := exportSvc.Export(ctx); err != nil {
		return err
	}
	log.Println("Export complete")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	app := &cli.App{
		Name:  "artha",
		Usage: "personal portfolio dashboard backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API with background workers",
				Action: func(c *cli.Context) error {
					return serve(c.Context, cfg)
				},
			},
			{
				Name:  "snapshot",
				Usage: "record one net-worth snapshot and exit",
				Action: func(c *cli.Context) error {
					return snapshotOnce(c.Context, cfg)
				},
			},
			{
				Name:  "export",
				Usage: "write the portfolio report to the configured destinations and exit",
				Action: func(c *cli.Context) error {
					return exportOnce(c.Context, cfg)
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
