package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/project-locus/internal/aggregation"
	"github.com/aevon-lab/project-locus/internal/ingestion"
	"github.com/aevon-lab/project-locus/internal/projection"
	"github.com/aevon-lab/project-locus/internal/server"
	"github.com/aevon-lab/project-locus/internal/task"
	"github.com/spf13/cobra"
)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the stats scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			slog.Info("Loaded config", "config", cfg)

			st, err := openStores(cfg.Database)
			if err != nil {
				return err
			}
			defer st.close()

			kinds, err := cfg.Stats.EnabledKinds()
			if err != nil {
				return err
			}
			windows := aggregation.WindowDefaults{
				LookbackDays: cfg.Stats.LookbackDays,
				UniqueAgo:    cfg.Stats.UniqueAgo,
			}

			runner := task.NewRunner(cfg.Tasks.Workers, cfg.Tasks.Policy())
			agg := aggregation.NewAggregator(st.measures, st.stats, aggregation.Options{
				FillEmptyDays: cfg.Stats.FillEmptyDays,
			})

			ingestionSvc := ingestion.NewService(st.measures, runner, cfg.Server.MaxBodySizeMB)
			projectionSvc, err := projection.NewService(st.stats, agg, runner, windows, cfg.Cache.StatDays)
			if err != nil {
				return err
			}

			srv := server.New(cfg.Server.Addr(), st.db, cfg.Server.Mode)
			ingestionSvc.RegisterRoutes(srv.Engine)
			projectionSvc.RegisterRoutes(srv.Engine)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Stats.Enabled {
				scheduler := aggregation.NewScheduler(cfg.Stats.Interval(), agg, runner, kinds, windows)
				slog.Info("Stats scheduler initialized",
					"interval", cfg.Stats.Interval(),
					"kinds", len(kinds),
					"lookback_days", cfg.Stats.LookbackDays,
					"unique_ago", cfg.Stats.UniqueAgo)
				go func() {
					if err := scheduler.Start(ctx); err != nil {
						slog.Error("Scheduler stopped with error", "error", err)
					}
				}()
			} else {
				slog.Info("Stats scheduler disabled by config")
			}

			// HTTP server blocks until ctx is cancelled.
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}

			runner.Wait()
			slog.Info("Shutdown complete")
			return nil
		},
	}
}
