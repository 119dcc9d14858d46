package main

import (
	"log/slog"
	"os"

	corecfg "github.com/aevon-lab/project-locus/internal/core/config"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           "locus",
		Short:         "Geolocation measurement ingestion and daily stats",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "locus.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	load := func() (*corecfg.Config, error) {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			slog.Warn("Config file not found, using defaults and env", "path", configPath)
			return corecfg.Load("")
		}
		return corecfg.Load(configPath)
	}

	rootCmd.AddCommand(
		newServeCmd(load),
		newSweepCmd(load),
		newMigrateCmd(load),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
