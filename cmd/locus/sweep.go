package main

import (
	"fmt"

	"github.com/aevon-lab/project-locus/internal/aggregation"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/task"
	"github.com/spf13/cobra"
)

func newSweepCmd(load configLoader) *cobra.Command {
	var (
		kindName        string
		start, end, ago int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one stats sweep and print the number of rows added",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := stat.ParseKind(kindName)
			if err != nil {
				return err
			}

			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			windows := aggregation.WindowDefaults{
				LookbackDays: cfg.Stats.LookbackDays,
				UniqueAgo:    cfg.Stats.UniqueAgo,
			}
			w, err := windows.Resolve(kind,
				flagValue(cmd, "start", start),
				flagValue(cmd, "end", end),
				flagValue(cmd, "ago", ago))
			if err != nil {
				return err
			}

			st, err := openStores(cfg.Database)
			if err != nil {
				return err
			}
			defer st.close()

			runner := task.NewRunner(1, cfg.Tasks.Policy())
			agg := aggregation.NewAggregator(st.measures, st.stats, aggregation.Options{
				FillEmptyDays: cfg.Stats.FillEmptyDays,
			})

			added, err := aggregation.DispatchSweep(cmd.Context(), runner, agg, kind, w).Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d rows added\n", kind, w, added)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Stat kind (location, cell, wifi, unique_cell, unique_wifi)")
	cmd.Flags().IntVar(&start, "start", 0, "Exclusive upper day offset")
	cmd.Flags().IntVar(&end, "end", 0, "Inclusive lower day offset")
	cmd.Flags().IntVar(&ago, "ago", 0, "Sweep the single day this many days ago")
	_ = cmd.MarkFlagRequired("kind")
	cmd.MarkFlagsMutuallyExclusive("ago", "start")
	cmd.MarkFlagsMutuallyExclusive("ago", "end")

	return cmd
}

func flagValue(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
