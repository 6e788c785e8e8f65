package cli

import (
	"fmt"
	"text/tabwriter"

	"bregman-segmenter/internal/algorithms"
	"bregman-segmenter/internal/debug/timing"
	"bregman-segmenter/internal/pipeline"
	"bregman-segmenter/internal/services"
	"bregman-segmenter/internal/shutdown"
	"bregman-segmenter/internal/store"

	"github.com/spf13/cobra"
)

func (a *app) segmentCommand() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "segment <image>...",
		Short: "Segment images and write their foreground fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm := shutdown.NewManager(cmd.Context(), a.log)
			sm.Listen()
			defer sm.Shutdown()

			var recorder services.Recorder
			if !noHistory {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				sm.Register("history", db)
				recorder = db
			}

			tracker := timing.NewTracker(a.log)
			coordinator := pipeline.NewCoordinator(a.log, tracker, algorithms.NewManager(a.log), a.cfg.PipelineSettings())
			service := services.NewProcessingService(coordinator, recorder, a.log, a.cfg.Jobs, a.cfg.Output.Dir, a.cfg.Output.Suffix)

			results := service.ProcessFiles(sm.Context(), args)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INPUT\tOUTPUT\tITER\tC1\tC2\tFG\tCONVERGED\tTIME")
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\t\n", r.Path, r.Err)
					continue
				}
				seg := r.Result.Segmentation
				fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\t%.3f\t%t\t%s\n",
					r.Path, r.Result.OutputPath, seg.Iterations, seg.C1, seg.C2,
					r.Result.Metrics.ForegroundFraction, seg.Converged, r.Result.ProcessTime.Round(1e6))
			}
			w.Flush()

			for _, op := range tracker.Operations() {
				a.log.Debug("Timing", "average stage time", map[string]interface{}{
					"operation": op,
					"average":   tracker.GetAverageTime(op).String(),
				})
			}

			if failed := services.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d images failed", len(failed), len(results))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("algorithm", "", "algorithm to run (see the algorithms command)")
	flags.Float64("mu", 0, "fidelity weight")
	flags.Float64("lambda", 0, "splitting penalty")
	flags.Float64("tolerance", 0, "RMS change that ends the outer loop")
	flags.Int("max-iterations", 0, "outer iteration cap")
	flags.Int("workers", 0, "goroutines for the shrinkage and Bregman passes")
	flags.String("empty-region", "", "mean of an empty region: zero or collapse")
	flags.String("backend", "", "edge backend (native or opencv)")
	flags.Float64("sigma", 0, "Gaussian pre-smoothing of the edge detector")
	flags.Float64("beta", 0, "edge detector sensitivity")
	flags.Bool("uniform", false, "use uniform edge weights")
	flags.Bool("binary", false, "write a 0/255 mask instead of the scaled field")
	flags.StringP("out", "o", "", "output directory (default: next to each input)")
	flags.String("suffix", "", "suffix appended to output file names")
	flags.IntP("jobs", "j", 0, "images processed concurrently")
	flags.BoolVar(&noHistory, "no-history", false, "do not record runs in the history database")

	a.bind("algorithm", flags.Lookup("algorithm"))
	a.bind("solver.mu", flags.Lookup("mu"))
	a.bind("solver.lambda", flags.Lookup("lambda"))
	a.bind("solver.tolerance", flags.Lookup("tolerance"))
	a.bind("solver.max_iterations", flags.Lookup("max-iterations"))
	a.bind("solver.workers", flags.Lookup("workers"))
	a.bind("solver.empty_region", flags.Lookup("empty-region"))
	a.bindEdgeFlags(cmd)
	a.bind("output.binary", flags.Lookup("binary"))
	a.bind("output.dir", flags.Lookup("out"))
	a.bind("output.suffix", flags.Lookup("suffix"))
	a.bind("jobs", flags.Lookup("jobs"))
	return cmd
}

func (a *app) bindEdgeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	a.bind("edges.backend", flags.Lookup("backend"))
	a.bind("edges.sigma", flags.Lookup("sigma"))
	a.bind("edges.beta", flags.Lookup("beta"))
	a.bind("edges.uniform", flags.Lookup("uniform"))
}

func (a *app) openStore() (*store.Store, error) {
	db, err := store.Open(a.cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return db, nil
}
