package cli

import (
	"fmt"

	"bregman-segmenter/internal/algorithms"
	"bregman-segmenter/internal/debug/timing"
	"bregman-segmenter/internal/pipeline"

	"github.com/spf13/cobra"
)

func (a *app) edgesCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "edges <image>",
		Short: "Write the edge-weight map used to weight the TV term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if out == "" {
				out = pipeline.OutputPath(input, "", "edges")
			}

			coordinator := pipeline.NewCoordinator(a.log, timing.NewTracker(a.log), algorithms.NewManager(a.log), a.cfg.PipelineSettings())
			if err := coordinator.EdgeMap(cmd.Context(), input, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&out, "out", "o", "", "output file (default: <image>_edges next to the input)")
	flags.String("backend", "", "edge backend (native or opencv)")
	flags.Float64("sigma", 0, "Gaussian pre-smoothing")
	flags.Float64("beta", 0, "edge detector sensitivity")
	flags.Bool("uniform", false, "use uniform edge weights")
	a.bindEdgeFlags(cmd)
	return cmd
}
