package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded segmentation runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.List(limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tINPUT\tALGORITHM\tSIZE\tMU\tITER\tC1\tC2\tFG\tCONVERGED\tTIME")
			for _, r := range runs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%dx%d\t%g\t%d\t%.3f\t%.3f\t%.3f\t%t\t%s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.InputPath, r.Algorithm,
					r.Width, r.Height, r.Mu, r.Iterations, r.C1, r.C2,
					r.ForegroundFraction, r.Converged, r.Duration())
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 for all)")
	return cmd
}
