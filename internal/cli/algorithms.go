package cli

import (
	"fmt"
	"sort"

	"bregman-segmenter/internal/algorithms"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func (a *app) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List registered algorithms and their default parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := algorithms.NewManager(a.log)
			out := cmd.OutOrStdout()

			for _, name := range manager.GetAvailableAlgorithms() {
				params := manager.GetParameters(name)
				keys := lo.Keys(params)
				sort.Strings(keys)

				marker := ""
				if name == a.cfg.Algorithm {
					marker = " (selected)"
				}
				fmt.Fprintf(out, "%s%s\n", name, marker)
				for _, k := range keys {
					fmt.Fprintf(out, "  %-18s %v\n", k, params[k])
				}
			}
			return nil
		},
	}
}
