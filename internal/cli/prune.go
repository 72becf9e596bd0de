package cli

import (
	"fmt"

	"routekeeper/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop deliveries older than the retention window",
	Long: `Drop delivered packages whose delivery is 12 hours old or more.

The service applies the same rule on startup and on its retention schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := openRoot(cmd.Context())
		if err != nil {
			return err
		}
		defer root.Close()

		_, pruned, err := root.CreatePruneRouteCommandHandler().Handle(cmd.Context(), commands.NewPruneRouteCommand())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]int{"pruned": pruned})
		}
		if pruned == 0 {
			printEmptyState(out, "No expired deliveries.")
			return nil
		}
		printSuccess(out, fmt.Sprintf("Dropped %s", printCount(pruned, "expired delivery", "expired deliveries")))
		return nil
	},
}
