package cli

import (
	"fmt"

	"routekeeper/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every package from the route",
	Long: `Remove every package, pending and delivered, from the route.

This cannot be undone. Pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		clearCmd, err := commands.NewClearRouteCommand(resetConfirmed)
		if err != nil {
			printWarning(out, "Refusing to reset the route without --yes.")
			return err
		}

		root, err := openRoot(cmd.Context())
		if err != nil {
			return err
		}
		defer root.Close()

		before := len(root.Snapshot().Packages)
		if _, err := root.CreateClearRouteCommandHandler().Handle(cmd.Context(), clearCmd); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(out, map[string]int{"removed": before})
		}
		printSuccess(out, fmt.Sprintf("Removed %s", printCount(before, "package", "packages")))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm the reset")
}
