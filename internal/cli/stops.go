package cli

import (
	"fmt"

	"routekeeper/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "List pending stops in visiting order",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := openRoot(cmd.Context())
		if err != nil {
			return err
		}
		defer root.Close()

		stops, err := root.CreateGetStopsQueryHandler().Handle(cmd.Context(), queries.NewGetStopsQuery())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, stops)
		}

		printSection(out, "Stops")
		if len(stops) == 0 {
			printEmptyState(out, "No pending stops.")
			return nil
		}
		for _, stop := range stops {
			_, _ = infoColor.Fprintf(out, "%2d. %s", stop.Position, stop.Address)
			_, _ = dimColor.Fprintf(out, "  (%s)", printCount(len(stop.Packages), "package", "packages"))
			if stop.SameStreetAsPrevious {
				_, _ = dimColor.Fprint(out, "  same street")
			}
			_, _ = fmt.Fprintln(out)
		}
		return nil
	},
}
