package cli

import (
	"fmt"
	"time"

	"routekeeper/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

var packagesStatus string

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List packages in route order",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := queries.NewGetPackagesQuery(packagesStatus)
		if err != nil {
			return err
		}

		root, err := openRoot(cmd.Context())
		if err != nil {
			return err
		}
		defer root.Close()

		packages, err := root.CreateGetPackagesQueryHandler().Handle(cmd.Context(), query)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, packages)
		}

		printSection(out, "Packages")
		if len(packages) == 0 {
			printEmptyState(out, "No packages.")
			return nil
		}
		for _, p := range packages {
			_, _ = infoColor.Fprintf(out, "%-10s %-42s %s", p.Status, p.ID, p.Address)
			_, _ = dimColor.Fprintf(out, "  %s  %s\n", p.Recipient, p.Timestamp.Format(time.DateTime))
		}
		_, _ = fmt.Fprintln(out)
		return nil
	},
}

func init() {
	packagesCmd.Flags().StringVar(&packagesStatus, "status", "", "Only list packages in this status (pending, delivered)")
}
