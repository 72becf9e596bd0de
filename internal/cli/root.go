// Package cli implements routectl, a maintenance tool that works directly
// on the configured route storage.
package cli

import (
	"context"
	"io"
	"log/slog"

	"routekeeper/cmd"

	"github.com/spf13/cobra"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Inspect and maintain the delivery route",
	Long: `routectl reads the route from the storage configured through the
environment (or .env) and runs maintenance operations on it.

Stop the routekeeper service before changing the route with routectl.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")

	rootCmd.AddCommand(stopsCmd)
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(resetCmd)
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openRoot loads the route without background jobs. Service logs are
// discarded so they do not mix with command output.
func openRoot(ctx context.Context) (*cmd.CompositionRoot, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.AutoOptimize = false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cmd.NewCompositionRoot(ctx, cfg, logger)
}
