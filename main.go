package main

import (
	"fmt"
	"log/slog"
	"os"

	"societyhub-be/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "societyhub",
		Short:         "Residential society management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
			slog.SetDefault(cfg.NewLogger())
			return nil
		},
	}

	rootCmd.AddCommand(
		newServeCmd(func() *config.Config { return cfg }),
		newSeedCmd(func() *config.Config { return cfg }),
	)
	return rootCmd
}
