package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/sprig"
	"github.com/aretw0/sprig/internal/logging"
	"github.com/aretw0/sprig/pkg/greeter"
	"github.com/aretw0/sprig/pkg/observability"
)

// greetCmd runs the reference greeter agent.
var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Run the example greeter pipeline",
	Long:  `Runs the greeter agent for each given name (defaults to the two demo names) and prints the greetings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		names, _ := cmd.Flags().GetStringArray("name")
		tracePath, _ := cmd.Flags().GetString("trace-config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		logger := logging.NewNop()
		if verbose {
			logger = logging.New(slog.LevelDebug)
		}

		// Tracing is optional: with no config file and no SPRIG_TRACING__*
		// variables set, Initialize is a no-op and output is unchanged.
		traceCfg, err := observability.LoadConfig(tracePath)
		if err != nil {
			return err
		}
		if err := observability.Initialize(ctx, traceCfg, logger); err != nil {
			return err
		}
		defer func() {
			if err := observability.Shutdown(ctx); err != nil {
				logger.Warn("tracing shutdown failed", "err", err)
			}
		}()

		agent, err := greeter.New(sprig.WithLogger(logger))
		if err != nil {
			return err
		}

		for _, name := range names {
			out, err := agent.Invoke(ctx, greeter.State{Name: name})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Greeting)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(greetCmd)

	greetCmd.Flags().StringArray("name", []string{"Alice", "Bob"}, "Name to greet (repeatable)")
	greetCmd.Flags().String("trace-config", "", "Path to a YAML tracing config")
}
