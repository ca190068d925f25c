package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/gas-sensor-assistant/internal/assistant"
	"github.com/i474232898/gas-sensor-assistant/internal/store"
)

func newAskCmd() *cobra.Command {
	var fixture string

	cmd := &cobra.Command{
		Use:   "ask <intent>",
		Short: "Answer one intent from the terminal",
		Long: `Read the sensor store once and print the sentence the webhook would
return for the given intent display name.`,
		Example: `  # Against the configured Firebase database
  gas-sensor-assistant ask check_danger

  # Against a local JSON export
  gas-sensor-assistant ask temp --fixture sensor_data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(os.Stderr)
			if err != nil {
				return err
			}

			opts := cfg.Store
			if fixture != "" {
				opts.Backend = store.BackendMemory
				opts.FixtureFile = fixture
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			service := assistant.NewService(store.Open(ctx, opts), cfg.StoreTimeout)
			text, err := service.Fulfill(ctx, assistant.ParseIntent(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&fixture, "fixture", "", "read records from a JSON export instead of the configured store")
	return cmd
}
