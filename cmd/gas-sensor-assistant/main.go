/*
Package main is the entry point for the gas-sensor-assistant CLI.

gas-sensor-assistant answers Dialogflow webhook calls about the latest
CO, LPG, temperature and humidity readings stored in Firebase.

Usage:

	gas-sensor-assistant [command]

Available Commands:

	serve       Run the webhook server (default)
	ask         Answer one intent from the terminal
	version     Show version information
*/
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/gas-sensor-assistant/internal/api/http"
	"github.com/i474232898/gas-sensor-assistant/internal/config"
	"github.com/i474232898/gas-sensor-assistant/internal/logging"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:   "gas-sensor-assistant",
		Short: "Dialogflow webhook for gas and climate sensor readings",
		Long: `gas-sensor-assistant serves the fulfillment webhook of a voice assistant
watching a gas detector. For each intent it reads the sensor collection,
picks the freshest reading carrying the requested measurement and answers
with a short sentence.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:  %s\n", version)
			fmt.Fprintf(out, "Commit:   %s\n", commit)
			fmt.Fprintf(out, "Built:    %s\n", date)
			return nil
		},
	}
}

// loadConfig loads configuration and installs the default logger.
func loadConfig(logOut io.Writer) (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(logging.New(logOut, cfg.AppEnv, cfg.LogLevel, httpapi.ServiceName, version))
	return cfg, nil
}
