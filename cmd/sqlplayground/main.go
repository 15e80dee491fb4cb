package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/telemetry"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "sqlplayground",
		Short: "SQL Playground API backed by GitHub",
		Long: `A web backend for a SQL playground. Users sign in with a GitHub access token,
run queries against a sandbox, and save them to their own GitHub repositories.

Usage:
  sqlplayground serve                 Start the HTTP API (config auto-detected)
  sqlplayground serve -c config.yaml  Start the HTTP API with an explicit config file`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	cmd.AddCommand(buildServeCommand())
	return cmd
}

func buildServeCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}

			settings, err := loadSettings(command)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdownTracing, err := telemetry.Setup(ctx, settings.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				if shutdownErr := shutdownTracing(context.Background()); shutdownErr != nil {
					logger.Warnf("Failed to flush traces: %v", shutdownErr)
				}
			}()

			appContext, err := injectAppContext(settings)
			if err != nil {
				return err
			}
			return appContext.Serve(ctx)
		},
	}
}

// loadSettings reads the config file given by --config, or the first one found
// in the default locations. Without any file, environment variables alone apply.
func loadSettings(command *cobra.Command) (*entities.Settings, error) {
	configPath, _ := command.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using environment only: %v", err)
		} else {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file %s", configPath)
	}
	return entities.NewSettings(configPath)
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := buildRootCommand().Execute(); err != nil {
		logger.Fatalf("Error executing 'sqlplayground': %s", err)
	}
}
