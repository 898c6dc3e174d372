/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ssargent/deckcode/pkg/config"
	"github.com/ssargent/deckcode/pkg/di"
	"github.com/ssargent/deckcode/pkg/logging"
	"github.com/ssargent/deckcode/pkg/metrics"
	"github.com/ssargent/deckcode/pkg/service"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

type runtimeKey struct{}

// runtime is what PersistentPreRunE hands to the subcommands.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	svc       *service.Service
	container *di.Container
}

func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("runtime not found in context")
	}
	rt, ok := ctx.Value(runtimeKey{}).(*runtime)
	if !ok {
		return nil, errors.New("runtime not found in context")
	}
	return rt, nil
}

// writeMetrics exports the registry to the configured textfile.
func (rt *runtime) writeMetrics() error {
	if rt.cfg.Metrics.Textfile == "" {
		return nil
	}

	if err := metrics.WriteTextfile(rt.cfg.Metrics.Textfile, rt.container.GetRegistry()); err != nil {
		return err
	}
	rt.logger.Debug("metrics written", "path", rt.cfg.Metrics.Textfile)
	return nil
}

// newRootCmd builds the command tree over c
func newRootCmd(c *di.Container) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deckcode",
		Short: "Deck code encoder and decoder",
		Long: `deckcode converts decks of cards into short, shareable deck codes
and back.

A deck is a list of "count:code" tokens such as 3:01DE002. Deck files may be
plain text with one token per line, YAML or JSONC.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c == nil {
				return errors.New("dependency container not initialized")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			rt := &runtime{
				cfg:       cfg,
				logger:    logger,
				svc:       c.NewService(logger),
				container: c,
			}
			// Store in command context
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.config/deckcode/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file after the command")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newVerifyCmd(),
		newInspectCmd(),
		newCheckCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the config file and applies flag overrides. Flags
// win over the file, the file wins over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	applyFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag the user set onto cfg
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) {
	overrides := map[string]*string{
		"log-level":    &cfg.Logging.Level,
		"log-format":   &cfg.Logging.Format,
		"output":       &cfg.Output.Format,
		"metrics-file": &cfg.Metrics.Textfile,
	}
	for name, field := range overrides {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}

	// Only encode has --chunk.
	if flags.Changed("chunk") {
		cfg.Output.ChunkSize, _ = flags.GetInt("chunk")
	}
}

// execute runs root and then exports metrics, whether or not the command
// failed. Failed runs are when the error counters matter most.
func execute(root *cobra.Command) error {
	executed, err := root.ExecuteC()
	if executed == nil {
		return err
	}

	rt, rtErr := runtimeFrom(executed)
	if rtErr != nil {
		// PersistentPreRunE did not get far enough to build a runtime.
		return err
	}

	if metricsErr := rt.writeMetrics(); metricsErr != nil {
		if err != nil {
			rt.logger.Error("failed to write metrics", "path", rt.cfg.Metrics.Textfile, "error", metricsErr)
			return err
		}
		executed.PrintErrln("Error:", metricsErr.Error())
		return metricsErr
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(newRootCmd(container)); err != nil {
		os.Exit(1)
	}
}
