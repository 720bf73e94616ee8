// Package main provides the pslspec binary entry point.
// Pslspec parses, lints, and scores PSL contract documents, wrapping the
// core pipeline contracts (document, issues, metrics, canonical AST) in a
// file-oriented CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/c360studio/pslspec/config"
	"github.com/c360studio/pslspec/validator"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "pslspec"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "pslspec",
		Short: "PSL contract linter",
		Long: `Pslspec processes PSL contract documents: declarative task
descriptions that separate verified facts from hypotheses and pair every
hypothesis with a rollback.

It provides:
- Grammar parsing into the canonical document model
- L-Rules structural and semantic validation
- Acceptance metrics (coverage, HRR, CSR, 3C score)
- Canonical AST serialization for downstream consumers`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(lintCmd(&configPath))
	cmd.AddCommand(parseCmd())
	cmd.AddCommand(metricsCmd(&configPath))
	cmd.AddCommand(watchCmd(&configPath))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig resolves the effective config: an explicit file when given,
// otherwise the layered loader.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(slog.Default()).Load()
}

// buildRegistry constructs the rule registry from lint configuration.
func buildRegistry(cfg *config.Config) *validator.Registry {
	reg := validator.NewRegistry()
	if len(cfg.Lint.Units) > 0 {
		reg.Disable("L-04")
		reg.Register(validator.NewUnitsRule(cfg.Lint.Units))
	}
	if cfg.Lint.MaxEntryLength > 0 && cfg.Lint.MaxEntryLength != validator.DefaultMaxEntryLength {
		reg.Disable("L-10")
		reg.Register(validator.NewClarityRule(cfg.Lint.MaxEntryLength))
	}
	if len(cfg.Lint.DisabledRules) > 0 {
		reg.Disable(cfg.Lint.DisabledRules...)
	}
	return reg
}
