package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/c360studio/pslspec/pipeline"
	"github.com/spf13/cobra"
)

func metricsCmd(configPath *string) *cobra.Command {
	var satisfied string

	cmd := &cobra.Command{
		Use:   "metrics <file>",
		Short: "Compute acceptance metrics for a PSL document",
		Long: `Metrics computes PSL-Coverage, HRR, CSR, and the 3C score for one
document. CSR needs ground truth about whether each constraint was actually
met; supply it with --satisfied (e.g. --satisfied yes,no,yes, one value per
header constraint). Without it CSR is reported as not computed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := []pipeline.Option{pipeline.WithRegistry(buildRegistry(cfg))}
			if satisfied != "" {
				vector, err := parseSatisfied(satisfied)
				if err != nil {
					return err
				}
				opts = append(opts, pipeline.WithSatisfaction(vector))
			}

			result, err := pipeline.Run(string(content), opts...)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			score, level := pipeline.Quality(result.Metrics)

			if cfg.Output.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"metrics":       result.Metrics,
					"quality_score": score,
					"quality_level": level,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "psl-coverage: %s\n", result.Metrics.Coverage)
			fmt.Fprintf(out, "hrr:          %s\n", result.Metrics.HRR)
			fmt.Fprintf(out, "csr:          %s\n", result.Metrics.CSR)
			fmt.Fprintf(out, "3c-score:     %s\n", result.Metrics.ThreeCScore)
			fmt.Fprintf(out, "quality:      %.2f (%s)\n", score, level)
			return nil
		},
	}

	cmd.Flags().StringVar(&satisfied, "satisfied", "", "Per-constraint satisfaction vector (comma-separated yes/no)")
	return cmd
}

// parseSatisfied parses the --satisfied flag value into a boolean vector.
func parseSatisfied(value string) ([]bool, error) {
	parts := strings.Split(value, ",")
	vector := make([]bool, 0, len(parts))
	for _, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "yes", "true", "1":
			vector = append(vector, true)
		case "no", "false", "0":
			vector = append(vector, false)
		default:
			return nil, fmt.Errorf("bad --satisfied value %q: want yes/no", p)
		}
	}
	return vector, nil
}
