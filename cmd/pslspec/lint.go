package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/pslspec/pipeline"
	"github.com/c360studio/pslspec/psl"
	"github.com/c360studio/pslspec/validator"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// fileReport is the per-file outcome rendered by lint.
type fileReport struct {
	Path       string        `json:"path"`
	ParseError string        `json:"parse_error,omitempty"`
	Issues     []psl.Issue   `json:"issues,omitempty"`
	Quality    *qualityBrief `json:"quality,omitempty"`
}

type qualityBrief struct {
	Score float64               `json:"score"`
	Level pipeline.QualityLevel `json:"level"`
}

func lintCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <pattern>...",
		Short: "Lint PSL documents",
		Long: `Lint parses each matched file, runs the L-Rules, and prints every
structural and semantic issue found. Patterns support doublestar globs
(e.g. "contracts/**/*.psl"). Exit status is nonzero when any file fails to
parse or carries error-severity issues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			files, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match the given patterns")
			}

			runID := uuid.New().String()
			slog.Debug("Starting lint run", slog.String("run_id", runID), slog.Int("files", len(files)))

			reg := buildRegistry(cfg)
			reports := make([]fileReport, 0, len(files))
			failed := false

			for _, path := range files {
				report := lintFile(path, reg)
				if report.ParseError != "" || psl.HasErrors(report.Issues) {
					failed = true
				}
				reports = append(reports, report)
			}

			if cfg.Output.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				printReports(cmd, reports)
			}

			if failed {
				return fmt.Errorf("lint found errors (run %s)", runID)
			}
			return nil
		},
	}
}

// lintFile runs the pipeline over one file. Fatal parse errors become part of
// the report rather than aborting the whole run: one invocation diagnoses
// every matched file.
func lintFile(path string, reg *validator.Registry) fileReport {
	report := fileReport{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		report.ParseError = err.Error()
		return report
	}

	result, err := pipeline.Run(string(content), pipeline.WithRegistry(reg))
	if err != nil {
		report.ParseError = err.Error()
		return report
	}

	report.Issues = result.Issues
	score, level := pipeline.Quality(result.Metrics)
	report.Quality = &qualityBrief{Score: score, Level: level}
	return report
}

// expandPatterns resolves glob patterns to a sorted, de-duplicated file list.
func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		// Plain paths pass through so missing files are reported, not skipped.
		if _, err := os.Stat(pattern); err == nil || !isPattern(pattern) {
			if !seen[pattern] {
				seen[pattern] = true
				files = append(files, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func isPattern(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func printReports(cmd *cobra.Command, reports []fileReport) {
	out := cmd.OutOrStdout()
	for _, r := range reports {
		if r.ParseError != "" {
			fmt.Fprintf(out, "%s: parse failed: %s\n", r.Path, r.ParseError)
			continue
		}
		if len(r.Issues) == 0 {
			fmt.Fprintf(out, "%s: ok (%s, %.2f)\n", r.Path, r.Quality.Level, r.Quality.Score)
			continue
		}
		fmt.Fprintf(out, "%s: %d issue(s)\n", r.Path, len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(out, "  %s\n", issue)
		}
	}
}
