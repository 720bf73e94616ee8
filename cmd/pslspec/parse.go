package main

import (
	"fmt"
	"os"

	"github.com/c360studio/pslspec/ast"
	"github.com/c360studio/pslspec/psl/parser"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a PSL document and print its canonical AST",
		Long: `Parse reads one PSL file and prints the canonical JSON structure
used as the contract with downstream consumers. Structural issues found while
parsing go to stderr; they do not suppress the AST.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, issues, err := parser.Parse(string(content))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			for _, issue := range issues {
				fmt.Fprintln(cmd.ErrOrStderr(), issue)
			}

			data, err := ast.MarshalIndent(doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
