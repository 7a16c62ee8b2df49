package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/boulder/compiler"
)

// GenerateCmd returns the generate subcommand.
func GenerateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [patterns]",
		Short: "Generate builders and generators for the annotated records of the given packages",
		Example: `  boulder generate .
  boulder generate ./internal/... --feature snapshot`,
		RunE: func(cmd *cobra.Command, patterns []string) error {
			cfg, err := o.genConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return compiler.Generate(cmd.Context(), cfg, patterns...)
		},
	}
}

// DescribeCmd returns the describe subcommand.
func DescribeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [patterns]",
		Short: "Print the annotated records and the strategy of every field as JSON",
		RunE: func(cmd *cobra.Command, patterns []string) error {
			cfg, err := o.genConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return compiler.Describe(cmd.Context(), cfg, cmd.OutOrStdout(), patterns...)
		},
	}
}
