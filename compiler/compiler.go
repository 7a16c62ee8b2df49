// Package compiler runs the boulder pipeline: it loads the annotated
// packages, resolves their records and writes the generated files.
package compiler

import (
	"context"
	"io"

	"github.com/syssam/boulder/compiler/gen"
	"github.com/syssam/boulder/compiler/load"
)

// LoadGraph loads the packages matching patterns and resolves their
// records. The current directory is loaded when no pattern is given.
func LoadGraph(ctx context.Context, cfg *gen.Config, patterns ...string) (*gen.Graph, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "config must not be nil")
	}
	pkgs, err := (&load.Config{
		Patterns:   patterns,
		BuildFlags: cfg.BuildFlags,
		Logger:     cfg.Logger,
	}).Load(ctx)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, pkgs...)
}

// Generate writes the builders and generators of the records found in the
// packages matching patterns.
func Generate(ctx context.Context, cfg *gen.Config, patterns ...string) error {
	g, err := LoadGraph(ctx, cfg, patterns...)
	if err != nil {
		return err
	}
	if len(g.Packages) == 0 && cfg.Logger != nil {
		cfg.Logger.Warn("no annotated records found", "patterns", patterns)
	}
	return gen.NewJenniferGenerator(g).Generate(ctx)
}

// Describe writes a JSON summary of the records found in the packages
// matching patterns, with the strategy chosen for every field.
func Describe(ctx context.Context, cfg *gen.Config, w io.Writer, patterns ...string) error {
	g, err := LoadGraph(ctx, cfg, patterns...)
	if err != nil {
		return err
	}
	return g.Describe(w)
}
