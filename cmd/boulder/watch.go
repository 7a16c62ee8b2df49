package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/boulder/compiler"
	"github.com/syssam/boulder/compiler/gen"
)

// debounce is the quiet period after a change before regenerating.
const debounce = 200 * time.Millisecond

// WatchCmd returns the watch subcommand.
func WatchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [patterns]",
		Short: "Generate, then regenerate whenever a Go file of the packages changes",
		RunE: func(cmd *cobra.Command, patterns []string) error {
			cfg, err := o.genConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return watch(cmd.Context(), cfg, patterns)
		},
	}
}

func watch(ctx context.Context, cfg *gen.Config, patterns []string) error {
	g, err := compiler.LoadGraph(ctx, cfg, patterns...)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, p := range g.Packages {
		if err := w.Add(p.Dir); err != nil {
			return err
		}
		cfg.Logger.Info("watching", "dir", p.Dir)
	}
	if err := gen.NewJenniferGenerator(g).Generate(ctx); err != nil {
		cfg.Logger.Error("generation failed", "error", err)
	}

	output := cfg.Output
	if output == "" {
		output = gen.DefaultOutput
	}
	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, output) {
				continue
			}
			cfg.Logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			if err := compiler.Generate(ctx, cfg, patterns...); err != nil {
				cfg.Logger.Error("generation failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Error("watch error", "error", err)
		}
	}
}

// relevant reports whether an event on a file should trigger generation.
// Changes to the generated file itself are ignored.
func relevant(ev fsnotify.Event, output string) bool {
	name := filepath.Base(ev.Name)
	if filepath.Ext(name) != ".go" || name == output || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
