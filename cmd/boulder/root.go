package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/boulder/compiler/gen"
)

// defaultConfigFile is read when --config is not given and the file exists.
const defaultConfigFile = "boulder.yaml"

// options are the flags shared by all subcommands.
type options struct {
	config    string
	output    string
	features  []string
	disable   []string
	tags      []string
	workers   int
	strict    bool
	logLevel  string
	logFormat string
}

// RootCmd returns the boulder command tree.
func RootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "boulder",
		Short:        "Generate builders and generators for annotated Go structs",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&o.config, "config", "", "YAML configuration file (default boulder.yaml if present)")
	flags.StringVarP(&o.output, "output", "o", "", "name of the generated file in every package (default "+gen.DefaultOutput+")")
	flags.StringSliceVar(&o.features, "feature", nil, "enable a codegen feature (assertions, funcsetters, snapshot)")
	flags.StringSliceVar(&o.disable, "disable", nil, "disable a codegen feature")
	flags.StringSliceVar(&o.tags, "tags", nil, "build tags used when loading packages")
	flags.IntVar(&o.workers, "workers", 0, "packages generated in parallel (default GOMAXPROCS)")
	flags.BoolVar(&o.strict, "strict", false, "treat ignored duplicate directives as errors")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&o.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(
		GenerateCmd(o),
		DescribeCmd(o),
		WatchCmd(o),
		VersionCmd(),
	)
	return root
}

// genConfig builds the code generation config from the configuration file
// and the flags. Flags take precedence.
func (o *options) genConfig(stderr io.Writer) (*gen.Config, error) {
	var opts []gen.Option
	switch {
	case o.config != "":
		opts = append(opts, gen.WithConfigFile(o.config))
	default:
		if _, err := os.Stat(defaultConfigFile); err == nil {
			opts = append(opts, gen.WithConfigFile(defaultConfigFile))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if o.output != "" {
		opts = append(opts, gen.WithOutput(o.output))
	}
	for _, name := range o.features {
		f, err := gen.FeatureByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithFeatures(f))
	}
	if len(o.disable) > 0 {
		opts = append(opts, gen.WithoutFeatures(o.disable...))
	}
	if len(o.tags) > 0 {
		opts = append(opts, gen.WithBuildFlags(buildTags(o.tags)))
	}
	if o.workers > 0 {
		opts = append(opts, gen.WithWorkers(o.workers))
	}
	if o.strict {
		opts = append(opts, gen.WithStrictDirectives())
	}
	opts = append(opts, gen.WithLogger(newLogger(o.logLevel, o.logFormat, stderr)))
	return gen.NewConfig(opts...)
}

func buildTags(tags []string) string {
	return "-tags=" + strings.Join(tags, ",")
}

// newLogger creates a logger writing to w in the given level and format.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
