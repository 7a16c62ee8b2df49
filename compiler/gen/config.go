package gen

import (
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultOutput is the name of the file written into every package.
	DefaultOutput = "boulder_gen.go"
	// DefaultHeader is the header comment of generated files.
	DefaultHeader = "Code generated by boulder. DO NOT EDIT."
	// SnapshotFile holds the record snapshot of the snapshot feature.
	SnapshotFile = ".boulder.snapshot"
)

// Config holds the global codegen configuration.
type Config struct {
	// Header is the comment written at the top of every generated file.
	Header string
	// Output is the file name written into each package directory.
	Output string
	// Features holds the enabled feature-flags.
	Features []Feature
	// Workers bounds the number of packages generated in parallel.
	// Zero means GOMAXPROCS.
	Workers int
	// BuildFlags are passed to the package loader.
	BuildFlags []string
	// Strict turns ignored duplicate directives into errors.
	Strict bool
	// Logger receives debug and warning output.
	Logger *slog.Logger
}

// FileConfig is the YAML form of the configuration, read from boulder.yaml.
//
//	output: boulder_gen.go
//	features: [snapshot]
//	disable: [funcsetters]
//	strict: true
type FileConfig struct {
	Header     string   `yaml:"header,omitempty"`
	Output     string   `yaml:"output,omitempty"`
	Features   []string `yaml:"features,omitempty"`
	Disable    []string `yaml:"disable,omitempty"`
	Workers    int      `yaml:"workers,omitempty"`
	BuildFlags []string `yaml:"build_flags,omitempty"`
	Strict     bool     `yaml:"strict,omitempty"`
}

// LoadConfigFile reads a YAML configuration file and returns the options
// it describes.
func LoadConfigFile(path string) ([]Option, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("ConfigFile", path, err.Error())
	}
	var fc FileConfig
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return nil, NewConfigError("ConfigFile", path, err.Error())
	}
	return fc.Options()
}

// Options converts the file configuration to options.
func (fc *FileConfig) Options() ([]Option, error) {
	var opts []Option
	if fc.Header != "" {
		opts = append(opts, WithHeader(fc.Header))
	}
	if fc.Output != "" {
		opts = append(opts, WithOutput(fc.Output))
	}
	for _, name := range fc.Features {
		f, err := FeatureByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithFeatures(f))
	}
	if len(fc.Disable) > 0 {
		opts = append(opts, WithoutFeatures(fc.Disable...))
	}
	if fc.Workers != 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	if len(fc.BuildFlags) > 0 {
		opts = append(opts, WithBuildFlags(fc.BuildFlags...))
	}
	if fc.Strict {
		opts = append(opts, WithStrictDirectives())
	}
	return opts, nil
}

// FeatureEnabled reports if the given feature name is enabled.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, err := FeatureByName(name); err != nil {
		return false, err
	}
	return slices.ContainsFunc(c.Features, func(f Feature) bool {
		return f.Name == name
	}), nil
}

// enabled is FeatureEnabled for names known to exist.
func (c *Config) enabled(f Feature) bool {
	ok, _ := c.FeatureEnabled(f.Name)
	return ok
}

// header returns the configured header or the default one.
func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

// output returns the configured output file name or the default one.
func (c *Config) output() string {
	if c.Output != "" {
		return c.Output
	}
	return DefaultOutput
}

// logger returns the configured logger, or one that discards everything.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// defaultFeatures returns the features enabled by default.
func defaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}
