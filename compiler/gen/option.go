package gen

import (
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithOutput sets the name of the generated file written into every
// package directory.
func WithOutput(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Output", nil, "output file name cannot be empty")
		}
		if filepath.Base(name) != name || filepath.Ext(name) != ".go" {
			return NewConfigError("Output", name, "output must be a .go file name without directories")
		}
		c.Output = name
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name }) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables features by name, including the ones enabled
// by default.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, err := FeatureByName(name); err != nil {
				return err
			}
			c.Features = slices.DeleteFunc(c.Features, func(f Feature) bool { return f.Name == name })
		}
		return nil
	}
}

// WithLogger sets the logger used during loading and generation.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithWorkers sets the number of packages generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading annotated packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithStrictDirectives makes a directive that is ignored because an earlier
// one already filled its slot an error instead of a warning.
func WithStrictDirectives() Option {
	return func(c *Config) error {
		c.Strict = true
		return nil
	}
}

// WithConfigFile applies the options stored in a YAML configuration file.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		opts, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		return c.Apply(opts...)
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the default features and the given
// options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Features: defaultFeatures()}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
