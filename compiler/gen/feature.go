package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureAssertions emits compile-time interface assertions for every
	// builder and generator of a non-generic record.
	FeatureAssertions = Feature{
		Name:        "assertions",
		Stage:       Stable,
		Default:     true,
		Description: "Emits compile-time assertions that builders and generators satisfy the runtime interfaces",
	}

	// FeatureFuncSetters emits an XFunc setter next to every generator setter,
	// accepting a plain function instead of a generator value.
	//
	//	NewWizardGenerator().NameFunc(func() string { return "Rincewind" })
	FeatureFuncSetters = Feature{
		Name:        "funcsetters",
		Stage:       Stable,
		Default:     true,
		Description: "Emits function-accepting setters on generators",
	}

	// FeatureSnapshot stores a snapshot of the loaded records next to the
	// generated file and skips generation when nothing changed.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Stores a snapshot of the annotated records and skips regeneration of unchanged packages",
		cleanup: func(dir string) error {
			return remove(dir, SnapshotFile)
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureAssertions,
		FeatureFuncSetters,
		FeatureSnapshot,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished, but
	// we expect breaking-changes to their output.
	Alpha

	// Beta features are Alpha features that were documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the boulder codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the artifacts of previous runs from a package
	// directory when the feature is disabled.
	cleanup func(dir string) error
}

// FeatureByName returns the feature registered under name.
func FeatureByName(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, nil
		}
	}
	return Feature{}, NewConfigError("Features", name, "unknown feature")
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
