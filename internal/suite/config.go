package suite

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/falsify"
)

//go:embed schema.cue
var schemaCUE string

// Config is the full falsification-suite configuration. Every field has a
// documented default (the reference parameters); a config file only needs to
// name what it overrides.
type Config struct {
	// Label tags persisted runs; free-form.
	Label string `yaml:"label"`

	// Parallelism bounds the worker pools of the trial-parallel tests.
	// 0 means NumCPU.
	Parallelism int `yaml:"parallelism"`

	F1  F1Params         `yaml:"f1"`
	F2  F2Params         `yaml:"f2"`
	F3  F3Params         `yaml:"f3"`
	F3K F3ConstantParams `yaml:"f3k"`
	F4  F4Params         `yaml:"f4"`
}

// F1Params configures the reducibility test.
type F1Params struct {
	NumSteps      int       `yaml:"num_steps"`
	PrecisionBits int       `yaml:"precision_bits"`
	Seed          int64     `yaml:"seed"`
	InputLevels   []float64 `yaml:"input_levels"`
}

// F2Params configures the separability test.
type F2Params struct {
	NumSteps  int     `yaml:"num_steps"`
	NumTrials int     `yaml:"num_trials"`
	BaseSeed  int64   `yaml:"base_seed"`
	Threshold float64 `yaml:"threshold"`
}

// F3Params configures the phase-causality test.
type F3Params struct {
	NumTrials            int     `yaml:"num_trials"`
	NumSteps             int     `yaml:"num_steps"`
	DivergenceThreshold  float64 `yaml:"divergence_threshold"`
	CorrelationThreshold float64 `yaml:"correlation_threshold"`
}

// F3ConstantParams configures the constant-coupling test.
type F3ConstantParams struct {
	NumSteps       int     `yaml:"num_steps"`
	NumKValues     int     `yaml:"num_k_values"`
	Seed           int64   `yaml:"seed"`
	RatioThreshold float64 `yaml:"ratio_threshold"`
}

// F4Params configures the scaling analysis.
type F4Params struct {
	NRange []int `yaml:"n_range"`
}

// DefaultConfig returns the reference parameters for all five tests.
func DefaultConfig() Config {
	f1 := falsify.DefaultF1Config()
	f2 := falsify.DefaultF2Config()
	f3 := falsify.DefaultF3PhaseConfig()
	f3k := falsify.DefaultF3ConstantConfig()
	f4 := falsify.DefaultF4Config()

	return Config{
		Label: "default",
		F1: F1Params{
			NumSteps:      f1.NumSteps,
			PrecisionBits: f1.PrecisionBits,
			Seed:          f1.Seed,
			InputLevels:   f1.InputLevels,
		},
		F2: F2Params{
			NumSteps:  f2.NumSteps,
			NumTrials: f2.NumTrials,
			BaseSeed:  f2.BaseSeed,
			Threshold: f2.Threshold,
		},
		F3: F3Params{
			NumTrials:            f3.NumTrials,
			NumSteps:             f3.NumSteps,
			DivergenceThreshold:  f3.DivergenceThreshold,
			CorrelationThreshold: f3.CorrelationThreshold,
		},
		F3K: F3ConstantParams{
			NumSteps:       f3k.NumSteps,
			NumKValues:     f3k.NumKValues,
			Seed:           f3k.Seed,
			RatioThreshold: f3k.RatioThreshold,
		},
		F4: F4Params{NRange: f4.NRange},
	}
}

// LoadConfig reads a YAML suite config, merging it over the defaults.
//
// Unknown fields are rejected (typos like "presicion_bits" fail loudly
// instead of silently falling back to a default), and the raw document is
// validated against the embedded CUE schema so out-of-range values are
// reported with the offending path before any test runs.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read suite config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config bytes over the defaults.
func ParseConfig(data []byte) (Config, error) {
	if err := validateAgainstSchema(data); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse suite config: %w", err)
	}
	return cfg, nil
}

// validateAgainstSchema unifies the raw YAML document with the embedded CUE
// schema. The schema constrains ranges (positive step counts, precision in
// 1..16, grid of at least 2 points); field-name typos are caught separately
// by the strict YAML decode.
func validateAgainstSchema(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse suite config: %w", err)
	}
	if raw == nil {
		// Empty document: pure defaults, nothing to validate.
		return nil
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile suite schema: %w", err)
	}
	schema = schema.LookupPath(cue.ParsePath("#Suite"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("lookup suite schema: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encode suite config: %w", err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("invalid suite config: %w", err)
	}
	return nil
}
