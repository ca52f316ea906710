// Package config loads a sampling job from YAML.
//
// A job names exactly one kernel source (an explicit matrix, an eigen
// decomposition or a feature matrix) and the sampling parameters:
//
//	kernel:
//	  type: correlation
//	  features:
//	    - [1, 0, 1]
//	    - [0, 1, 1]
//	sampling:
//	  mode: GS
//	  draws: 10
//	  seed: 42
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for structural problems the tag validator cannot express.
var (
	ErrKernelSource = errors.New("config: exactly one of matrix, eigen or features must be set")
	ErrRagged       = errors.New("config: rows of different length")
	ErrEmptyRow     = errors.New("config: matrix rows must not be empty")
	ErrImagShape    = errors.New("config: imag must match matrix shape")
)

// EigenConfig holds K = U·diag(values)·Uᵀ. Vectors lists U row by row, so
// its columns are the eigenvectors.
type EigenConfig struct {
	Values  []float64   `yaml:"values" validate:"required,min=1"`
	Vectors [][]float64 `yaml:"vectors" validate:"required,min=1"`
}

// KernelConfig selects the kernel representation and its source.
type KernelConfig struct {
	Type     string       `yaml:"type" validate:"oneof=correlation likelihood"`
	Matrix   [][]float64  `yaml:"matrix,omitempty"`
	Imag     [][]float64  `yaml:"imag,omitempty"`
	Eigen    *EigenConfig `yaml:"eigen,omitempty"`
	Features [][]float64  `yaml:"features,omitempty"`
}

// SamplingConfig holds the per-job sampling parameters. An unknown mode is
// accepted and falls back to GS at dispatch.
type SamplingConfig struct {
	Mode    string `yaml:"mode"`
	Size    int    `yaml:"size" validate:"gte=0"`
	Seed    uint64 `yaml:"seed"`
	Draws   int    `yaml:"draws" validate:"gte=1"`
	Workers int    `yaml:"workers" validate:"gte=0"`
}

// JobConfig is the root configuration structure.
type JobConfig struct {
	Kernel   KernelConfig   `yaml:"kernel"`
	Sampling SamplingConfig `yaml:"sampling"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads, defaults and validates a job from path.
func Load(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a job from YAML bytes, applies defaults and validates it.
func Parse(data []byte) (*JobConfig, error) {
	var cfg JobConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg *JobConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate runs the tag rules and the kernel source checks.
func (c *JobConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	k := c.Kernel
	sources := 0
	if len(k.Matrix) > 0 {
		sources++
	}
	if k.Eigen != nil {
		sources++
	}
	if len(k.Features) > 0 {
		sources++
	}
	if sources != 1 {
		return ErrKernelSource
	}

	for _, m := range [][][]float64{k.Matrix, k.Features, k.Imag} {
		if _, _, err := shape(m); err != nil {
			return err
		}
	}
	if k.Eigen != nil {
		if _, _, err := shape(k.Eigen.Vectors); err != nil {
			return err
		}
	}
	if len(k.Imag) > 0 {
		r, c1, _ := shape(k.Matrix)
		ri, ci, _ := shape(k.Imag)
		if r != ri || c1 != ci {
			return ErrImagShape
		}
	}
	return nil
}

// Complex reports whether the job describes a complex kernel.
func (c *JobConfig) Complex() bool { return len(c.Kernel.Imag) > 0 }

func applyDefaults(cfg *JobConfig) {
	if cfg.Kernel.Type == "" {
		cfg.Kernel.Type = "correlation"
	}
	if cfg.Sampling.Mode == "" {
		cfg.Sampling.Mode = "GS"
	}
	if cfg.Sampling.Draws == 0 {
		cfg.Sampling.Draws = 1
	}
}

// shape returns the dimensions of a row-major [][]float64, rejecting ragged
// or empty rows.
func shape(m [][]float64) (int, int, error) {
	if len(m) == 0 {
		return 0, 0, nil
	}
	c := len(m[0])
	if c == 0 {
		return 0, 0, ErrEmptyRow
	}
	for _, row := range m[1:] {
		if len(row) != c {
			return 0, 0, ErrRagged
		}
	}
	return len(m), c, nil
}

// flatten copies m into a row-major slice.
func flatten(m [][]float64) []float64 {
	r, c, _ := shape(m)
	out := make([]float64, 0, r*c)
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}
