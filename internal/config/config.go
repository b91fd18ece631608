// Package config loads dataset manifests.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

// ErrInvalidManifest is returned for manifests that fail validation.
var ErrInvalidManifest = errors.New("invalid manifest")

// Backends a dataset can be evaluated with.
const (
	BackendNative = "native"
	BackendOctave = "octave"
)

// Manifest describes a batch of datasets to generate.
type Manifest struct {
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// BaseDir resolves relative dataset paths. Defaults to the manifest's
	// directory.
	BaseDir  string        `yaml:"base_dir"`
	Datasets []DatasetSpec `yaml:"datasets"`
}

// DatasetSpec is one manifest entry.
type DatasetSpec struct {
	Name   string        `yaml:"name"`
	Input  string        `yaml:"input"`
	Output string        `yaml:"output"`
	Format domain.Format `yaml:"format"`

	// Function names a registered function (native backend).
	Function string `yaml:"function"`
	// Backend is native (default) or octave.
	Backend string `yaml:"backend"`
	// Expr and Arity configure the octave backend. Expr refers to the row
	// values as x1..xN.
	Expr  string `yaml:"expr"`
	Arity int    `yaml:"arity"`

	Echo      string  `yaml:"echo"` // fields|line
	Separator *string `yaml:"separator"`
	Lenient   bool    `yaml:"lenient"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if m.BaseDir == "" {
		m.BaseDir = filepath.Dir(path)
	} else if !filepath.IsAbs(m.BaseDir) {
		m.BaseDir = filepath.Join(filepath.Dir(path), m.BaseDir)
	}
	return m, nil
}

// Parse decodes a manifest, applies environment overrides and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	m.applyEnvOverrides()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("REFDATA_LOG_LEVEL")); v != "" {
		m.LogLevel = v
	}
	if m.LogLevel == "" {
		m.LogLevel = "info"
	}
}

// Validate checks every dataset entry.
func (m *Manifest) Validate() error {
	if len(m.Datasets) == 0 {
		return fmt.Errorf("%w: no datasets", ErrInvalidManifest)
	}
	seen := map[string]bool{}
	for i, d := range m.Datasets {
		where := fmt.Sprintf("datasets[%d]", i)
		if d.Name != "" {
			where = d.Name
			if seen[d.Name] {
				return fmt.Errorf("%w: duplicate dataset name %s", ErrInvalidManifest, d.Name)
			}
			seen[d.Name] = true
		}
		if d.Input == "" || d.Output == "" {
			return fmt.Errorf("%w: %s: input and output are required", ErrInvalidManifest, where)
		}
		if _, err := domain.ParseEchoMode(d.Echo); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidManifest, where, err)
		}
		switch d.Backend {
		case "", BackendNative:
			if _, err := domain.LookupFunction(d.Function); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidManifest, where, err)
			}
		case BackendOctave:
			if d.Expr == "" || d.Arity < 1 {
				return fmt.Errorf("%w: %s: octave backend needs expr and a positive arity", ErrInvalidManifest, where)
			}
		default:
			return fmt.Errorf("%w: %s: unknown backend %s", ErrInvalidManifest, where, d.Backend)
		}
	}
	return nil
}

// NeedsOctave reports whether any dataset uses the octave backend.
func (m *Manifest) NeedsOctave() bool {
	for _, d := range m.Datasets {
		if d.Backend == BackendOctave {
			return true
		}
	}
	return false
}

// Build resolves the manifest into datasets. runner is only used by octave
// datasets and may be nil otherwise.
func (m *Manifest) Build(runner domain.ScriptRunner) ([]domain.Dataset, error) {
	out := make([]domain.Dataset, 0, len(m.Datasets))
	for _, d := range m.Datasets {
		echo, err := domain.ParseEchoMode(d.Echo)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}

		var fn domain.Function
		if d.Backend == BackendOctave {
			if runner == nil {
				return nil, fmt.Errorf("%w: %s: octave backend is not available", ErrInvalidManifest, d.Name)
			}
			fn = &domain.OctaveFunction{Runner: runner, Expr: d.Expr, N: d.Arity}
		} else if fn, err = domain.LookupFunction(d.Function); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}

		ds := domain.Dataset{
			Name:     d.Name,
			Input:    m.resolve(d.Input),
			Output:   m.resolve(d.Output),
			Format:   d.Format,
			Function: fn,
			Echo:     echo,
			Lenient:  d.Lenient,
		}
		if d.Separator != nil {
			ds.Separator = *d.Separator
		}
		out = append(out, ds)
	}
	return out, nil
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) || m.BaseDir == "" {
		return p
	}
	return filepath.Join(m.BaseDir, p)
}
