// Package profile loads machine profiles and hands the engine its
// dualstrusion constants.
//
// Profiles are YAML documents named after the machine. A set of built-in
// profiles is embedded; directories passed to Load and Names are searched
// first, later directories winning over earlier ones.
package profile

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"dualretract/internal/engine"
)

//go:embed profiles/*.yaml
var builtin embed.FS

// BuiltinSource is the Source of embedded profiles.
const BuiltinSource = "builtin"

var (
	ErrNotFound     = errors.New("profile not found")
	ErrMissingField = errors.New("missing profile field")
	ErrInvalidField = errors.New("invalid profile field")
)

// Profile describes one machine.
type Profile struct {
	Name         string          `yaml:"name" json:"name"`
	Type         string          `yaml:"type,omitempty" json:"type,omitempty"`
	Axes         map[string]Axis `yaml:"axes,omitempty" json:"axes,omitempty"`
	Dualstrusion Dualstrusion    `yaml:"dualstrusion" json:"dualstrusion"`

	Source string `yaml:"-" json:"source"` // BuiltinSource or a file path
}

// Axis is informational; the rewrite does not use it.
type Axis struct {
	StepsPerMM  float64 `yaml:"steps_per_mm" json:"steps_per_mm"`
	MaxFeedrate float64 `yaml:"max_feedrate" json:"max_feedrate"`
}

// Dualstrusion holds the rewrite constants. Pointers tell absent from zero.
type Dualstrusion struct {
	RetractDistanceMM *float64 `yaml:"retract_distance_mm" json:"retract_distance_mm,omitempty"`
	SquirtReduceMM    *float64 `yaml:"squirt_reduce_mm" json:"squirt_reduce_mm,omitempty"`
	SquirtFeedrate    *float64 `yaml:"squirt_feedrate" json:"squirt_feedrate,omitempty"`
	SnortFeedrate     *float64 `yaml:"snort_feedrate" json:"snort_feedrate,omitempty"`
}

// Parse decodes one profile document. A missing name defaults to fallback.
func Parse(data []byte, source, fallback string) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if p.Name == "" {
		p.Name = fallback
	}
	p.Source = source
	return &p, nil
}

// Load finds the profile called name.
func Load(name string, dirs ...string) (*Profile, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		for _, ext := range []string{".yaml", ".yml"} {
			fn := filepath.Join(dirs[i], name+ext)
			data, err := os.ReadFile(fn)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return Parse(data, fn, name)
		}
	}
	data, err := builtin.ReadFile(path.Join("profiles", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Parse(data, BuiltinSource, name)
}

// Names lists every loadable profile name, sorted.
func Names(dirs ...string) ([]string, error) {
	seen := map[string]struct{}{}
	entries, err := fs.ReadDir(builtin, "profiles")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		seen[strings.TrimSuffix(e.Name(), ".yaml")] = struct{}{}
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("profiles dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			n := e.Name()
			if ext := filepath.Ext(n); ext == ".yaml" || ext == ".yml" {
				seen[strings.TrimSuffix(n, ext)] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Validate reports every missing or out-of-range dualstrusion field at once.
func (p *Profile) Validate() error {
	d := p.Dualstrusion
	var err error
	check := func(field string, v *float64, positive bool) {
		key := "dualstrusion." + field
		switch {
		case v == nil:
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingField, key))
		case positive && *v <= 0:
			err = multierr.Append(err, fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidField, key, *v))
		case *v < 0:
			err = multierr.Append(err, fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidField, key, *v))
		}
	}
	check("retract_distance_mm", d.RetractDistanceMM, false)
	check("squirt_reduce_mm", d.SquirtReduceMM, false)
	check("squirt_feedrate", d.SquirtFeedrate, true)
	check("snort_feedrate", d.SnortFeedrate, true)
	if err != nil {
		return fmt.Errorf("profile %s (%s): %w", p.Name, p.Source, err)
	}
	return nil
}

// EngineConfig validates p and converts it for the engine.
func (p *Profile) EngineConfig() (engine.Config, error) {
	if err := p.Validate(); err != nil {
		return engine.Config{}, err
	}
	d := p.Dualstrusion
	return engine.Config{
		RetractDistance: *d.RetractDistanceMM,
		SquirtReduce:    *d.SquirtReduceMM,
		SquirtFeedrate:  *d.SquirtFeedrate,
		SnortFeedrate:   *d.SnortFeedrate,
	}, nil
}
