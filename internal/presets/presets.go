// Package presets loads named dithering configurations from YAML.
package presets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rmitchellscott/monodither/internal/dither"
	"github.com/rmitchellscott/monodither/internal/imageprocessing"
)

//go:embed defaults.yaml
var defaultPresets []byte

// ErrPresetNotFound is returned by Get for unknown names.
var ErrPresetNotFound = errors.New("preset not found")

// Preset is a named set of processing options.
type Preset struct {
	Name        string `yaml:"name" json:"name" validate:"required,max=64,excludesall=/"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Method      string `yaml:"method" json:"method" validate:"required,dithermethod"`
	Threshold   *int   `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	FitWidth    int    `yaml:"fit_width,omitempty" json:"fit_width,omitempty" validate:"gte=0"`
	FitHeight   int    `yaml:"fit_height,omitempty" json:"fit_height,omitempty" validate:"gte=0"`
	FitMode     string `yaml:"fit_mode,omitempty" json:"fit_mode,omitempty" validate:"omitempty,oneof=fit fill"`
}

// Options converts the preset to processing options.
func (p Preset) Options() imageprocessing.ProcessingOptions {
	threshold := dither.DefaultThreshold
	if p.Threshold != nil {
		threshold = *p.Threshold
	}
	return imageprocessing.ProcessingOptions{
		Method:    p.Method,
		Threshold: threshold,
		FitWidth:  p.FitWidth,
		FitHeight: p.FitHeight,
		FitMode:   p.FitMode,
	}
}

type file struct {
	Presets []Preset `yaml:"presets" validate:"dive"`
}

// Store is an immutable set of presets keyed by name.
type Store struct {
	presets map[string]Preset
}

// Default returns the built-in presets.
func Default() (*Store, error) {
	return Parse(defaultPresets)
}

// Load reads presets from path, or the built-in set when path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse decodes and validates a YAML presets document.
func Parse(data []byte) (*Store, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	if err := Validator().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid presets: %w", err)
	}

	store := &Store{presets: make(map[string]Preset, len(f.Presets))}
	for _, p := range f.Presets {
		if _, dup := store.presets[p.Name]; dup {
			return nil, fmt.Errorf("invalid presets: duplicate name %q", p.Name)
		}
		store.presets[p.Name] = p
	}
	return store, nil
}

// Get returns the preset with the given name.
func (s *Store) Get(name string) (Preset, error) {
	p, ok := s.presets[strings.TrimSpace(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return p, nil
}

// List returns all presets sorted by name.
func (s *Store) List() []Preset {
	list := make([]Preset, 0, len(s.presets))
	for _, p := range s.presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
