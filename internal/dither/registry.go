package dither

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownMethod is returned when a method name is not registered.
var ErrUnknownMethod = errors.New("unknown dither method")

// DefaultThreshold is used by threshold-driven methods when the caller does
// not supply one.
const DefaultThreshold = 128

// Built-in method names.
const (
	MethodGrayscale      = "grayscale"
	MethodThreshold      = "threshold"
	MethodBayer          = "bayer"
	MethodFloydSteinberg = "floyd-steinberg"
	MethodAtkinson       = "atkinson"
)

// Options carries per-call parameters. Methods ignore fields they do not use.
type Options struct {
	Threshold int
}

// Func transforms buf in place and returns it.
type Func func(buf *PixelBuffer, opts Options) *PixelBuffer

// Method is a named, registered transform.
type Method struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	UsesThreshold bool   `json:"uses_threshold"`
	Binary        bool   `json:"binary"`
	Apply         Func   `json:"-"`
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Method{}
)

func init() {
	Register(Method{
		Name:        MethodGrayscale,
		Description: "Luminance grayscale, not binarized",
		Apply: func(buf *PixelBuffer, _ Options) *PixelBuffer {
			return Grayscale(buf)
		},
	})
	Register(Method{
		Name:          MethodThreshold,
		Description:   "Flat luminance threshold",
		UsesThreshold: true,
		Binary:        true,
		Apply: func(buf *PixelBuffer, opts Options) *PixelBuffer {
			return Threshold(buf, opts.Threshold)
		},
	})
	Register(Method{
		Name:          MethodBayer,
		Description:   "4x4 Bayer ordered dithering",
		UsesThreshold: true,
		Binary:        true,
		Apply: func(buf *PixelBuffer, opts Options) *PixelBuffer {
			return Bayer(buf, opts.Threshold)
		},
	})
	Register(Method{
		Name:        MethodFloydSteinberg,
		Description: "Floyd-Steinberg error diffusion",
		Binary:      true,
		Apply: func(buf *PixelBuffer, _ Options) *PixelBuffer {
			return FloydSteinberg(buf)
		},
	})
	Register(Method{
		Name:        MethodAtkinson,
		Description: "Atkinson error diffusion (6/8 of the error is kept)",
		Binary:      true,
		Apply: func(buf *PixelBuffer, _ Options) *PixelBuffer {
			return Atkinson(buf)
		},
	})
}

// Register adds a method to the registry. It panics if the name is empty,
// the method has no Apply func, or the name is already taken.
func Register(m Method) {
	if m.Name == "" {
		panic("dither method name cannot be empty")
	}
	if m.Apply == nil {
		panic("dither method " + m.Name + " has no Apply func")
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[m.Name]; exists {
		panic("dither method already registered: " + m.Name)
	}
	registry[m.Name] = m
}

// Lookup returns the method registered under name.
func Lookup(name string) (Method, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	return m, ok
}

// Methods returns all registered methods sorted by name.
func Methods() []Method {
	registryMu.RLock()
	methods := make([]Method, 0, len(registry))
	for _, m := range registry {
		methods = append(methods, m)
	}
	registryMu.RUnlock()

	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods
}

// Apply validates buf and runs the named method on it.
func Apply(name string, buf *PixelBuffer, opts Options) (*PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	m, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return m.Apply(buf, opts), nil
}
