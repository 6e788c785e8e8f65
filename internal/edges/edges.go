// Package edges builds the per-pixel edge-weight map that scales the total
// variation term of the solver: weights near 1 in flat areas and small
// weights across strong gradients, so boundaries there are cheap to keep.
package edges

import (
	"fmt"
	"sort"
	"sync"

	"bregman-segmenter/internal/grid"
)

const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

// Options configures the edge detector g = 1 / (1 + Beta*|∇(G_Sigma * f)|²),
// with f normalised to [0,1] first.
type Options struct {
	Sigma float64
	Beta  float64
	// Uniform skips detection and returns weights of 1 everywhere.
	Uniform bool
}

func DefaultOptions() Options {
	return Options{Sigma: 1.0, Beta: 1.0}
}

func (o Options) Validate() error {
	if o.Sigma < 0 {
		return fmt.Errorf("sigma must not be negative, got %v", o.Sigma)
	}
	if o.Beta < 0 {
		return fmt.Errorf("beta must not be negative, got %v", o.Beta)
	}
	return nil
}

// Detector computes an edge-weight map of the same shape as its input.
type Detector interface {
	EdgeMap(img *grid.Grid) (*grid.Grid, error)
	Name() string
}

// Factory builds a detector for a backend.
type Factory func(opts Options) Detector

var (
	backendsMu sync.RWMutex
	backends   = map[string]Factory{
		BackendNative: func(opts Options) Detector { return NewNative(opts) },
	}
)

// Register makes a backend available by name. Backends with system
// dependencies register themselves from their own package.
func Register(name string, factory Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = factory
}

// Backends lists the registered backend names.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a detector for the named backend. Uniform options bypass the
// backend entirely.
func New(backend string, opts Options) (Detector, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Uniform {
		return uniform{}, nil
	}

	backendsMu.RLock()
	factory, ok := backends[backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("edge backend %q is not available (registered: %v)", backend, Backends())
	}
	return factory(opts), nil
}

type uniform struct{}

func (uniform) Name() string { return "uniform" }

func (uniform) EdgeMap(img *grid.Grid) (*grid.Grid, error) {
	return grid.Filled(img.Rows, img.Cols, 1), nil
}

// Weights converts squared gradient magnitudes into edge weights in place.
func Weights(grad2 *grid.Grid, beta float64) *grid.Grid {
	for i, v := range grad2.Data {
		grad2.Data[i] = 1 / (1 + beta*v)
	}
	return grad2
}

// Normalize rescales img to [0,1] by its own range. A flat image maps to 0.
func Normalize(img *grid.Grid) *grid.Grid {
	out := grid.New(img.Rows, img.Cols)
	lo, hi := img.MinMax()
	if hi == lo {
		return out
	}
	scale := 1 / (hi - lo)
	for i, v := range img.Data {
		out.Data[i] = (v - lo) * scale
	}
	return out
}
