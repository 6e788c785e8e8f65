package splitbregman

import (
	"fmt"
	"math"
)

const (
	DefaultLambda          = 0.5
	DefaultTolerance       = 0.025
	DefaultMinIterations   = 5
	DefaultMaxIterations   = 500
	DefaultInnerIterations = 5
	DefaultRegionThreshold = 0.5
)

// EmptyRegionPolicy decides the mean assigned to a region with no pixels.
type EmptyRegionPolicy int

const (
	// EmptyRegionZero divides the empty sum by a substituted count of one,
	// so the empty region's mean is 0.
	EmptyRegionZero EmptyRegionPolicy = iota
	// EmptyRegionCollapse gives the empty region the other region's mean,
	// so a constant image ends with c1 == c2.
	EmptyRegionCollapse
)

func (p EmptyRegionPolicy) String() string {
	switch p {
	case EmptyRegionZero:
		return "zero"
	case EmptyRegionCollapse:
		return "collapse"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseEmptyRegionPolicy accepts "zero" or "collapse".
func ParseEmptyRegionPolicy(s string) (EmptyRegionPolicy, error) {
	switch s {
	case "", "zero":
		return EmptyRegionZero, nil
	case "collapse":
		return EmptyRegionCollapse, nil
	default:
		return EmptyRegionZero, fmt.Errorf("%w: empty region policy %q", ErrInvalidParameter, s)
	}
}

// Options tunes a segmentation run. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Lambda          float64
	Tolerance       float64
	MinIterations   int
	MaxIterations   int
	InnerIterations int
	RegionThreshold float64
	// Workers > 1 spreads the shrinkage and Bregman passes over rows.
	// The Gauss-Seidel sweep always runs on one goroutine.
	Workers     int
	EmptyRegion EmptyRegionPolicy
}

func DefaultOptions() Options {
	return Options{
		Lambda:          DefaultLambda,
		Tolerance:       DefaultTolerance,
		MinIterations:   DefaultMinIterations,
		MaxIterations:   DefaultMaxIterations,
		InnerIterations: DefaultInnerIterations,
		RegionThreshold: DefaultRegionThreshold,
		Workers:         1,
		EmptyRegion:     EmptyRegionZero,
	}
}

func (o Options) Validate() error {
	if !(o.Lambda > 0) || math.IsInf(o.Lambda, 0) {
		return fmt.Errorf("%w: lambda must be positive and finite, got %v", ErrInvalidParameter, o.Lambda)
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return fmt.Errorf("%w: tolerance must be non-negative, got %v", ErrInvalidParameter, o.Tolerance)
	}
	if o.MinIterations < 1 {
		return fmt.Errorf("%w: min iterations must be at least 1, got %d", ErrInvalidParameter, o.MinIterations)
	}
	if o.MaxIterations < o.MinIterations {
		return fmt.Errorf("%w: max iterations %d below min iterations %d", ErrInvalidParameter, o.MaxIterations, o.MinIterations)
	}
	if o.InnerIterations < 1 {
		return fmt.Errorf("%w: inner iterations must be at least 1, got %d", ErrInvalidParameter, o.InnerIterations)
	}
	if !(o.RegionThreshold > 0 && o.RegionThreshold < 1) {
		return fmt.Errorf("%w: region threshold must lie in (0,1), got %v", ErrInvalidParameter, o.RegionThreshold)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidParameter, o.Workers)
	}
	return nil
}
