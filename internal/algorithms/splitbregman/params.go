package splitbregman

import (
	"fmt"
	"math"

	"bregman-segmenter/internal/models"
)

const DefaultMu = 1e-4

func floatParam(params map[string]interface{}, name string, def float64) (float64, error) {
	raw, ok := params[name]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return def, models.NewValidationError(name, raw, "must be a number")
	}
}

func intParam(params map[string]interface{}, name string, def int) (int, error) {
	raw, ok := params[name]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return def, models.NewValidationError(name, raw, "must be a whole number")
		}
		return int(v), nil
	default:
		return def, models.NewValidationError(name, raw, "must be an integer")
	}
}

// optionsFromParams reads solver options and mu from an algorithm parameter
// map. Missing keys keep their defaults.
func optionsFromParams(params map[string]interface{}) (Options, float64, error) {
	opts := DefaultOptions()

	mu, err := floatParam(params, "mu", DefaultMu)
	if err != nil {
		return opts, 0, err
	}
	if opts.Lambda, err = floatParam(params, "lambda", opts.Lambda); err != nil {
		return opts, 0, err
	}
	if opts.Tolerance, err = floatParam(params, "tolerance", opts.Tolerance); err != nil {
		return opts, 0, err
	}
	if opts.RegionThreshold, err = floatParam(params, "region_threshold", opts.RegionThreshold); err != nil {
		return opts, 0, err
	}
	if opts.MinIterations, err = intParam(params, "min_iterations", opts.MinIterations); err != nil {
		return opts, 0, err
	}
	if opts.MaxIterations, err = intParam(params, "max_iterations", opts.MaxIterations); err != nil {
		return opts, 0, err
	}
	if opts.InnerIterations, err = intParam(params, "inner_iterations", opts.InnerIterations); err != nil {
		return opts, 0, err
	}
	if opts.Workers, err = intParam(params, "workers", opts.Workers); err != nil {
		return opts, 0, err
	}
	if raw, ok := params["empty_region"]; ok {
		name, isString := raw.(string)
		if !isString {
			return opts, 0, models.NewValidationError("empty_region", raw, "must be \"zero\" or \"collapse\"")
		}
		if opts.EmptyRegion, err = ParseEmptyRegionPolicy(name); err != nil {
			return opts, 0, err
		}
	}

	if !(mu > 0) || math.IsInf(mu, 0) {
		return opts, 0, models.NewValidationError("mu", mu, "must be positive and finite")
	}
	if err := opts.Validate(); err != nil {
		return opts, 0, fmt.Errorf("parameter validation failed: %w", err)
	}
	return opts, mu, nil
}
