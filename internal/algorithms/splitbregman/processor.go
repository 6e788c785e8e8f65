package splitbregman

import (
	"context"
	"fmt"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/logger"
	"bregman-segmenter/internal/models"
)

const Name = "Split Bregman"

// Processor exposes the solver through the algorithm registry.
type Processor struct {
	log logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{log: log}
}

func (p *Processor) GetName() string {
	return Name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"mu":               DefaultMu,
		"lambda":           DefaultLambda,
		"tolerance":        DefaultTolerance,
		"min_iterations":   DefaultMinIterations,
		"max_iterations":   DefaultMaxIterations,
		"inner_iterations": DefaultInnerIterations,
		"region_threshold": DefaultRegionThreshold,
		"workers":          1,
		"empty_region":     EmptyRegionZero.String(),
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	_, _, err := optionsFromParams(params)
	return err
}

func (p *Processor) Process(ctx context.Context, image, edges *grid.Grid, params map[string]interface{}) (*models.Segmentation, error) {
	opts, mu, err := optionsFromParams(params)
	if err != nil {
		return nil, err
	}
	solver, err := New(opts, p.log)
	if err != nil {
		return nil, err
	}
	res, err := solver.Run(ctx, image, edges, mu)
	if err != nil {
		return nil, fmt.Errorf("split bregman segmentation failed: %w", err)
	}
	return &models.Segmentation{
		Field:       res.U,
		C1:          res.C1,
		C2:          res.C2,
		Iterations:  res.Iterations,
		Diff:        res.Diff,
		MaxDelta:    res.MaxDelta,
		Converged:   res.Converged,
		EmptyRegion: res.EmptyRegion,
	}, nil
}
