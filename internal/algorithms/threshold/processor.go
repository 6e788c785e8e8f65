// Package threshold provides the global-mean threshold used to seed the
// Split Bregman solver as a standalone algorithm, for comparison.
package threshold

import (
	"context"
	"math"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/models"

	"gonum.org/v1/gonum/stat"
)

const Name = "Mean Threshold"

type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) GetName() string {
	return Name
}

// A negative level selects the global mean of the image.
func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"level": -1.0,
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	raw, ok := params["level"]
	if !ok {
		return nil
	}
	level, ok := raw.(float64)
	if !ok {
		return models.NewValidationError("level", raw, "must be a float")
	}
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return models.NewValidationError("level", raw, "must be finite")
	}
	return nil
}

func (p *Processor) Process(ctx context.Context, image, edges *grid.Grid, params map[string]interface{}) (*models.Segmentation, error) {
	if err := p.ValidateParameters(params); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	level := stat.Mean(image.Data, nil)
	if v, ok := params["level"].(float64); ok && v >= 0 {
		level = v
	}

	field := grid.New(image.Rows, image.Cols)
	var fgSum, bgSum, fgCount, bgCount float64
	for i, v := range image.Data {
		if v > level {
			field.Data[i] = 1
			fgSum += v
			fgCount++
		} else {
			bgSum += v
			bgCount++
		}
	}

	return &models.Segmentation{
		Field:       field,
		C1:          fgSum / math.Max(fgCount, 1),
		C2:          bgSum / math.Max(bgCount, 1),
		Converged:   true,
		EmptyRegion: fgCount == 0 || bgCount == 0,
	}, nil
}
