package algorithms

import (
	"context"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/models"
)

// Algorithm turns a grayscale image and its edge-weight map into a
// segmentation field in [0,1].
type Algorithm interface {
	Process(ctx context.Context, image, edges *grid.Grid, params map[string]interface{}) (*models.Segmentation, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
}
