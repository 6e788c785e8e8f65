// Package metrics summarises a segmentation field against its source image.
package metrics

import (
	"fmt"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ForegroundThreshold splits a field into foreground (u > threshold) and
// background.
const ForegroundThreshold = 0.5

// Summarize computes foreground statistics of field over image. Means of an
// empty region are reported as 0.
func Summarize(image, field *grid.Grid) (*models.SegmentationMetrics, error) {
	if !image.SameShape(field) {
		return nil, fmt.Errorf("image %dx%d and field %dx%d differ in shape",
			image.Rows, image.Cols, field.Rows, field.Cols)
	}
	if field.Empty() {
		return nil, fmt.Errorf("cannot summarise an empty field")
	}

	mask := make([]float64, len(field.Data))
	for i, v := range field.Data {
		if v > ForegroundThreshold {
			mask[i] = 1
		}
	}
	fgCount := floats.Sum(mask)
	n := float64(len(mask))

	m := &models.SegmentationMetrics{
		ForegroundFraction: fgCount / n,
		FieldMean:          stat.Mean(field.Data, nil),
	}
	if fgCount > 0 {
		m.ForegroundMean = stat.Mean(image.Data, mask)
	}
	if fgCount < n {
		for i := range mask {
			mask[i] = 1 - mask[i]
		}
		m.BackgroundMean = stat.Mean(image.Data, mask)
	}
	m.Contrast = m.ForegroundMean - m.BackgroundMean
	return m, nil
}

// Fields flattens a summary for structured logging.
func Fields(m *models.SegmentationMetrics) map[string]interface{} {
	return map[string]interface{}{
		"foreground_fraction": m.ForegroundFraction,
		"field_mean":          m.FieldMean,
		"foreground_mean":     m.ForegroundMean,
		"background_mean":     m.BackgroundMean,
		"contrast":            m.Contrast,
	}
}
