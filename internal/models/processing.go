package models

import (
	"fmt"
	"time"

	"bregman-segmenter/internal/grid"
)

// Segmentation is what an algorithm produces: a field in [0,1] plus the
// solver diagnostics that apply to it.
type Segmentation struct {
	Field       *grid.Grid
	C1          float64
	C2          float64
	Iterations  int
	Diff        float64
	MaxDelta    float64
	Converged   bool
	EmptyRegion bool
}

// SegmentationMetrics summarises a field against the image it came from.
type SegmentationMetrics struct {
	ForegroundFraction float64
	FieldMean          float64
	ForegroundMean     float64
	BackgroundMean     float64
	Contrast           float64
}

// ProcessingResult contains the output of one pipeline run
type ProcessingResult struct {
	Input        *ImageData
	Edges        *grid.Grid
	Algorithm    string
	Parameters   map[string]interface{}
	Segmentation *Segmentation
	Metrics      *SegmentationMetrics
	OutputPath   string
	ProcessTime  time.Duration
}

// ValidationError represents a parameter validation error
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		ve.Parameter, ve.Value, ve.Message)
}
