package pipeline

import (
	"context"
	"fmt"
	"time"

	"bregman-segmenter/internal/algorithms"
	"bregman-segmenter/internal/edges"
	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/metrics"
	"bregman-segmenter/internal/models"

	"github.com/samber/lo"
)

type Processor struct {
	logger           Logger
	timingTracker    TimingTracker
	algorithmManager *algorithms.Manager
}

func NewProcessor(log Logger, tracker TimingTracker, manager *algorithms.Manager) *Processor {
	return &Processor{logger: log, timingTracker: tracker, algorithmManager: manager}
}

// ProcessImage builds the edge map, runs the selected algorithm and
// summarises the result.
func (p *Processor) ProcessImage(ctx context.Context, input *models.ImageData, settings Settings) (*models.ProcessingResult, error) {
	start := time.Now()

	algorithm, err := p.algorithmManager.GetAlgorithm(settings.Algorithm)
	if err != nil {
		return nil, err
	}
	params := lo.Assign(p.algorithmManager.GetParameters(settings.Algorithm), settings.Parameters)
	if err := algorithm.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("invalid parameters for %s: %w", algorithm.GetName(), err)
	}

	p.logger.Debug("ImageProcessor", "processing started", map[string]interface{}{
		"algorithm": algorithm.GetName(),
		"width":     input.Width,
		"height":    input.Height,
	})

	edgeMap, err := p.EdgeMap(ctx, input, settings)
	if err != nil {
		return nil, err
	}

	segCtx := p.timingTracker.StartTiming(ctx, "segment")
	seg, err := algorithm.Process(segCtx, input.Pixels, edgeMap, params)
	p.timingTracker.EndTiming(segCtx)
	if err != nil {
		return nil, fmt.Errorf("algorithm processing failed: %w", err)
	}

	summary, err := metrics.Summarize(input.Pixels, seg.Field)
	if err != nil {
		return nil, err
	}

	result := &models.ProcessingResult{
		Input:        input,
		Edges:        edgeMap,
		Algorithm:    algorithm.GetName(),
		Parameters:   params,
		Segmentation: seg,
		Metrics:      summary,
		ProcessTime:  time.Since(start),
	}

	p.logger.Info("ImageProcessor", "processing completed", lo.Assign(metrics.Fields(summary), map[string]interface{}{
		"algorithm":  algorithm.GetName(),
		"edges":      edgeBackendName(settings),
		"iterations": seg.Iterations,
		"converged":  seg.Converged,
		"c1":         seg.C1,
		"c2":         seg.C2,
		"duration":   result.ProcessTime.String(),
	}))
	return result, nil
}

// EdgeMap computes the edge-weight map of input with the configured backend.
func (p *Processor) EdgeMap(ctx context.Context, input *models.ImageData, settings Settings) (*grid.Grid, error) {
	detector, err := edges.New(settings.EdgeBackend, settings.Edges)
	if err != nil {
		return nil, err
	}

	ctx = p.timingTracker.StartTiming(ctx, "edges")
	defer p.timingTracker.EndTiming(ctx)

	edgeMap, err := detector.EdgeMap(input.Pixels)
	if err != nil {
		return nil, fmt.Errorf("edge map failed: %w", err)
	}
	return edgeMap, nil
}

func edgeBackendName(settings Settings) string {
	if settings.Edges.Uniform {
		return "uniform"
	}
	return settings.EdgeBackend
}
