package pipeline

import (
	"context"
	"fmt"

	"bregman-segmenter/internal/algorithms"
	"bregman-segmenter/internal/models"
)

// Coordinator runs load, process and save for single files and keeps the
// most recent results.
type Coordinator struct {
	loader    ImageLoader
	processor *Processor
	saver     ImageSaver
	results   *models.ResultRepository
	settings  Settings
}

func NewCoordinator(log Logger, tracker TimingTracker, manager *algorithms.Manager, settings Settings) *Coordinator {
	return &Coordinator{
		loader:    NewLoader(log, tracker, settings.OpenCVDecode),
		processor: NewProcessor(log, tracker, manager),
		saver:     NewSaver(log, tracker),
		results:   models.NewResultRepository(0),
		settings:  settings,
	}
}

func (c *Coordinator) Settings() Settings {
	return c.settings
}

// Segment processes inputPath and writes the field to outputPath. An empty
// outputPath skips saving.
func (c *Coordinator) Segment(ctx context.Context, inputPath, outputPath string) (*models.ProcessingResult, error) {
	img, err := c.loader.LoadFile(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	result, err := c.processor.ProcessImage(ctx, img, c.settings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}

	if outputPath != "" {
		if err := c.saver.SaveToPath(ctx, outputPath, result.Segmentation.Field, c.settings.Binary); err != nil {
			return nil, err
		}
		result.OutputPath = outputPath
	}

	c.results.Add(*result)
	return result, nil
}

// EdgeMap writes only the edge-weight map of inputPath to outputPath.
func (c *Coordinator) EdgeMap(ctx context.Context, inputPath, outputPath string) error {
	img, err := c.loader.LoadFile(ctx, inputPath)
	if err != nil {
		return err
	}

	result, err := c.processor.EdgeMap(ctx, img, c.settings)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	return c.saver.SaveToPath(ctx, outputPath, result, false)
}

func (c *Coordinator) Results() []models.ProcessingResult {
	return c.results.All()
}
