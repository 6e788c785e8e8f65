package services

import (
	"context"
	"fmt"
	"sync"

	"bregman-segmenter/internal/logger"
	"bregman-segmenter/internal/models"
	"bregman-segmenter/internal/pipeline"
	"bregman-segmenter/internal/store"

	"golang.org/x/sync/errgroup"
)

const component = "ProcessingService"

// Segmenter runs one file through load, segment and save.
type Segmenter interface {
	Segment(ctx context.Context, inputPath, outputPath string) (*models.ProcessingResult, error)
}

// Recorder persists finished runs.
type Recorder interface {
	Record(result *models.ProcessingResult) (*store.Run, error)
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path   string
	Result *models.ProcessingResult
	Run    *store.Run
	Err    error
}

// ProcessingService segments batches of files with bounded concurrency.
type ProcessingService struct {
	segmenter Segmenter
	recorder  Recorder
	log       logger.Logger
	jobs      int
	outDir    string
	suffix    string
	mu        sync.Mutex
}

// NewProcessingService creates a service running at most jobs files at once.
// recorder may be nil to skip history.
func NewProcessingService(segmenter Segmenter, recorder Recorder, log logger.Logger, jobs int, outDir, suffix string) *ProcessingService {
	if jobs < 1 {
		jobs = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProcessingService{
		segmenter: segmenter,
		recorder:  recorder,
		log:       log,
		jobs:      jobs,
		outDir:    outDir,
		suffix:    suffix,
	}
}

// ProcessFiles segments every path. A failing file does not stop the others;
// its error is reported in its FileResult. Results keep the input order.
func (ps *ProcessingService) ProcessFiles(ctx context.Context, paths []string) []FileResult {
	results := make([]FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(ps.jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = ps.processFile(ctx, path)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	ps.log.Info(component, "batch completed", map[string]interface{}{
		"files":  len(paths),
		"failed": failed,
		"jobs":   ps.jobs,
	})
	return results
}

func (ps *ProcessingService) processFile(ctx context.Context, path string) FileResult {
	fr := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		fr.Err = err
		return fr
	}

	output := pipeline.OutputPath(path, ps.outDir, ps.suffix)
	if output == path {
		fr.Err = fmt.Errorf("output path %s would overwrite the input", output)
		return fr
	}

	result, err := ps.segmenter.Segment(ctx, path, output)
	if err != nil {
		ps.log.Error(component, err, map[string]interface{}{"path": path})
		fr.Err = err
		return fr
	}
	fr.Result = result

	if ps.recorder != nil {
		// sqlite allows a single writer at a time.
		ps.mu.Lock()
		fr.Run, err = ps.recorder.Record(result)
		ps.mu.Unlock()
		if err != nil {
			ps.log.Warning(component, "run not recorded", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
	return fr
}

// Failed returns the results that carry an error.
func Failed(results []FileResult) []FileResult {
	var out []FileResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
