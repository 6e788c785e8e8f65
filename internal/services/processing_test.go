package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bregman-segmenter/internal/models"
	"bregman-segmenter/internal/store"
)

type fakeSegmenter struct {
	mu       sync.Mutex
	outputs  map[string]string
	active   int32
	peak     int32
	failFor  string
	duration time.Duration
}

func (f *fakeSegmenter) Segment(ctx context.Context, in, out string) (*models.ProcessingResult, error) {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, n) {
			break
		}
	}
	time.Sleep(f.duration)

	f.mu.Lock()
	f.outputs[in] = out
	f.mu.Unlock()

	if in == f.failFor {
		return nil, errors.New("decode failed")
	}
	return &models.ProcessingResult{
		Input:      &models.ImageData{Path: in},
		OutputPath: out,
	}, nil
}

type fakeRecorder struct {
	recorded []string
}

func (r *fakeRecorder) Record(res *models.ProcessingResult) (*store.Run, error) {
	r.recorded = append(r.recorded, res.Input.Path)
	return &store.Run{InputPath: res.Input.Path}, nil
}

func TestProcessFilesCollectsFailures(t *testing.T) {
	seg := &fakeSegmenter{outputs: map[string]string{}, failFor: "b.png"}
	rec := &fakeRecorder{}
	ps := NewProcessingService(seg, rec, nil, 2, "", "seg")

	results := ps.ProcessFiles(context.Background(), []string{"a.png", "b.png", "c.png"})

	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, want := range []string{"a.png", "b.png", "c.png"} {
		if results[i].Path != want {
			t.Errorf("result %d path %q, want %q", i, results[i].Path, want)
		}
	}
	if results[1].Err == nil || results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unexpected errors: %v %v %v", results[0].Err, results[1].Err, results[2].Err)
	}
	if failed := Failed(results); len(failed) != 1 || failed[0].Path != "b.png" {
		t.Errorf("Failed = %+v", failed)
	}
	if len(rec.recorded) != 2 {
		t.Errorf("recorded %v, want two successful runs", rec.recorded)
	}
	if results[0].Run == nil || results[0].Run.InputPath != "a.png" {
		t.Errorf("run not attached: %+v", results[0].Run)
	}
	if seg.outputs["a.png"] != "a_seg.png" {
		t.Errorf("output for a.png = %q", seg.outputs["a.png"])
	}
}

func TestProcessFilesRespectsJobLimit(t *testing.T) {
	seg := &fakeSegmenter{outputs: map[string]string{}, duration: 5 * time.Millisecond}
	ps := NewProcessingService(seg, nil, nil, 2, t.TempDir(), "seg")

	paths := []string{"1.png", "2.png", "3.png", "4.png", "5.png", "6.png"}
	ps.ProcessFiles(context.Background(), paths)

	if peak := atomic.LoadInt32(&seg.peak); peak > 2 {
		t.Errorf("peak concurrency %d exceeds 2 jobs", peak)
	}
	if len(seg.outputs) != len(paths) {
		t.Errorf("processed %d files, want %d", len(seg.outputs), len(paths))
	}
}

func TestProcessFilesOutDir(t *testing.T) {
	seg := &fakeSegmenter{outputs: map[string]string{}}
	dir := t.TempDir()
	ps := NewProcessingService(seg, nil, nil, 1, dir, "mask")

	ps.ProcessFiles(context.Background(), []string{"/data/cell.tif"})
	if want := filepath.Join(dir, "cell_mask.tif"); seg.outputs["/data/cell.tif"] != want {
		t.Errorf("output = %q, want %q", seg.outputs["/data/cell.tif"], want)
	}
}

func TestProcessFilesCancelled(t *testing.T) {
	seg := &fakeSegmenter{outputs: map[string]string{}}
	ps := NewProcessingService(seg, nil, nil, 1, "", "seg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ps.ProcessFiles(ctx, []string{"a.png"})
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", results[0].Err)
	}
	if len(seg.outputs) != 0 {
		t.Error("segmenter ran after cancellation")
	}
}
