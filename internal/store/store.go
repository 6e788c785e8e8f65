// Package store keeps a history of segmentation runs in SQLite.
package store

import (
	"fmt"
	"time"

	"bregman-segmenter/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// A Run is one recorded segmentation.
type Run struct {
	gorm.Model
	InputPath          string
	OutputPath         string
	Algorithm          string
	Width              int
	Height             int
	Mu                 float64
	Lambda             float64
	Iterations         int
	Diff               float64
	C1                 float64
	C2                 float64
	ForegroundFraction float64
	Converged          bool
	EmptyRegion        bool
	DurationMS         int64
}

// Duration returns the recorded processing time.
func (r *Run) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path, creating the file if needed.
func Open(path string) (*Store, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Migrate creates or upgrades the schema.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Run{}).Error
}

// Record stores a finished processing result.
func (s *Store) Record(result *models.ProcessingResult) (*Run, error) {
	run := NewRun(result)
	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record run for %s: %w", run.InputPath, err)
	}
	return run, nil
}

// List returns the most recent runs first. A limit of zero or less returns
// all of them.
func (s *Store) List(limit int) (runs []Run, err error) {
	q := s.db.Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err = q.Find(&runs).Error
	return
}

// FindByInput returns every run of the given input file, newest first.
func (s *Store) FindByInput(path string) (runs []Run, err error) {
	err = s.db.Where("input_path = ?", path).Order("id desc").Find(&runs).Error
	return
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRun flattens a processing result into a history row.
func NewRun(result *models.ProcessingResult) *Run {
	run := &Run{
		OutputPath: result.OutputPath,
		Algorithm:  result.Algorithm,
		DurationMS: result.ProcessTime.Milliseconds(),
		Mu:         numberParam(result.Parameters, "mu"),
		Lambda:     numberParam(result.Parameters, "lambda"),
	}
	if in := result.Input; in != nil {
		run.InputPath = in.Path
		run.Width = in.Width
		run.Height = in.Height
	}
	if seg := result.Segmentation; seg != nil {
		run.Iterations = seg.Iterations
		run.Diff = seg.Diff
		run.C1 = seg.C1
		run.C2 = seg.C2
		run.Converged = seg.Converged
		run.EmptyRegion = seg.EmptyRegion
	}
	if m := result.Metrics; m != nil {
		run.ForegroundFraction = m.ForegroundFraction
	}
	return run
}

func numberParam(params map[string]interface{}, name string) float64 {
	switch v := params[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
