package models

import (
	"sync"
	"time"

	"bregman-segmenter/internal/grid"
)

// ImageData is a decoded grayscale image. Pixels has one row per image row
// and holds gray levels in [0,255].
type ImageData struct {
	Path     string
	Format   string
	Width    int
	Height   int
	Pixels   *grid.Grid
	LoadTime time.Time
}

// ResultRepository keeps the most recent processing results of a session.
type ResultRepository struct {
	mu             sync.RWMutex
	results        []ProcessingResult
	maxHistorySize int
}

func NewResultRepository(maxHistorySize int) *ResultRepository {
	if maxHistorySize <= 0 {
		maxHistorySize = 10
	}
	return &ResultRepository{
		results:        make([]ProcessingResult, 0, maxHistorySize),
		maxHistorySize: maxHistorySize,
	}
}

// Add stores a result, dropping the oldest one when full.
func (r *ResultRepository) Add(result ProcessingResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.results) >= r.maxHistorySize {
		copy(r.results, r.results[1:])
		r.results = r.results[:len(r.results)-1]
	}
	r.results = append(r.results, result)
}

func (r *ResultRepository) All() []ProcessingResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ProcessingResult, len(r.results))
	copy(out, r.results)
	return out
}

func (r *ResultRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.results)
}
