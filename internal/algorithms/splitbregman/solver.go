// Package splitbregman segments a grayscale image into foreground and
// background by minimising a two-phase, edge-weighted total variation
// energy with the Split Bregman iteration.
//
// Each outer batch runs InnerIterations passes of
//
//	relax   Gauss-Seidel update of u, clamped to [0,1]
//	shrink  soft-thresholding of the split field (x, y)
//	bregman update of the Bregman variables (bx, by)
//
// followed by a recomputation of the region means c1 and c2. The loop stops
// after MaxIterations batches, or once the root-mean-square change of u over
// a batch is at most Tolerance and at least MinIterations batches have run.
package splitbregman

import (
	"context"
	"fmt"
	"math"
	"time"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/logger"

	"gonum.org/v1/gonum/floats"
)

const component = "SplitBregman"

// Batch records the state after one outer batch.
type Batch struct {
	Iteration int
	Diff      float64
	MaxDelta  float64
	C1        float64
	C2        float64
}

// Result is the outcome of a segmentation run. U is owned by the caller.
type Result struct {
	U          *grid.Grid
	C1         float64
	C2         float64
	Iterations int
	// Diff is the RMS change of u over the last batch.
	Diff float64
	// MaxDelta is the largest squared single-pixel change of the last sweep.
	MaxDelta float64
	// Converged is false when the run stopped on MaxIterations.
	Converged bool
	// EmptyRegion is set when a region update found no foreground or no
	// background pixel; see EmptyRegionPolicy.
	EmptyRegion bool
	Trace       []Batch
	Elapsed     time.Duration
}

type Solver struct {
	opts Options
	log  logger.Logger
}

func New(opts Options, log logger.Logger) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Solver{opts: opts, log: log}, nil
}

func (s *Solver) Options() Options { return s.opts }

// Segment runs the solver with default options.
func Segment(f, edge *grid.Grid, mu float64) (*grid.Grid, error) {
	s, err := New(DefaultOptions(), nil)
	if err != nil {
		return nil, err
	}
	res, err := s.Run(context.Background(), f, edge, mu)
	if err != nil {
		return nil, err
	}
	return res.U, nil
}

func validateInput(f, edge *grid.Grid, mu float64) error {
	if f == nil || edge == nil || f.Rows <= 0 || f.Cols <= 0 {
		return ErrEmptyInput
	}
	if !f.SameShape(edge) {
		return fmt.Errorf("%w: image %dx%d, edge map %dx%d", ErrShapeMismatch, f.Rows, f.Cols, edge.Rows, edge.Cols)
	}
	if !(mu > 0) || math.IsInf(mu, 0) {
		return fmt.Errorf("%w: mu must be positive and finite, got %v", ErrInvalidParameter, mu)
	}
	return nil
}

// Run segments f using the edge-weight map edge and fidelity weight mu.
// Neither input is modified. The context is checked between batches.
func (s *Solver) Run(ctx context.Context, f, edge *grid.Grid, mu float64) (*Result, error) {
	if err := validateInput(f, edge, mu); err != nil {
		return nil, err
	}
	start := time.Now()
	opts := s.opts

	st := newState(f, edge)
	st.initialGuess(opts.RegionThreshold, opts.EmptyRegion)

	s.log.Debug(component, "segmentation started", map[string]interface{}{
		"rows":   f.Rows,
		"cols":   f.Cols,
		"mu":     mu,
		"lambda": opts.Lambda,
		"c1":     st.c1,
		"c2":     st.c2,
	})

	ratio := mu / opts.Lambda
	res := &Result{Trace: make([]Batch, 0, opts.MinIterations)}
	var diff, maxDelta float64
	iter := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("segmentation stopped after %d iterations: %w", iter, err)
		}

		st.prev.CopyFrom(st.u)
		for k := 0; k < opts.InnerIterations; k++ {
			maxDelta = st.relax(ratio)
			st.shrink(opts.Lambda, opts.Workers)
			st.bregman(opts.Workers)
		}
		st.updateRegions(opts.RegionThreshold, opts.EmptyRegion)
		diff = rmsChange(st.u, st.prev)
		iter++

		res.Trace = append(res.Trace, Batch{
			Iteration: iter,
			Diff:      diff,
			MaxDelta:  maxDelta,
			C1:        st.c1,
			C2:        st.c2,
		})
		s.log.Debug(component, "batch finished", map[string]interface{}{
			"iteration": iter,
			"diff":      diff,
			"max_delta": maxDelta,
			"c1":        st.c1,
			"c2":        st.c2,
		})

		if iter >= opts.MaxIterations || (diff <= opts.Tolerance && iter >= opts.MinIterations) {
			break
		}
	}

	res.U = st.u
	res.C1, res.C2 = st.c1, st.c2
	res.Iterations = iter
	res.Diff = diff
	res.MaxDelta = maxDelta
	res.Converged = diff <= opts.Tolerance
	res.EmptyRegion = st.emptyRegion
	res.Elapsed = time.Since(start)

	if res.EmptyRegion {
		s.log.Warning(component, "a region was empty during the run, its mean was substituted", map[string]interface{}{
			"policy": opts.EmptyRegion.String(),
			"c1":     res.C1,
			"c2":     res.C2,
		})
	}
	s.log.Info(component, "segmentation finished", map[string]interface{}{
		"iterations": iter,
		"diff":       diff,
		"converged":  res.Converged,
		"c1":         res.C1,
		"c2":         res.C2,
		"elapsed_ms": res.Elapsed.Milliseconds(),
	})
	return res, nil
}

// rmsChange is the root-mean-square difference between two equally shaped
// grids.
func rmsChange(a, b *grid.Grid) float64 {
	if a.Len() == 0 {
		return 0
	}
	return floats.Distance(a.Data, b.Data, 2) / math.Sqrt(float64(a.Len()))
}
