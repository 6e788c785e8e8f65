package splitbregman

import (
	"golang.org/x/sync/errgroup"
)

// forEachRow calls fn for every row in [0, rows). With more than one worker
// the rows are cut into contiguous bands processed concurrently; fn must
// only write data owned by its row.
func forEachRow(rows, workers int, fn func(row int)) {
	if workers <= 1 || rows < 2 {
		for r := 0; r < rows; r++ {
			fn(r)
		}
		return
	}
	if workers > rows {
		workers = rows
	}

	var g errgroup.Group
	g.SetLimit(workers)
	band := (rows + workers - 1) / workers
	for lo := 0; lo < rows; lo += band {
		lo, hi := lo, min(lo+band, rows)
		g.Go(func() error {
			for r := lo; r < hi; r++ {
				fn(r)
			}
			return nil
		})
	}
	_ = g.Wait()
}
