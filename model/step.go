package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-torus/rules"
)

// Step computes the next generation into a fresh grid. The input is only read.
func Step(g *Grid) *Grid {
	next := newGrid(g.width, g.height)
	g.stepRows(next, 0, g.height)
	return next
}

// StepParallel computes the same generation as Step, splitting rows across
// one worker per CPU. The result buffer comes from pool when it is non-nil.
func StepParallel(g *Grid, pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = newGrid(g.width, g.height)
	}

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			g.stepRows(next, startRow, endRow)
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()

	return next
}

// stepRows writes every cell of rows [startRow, endRow) into next
func (g *Grid) stepRows(next *Grid, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			next.cells[y][x] = rules.Conway(g.CountNeighbors(x, y), g.cells[y][x])
		}
	}
}
