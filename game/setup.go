package game

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

// Glider seed position
const (
	gliderRow = 1
	gliderCol = 1
)

// InitialGrid builds generation 0: a single glider at (1,1) or a random grid
func InitialGrid(config utils.Config) (*model.Grid, error) {
	if config.Glider {
		grid, err := model.GliderGrid(config.GridSize, gliderRow, gliderCol)
		if err != nil {
			return nil, errors.Wrap(err, "[InitialGrid] failed to seed glider")
		}
		return grid, nil
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid, err := model.RandomGrid(config.GridSize, config.RandomDensity, model.NewRNG(seed))
	if err != nil {
		return nil, errors.Wrap(err, "[InitialGrid] failed to seed random grid")
	}
	return grid, nil
}

// DisplayGameInfo shows the initial game information
func DisplayGameInfo(w io.Writer, config utils.Config, grid *model.Grid) {
	seed := "random"
	if config.Glider {
		seed = fmt.Sprintf("glider at (%d,%d)", gliderRow, gliderCol)
	}
	fmt.Fprintf(w, "Features: Memory Pool: %v, Parallel: %v, Interval: %v\n",
		config.UseMemoryPool, config.UseParallel, config.TickInterval())
	fmt.Fprintf(w, "Grid: %dx%d (toroidal) | Seed: %s | Initial living cells: %d\n",
		grid.Width(), grid.Height(), seed, grid.CountLivingCells())
	if config.MovFile != "" {
		fmt.Fprintf(w, "Exporting %d frames at %d fps to %s\n", config.Frames, config.FPS, config.MovFile)
	}
}
