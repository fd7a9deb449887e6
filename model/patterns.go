package model

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
)

// GliderPattern is the five-cell glider, rows top to bottom. It travels one
// cell down and right every 4 generations.
var GliderPattern = [3][3]bool{
	{false, false, true},
	{true, false, true},
	{false, true, true},
}

// DefaultAliveProbability is the chance a cell starts alive in a random grid
const DefaultAliveProbability = 0.2

// RandomGrid returns a size x size grid where each cell is independently alive
// with probability aliveProbability. A nil rng uses a time-seeded source.
func RandomGrid(size int, aliveProbability float64, rng *rand.Rand) (*Grid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidGrid, "[RandomGrid] size must be positive, got %d", size)
	}
	if aliveProbability < 0 || aliveProbability > 1 {
		return nil, errors.Wrapf(ErrInvalidGrid, "[RandomGrid] alive probability must be in [0, 1], got %v", aliveProbability)
	}
	if rng == nil {
		rng = NewRNG(time.Now().UnixNano())
	}

	g := NewGrid(size)
	g.Randomize(aliveProbability, rng)
	return g, nil
}

// GliderGrid returns a dead size x size grid with a glider whose top-left
// corner sits at (row, col).
func GliderGrid(size, row, col int) (*Grid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidGrid, "[GliderGrid] size must be positive, got %d", size)
	}

	g := NewGrid(size)
	if err := g.AddGlider(row, col); err != nil {
		return nil, errors.Wrap(err, "[GliderGrid] failed to place glider")
	}
	return g, nil
}

// NewRNG returns a deterministic PCG-backed source for the given seed
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Randomize fills the grid with living cells at the given density
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = rng.Float64() < density
		}
	}
}

// AddGlider stamps the glider pattern with its top-left corner at (row, col).
// The whole 3x3 template must fit; nothing is written otherwise.
func (g *Grid) AddGlider(row, col int) error {
	if row < 0 || col < 0 || row+len(GliderPattern) > g.height || col+len(GliderPattern[0]) > g.width {
		return errors.Wrapf(ErrOutOfBounds, "[AddGlider] 3x3 glider at (%d, %d) does not fit a %dx%d grid",
			row, col, g.width, g.height)
	}

	for dy, line := range GliderPattern {
		for dx, cell := range line {
			g.cells[row+dy][col+dx] = cell
		}
	}
	return nil
}
