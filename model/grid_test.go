package model

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func gridFrom(t *testing.T, size int, alive ...[2]int) *Grid {
	t.Helper()
	g := NewGrid(size)
	for _, c := range alive {
		g.Set(c[0], c[1], true)
	}
	return g
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g, err := RandomGrid(16, 0.4, NewRNG(7))
	if err != nil {
		t.Fatalf("RandomGrid: %v", err)
	}
	before := g.Clone()

	first := Step(g)
	second := Step(g)

	if !g.Equal(before) {
		t.Fatal("Step mutated its input")
	}
	if !first.Equal(second) {
		t.Fatal("Step is not deterministic for the same input")
	}
}

func TestStepPreservesDimensions(t *testing.T) {
	for _, size := range []int{1, 2, 3, 9, 31} {
		next := Step(NewGrid(size))
		if next.Width() != size || next.Height() != size {
			t.Fatalf("size %d: got %dx%d", size, next.Width(), next.Height())
		}
	}
}

func TestCountNeighborsWrapsAround(t *testing.T) {
	const n = 6
	g := gridFrom(t, n, [2]int{n - 1, n - 1})
	if got := g.CountNeighbors(0, 0); got != 1 {
		t.Fatalf("corner (N-1,N-1) should neighbor (0,0), count=%d", got)
	}

	g = gridFrom(t, n, [2]int{n - 1, n - 1}, [2]int{0, n - 1}, [2]int{n - 1, 0})
	if got := g.CountNeighbors(0, 0); got != 3 {
		t.Fatalf("expected 3 wrapped neighbors of (0,0), got %d", got)
	}
	if !Step(g).Get(0, 0) {
		t.Fatal("(0,0) should be born from three wrapped neighbors")
	}
}

func TestBlockIsStillLife(t *testing.T) {
	g := gridFrom(t, 6, [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3}, [2]int{3, 3})
	if next := Step(g); !next.Equal(g) {
		t.Fatal("2x2 block changed after one step")
	}
}

func TestGliderTranslatesEveryFourSteps(t *testing.T) {
	const n = 10
	g, err := GliderGrid(n, 1, 1)
	if err != nil {
		t.Fatalf("GliderGrid: %v", err)
	}

	for range 4 {
		g = Step(g)
	}

	want, err := GliderGrid(n, 2, 2)
	if err != nil {
		t.Fatalf("GliderGrid: %v", err)
	}
	if !g.Equal(want) {
		var got, exp bytes.Buffer
		NewTextRenderer(&got, false).Consume(4, g)
		NewTextRenderer(&exp, false).Consume(0, want)
		t.Fatalf("glider did not shift by (+1,+1)\ngot:\n%s\nwant:\n%s", got.String(), exp.String())
	}
	if living := g.CountLivingCells(); living != 5 {
		t.Fatalf("glider should keep 5 cells, got %d", living)
	}
}

func TestBirthRule(t *testing.T) {
	tests := []struct {
		name      string
		neighbors [][2]int
		want      bool
	}{
		{"two neighbors", [][2]int{{1, 1}, {3, 1}}, false},
		{"three neighbors", [][2]int{{1, 1}, {3, 1}, {2, 3}}, true},
		{"four neighbors", [][2]int{{1, 1}, {3, 1}, {1, 3}, {3, 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFrom(t, 9, tt.neighbors...)
			if got := Step(g).Get(2, 2); got != tt.want {
				t.Fatalf("dead cell with %d neighbors alive=%v, want %v", len(tt.neighbors), got, tt.want)
			}
		})
	}
}

func TestSurvivalRule(t *testing.T) {
	around := [][2]int{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}
	for count := 0; count <= 8; count++ {
		g := gridFrom(t, 9, around[:count]...)
		g.Set(2, 2, true)

		want := count == 2 || count == 3
		if got := Step(g).Get(2, 2); got != want {
			t.Fatalf("live cell with %d neighbors alive=%v, want %v", count, got, want)
		}
	}
}

func TestStepParallelMatchesStep(t *testing.T) {
	pool := NewGridPool()
	g, err := RandomGrid(37, 0.3, NewRNG(3))
	if err != nil {
		t.Fatalf("RandomGrid: %v", err)
	}

	for gen := range 20 {
		seq := Step(g)
		par := StepParallel(g, pool)
		if !seq.Equal(par) {
			t.Fatalf("generation %d: parallel step diverged", gen+1)
		}
		GridToPool(g, pool)
		g = par
	}

	if par := StepParallel(g, nil); !par.Equal(Step(g)) {
		t.Fatal("parallel step without pool diverged")
	}
}

func TestRandomGridDensity(t *testing.T) {
	const (
		trials = 20
		size   = 50
		p      = DefaultAliveProbability
	)
	rng := NewRNG(42)

	var alive, total int
	for range trials {
		g, err := RandomGrid(size, p, rng)
		if err != nil {
			t.Fatalf("RandomGrid: %v", err)
		}
		alive += g.CountLivingCells()
		total += size * size
	}

	if frac := float64(alive) / float64(total); math.Abs(frac-p) > 0.01 {
		t.Fatalf("alive fraction %.4f too far from %.2f", frac, p)
	}
}

func TestRandomGridDeterministicForSeed(t *testing.T) {
	a, _ := RandomGrid(20, 0.5, NewRNG(99))
	b, _ := RandomGrid(20, 0.5, NewRNG(99))
	if !a.Equal(b) {
		t.Fatal("same seed produced different grids")
	}
}

func TestRandomGridRejectsInvalidInput(t *testing.T) {
	if _, err := RandomGrid(0, 0.2, nil); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for size 0, got %v", err)
	}
	if _, err := RandomGrid(10, 1.5, nil); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for probability 1.5, got %v", err)
	}
}

func TestGliderGridPlacement(t *testing.T) {
	g, err := GliderGrid(9, 1, 1)
	if err != nil {
		t.Fatalf("GliderGrid: %v", err)
	}

	for y := range 9 {
		for x := range 9 {
			want := false
			if y >= 1 && y < 4 && x >= 1 && x < 4 {
				want = GliderPattern[y-1][x-1]
			}
			if got := g.Get(x, y); got != want {
				t.Fatalf("cell (%d,%d) alive=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestGliderGridOutOfBounds(t *testing.T) {
	tests := []struct {
		name           string
		size, row, col int
	}{
		{"row overflow", 9, 7, 0},
		{"col overflow", 9, 0, 7},
		{"grid too small", 2, 0, 0},
		{"negative row", 9, -1, 0},
		{"negative col", 9, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GliderGrid(tt.size, tt.row, tt.col)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}

	if _, err := GliderGrid(9, 6, 6); err != nil {
		t.Fatalf("glider flush with the far corner should fit: %v", err)
	}
}

func TestWrap(t *testing.T) {
	g := NewGrid(5)
	x, y := g.Wrap(-1, 5)
	if x != 4 || y != 0 {
		t.Fatalf("Wrap(-1, 5) = (%d, %d), want (4, 0)", x, y)
	}
}

func TestHashTracksState(t *testing.T) {
	g := NewGrid(8)
	empty := g.Hash()
	g.Set(3, 3, true)
	if g.Hash() == empty {
		t.Fatal("hash did not change after setting a cell")
	}
	if g.Clone().Hash() != g.Hash() {
		t.Fatal("clone hash differs")
	}
}

func TestGridPoolReturnsClearedGrid(t *testing.T) {
	pool := NewGridPool()
	g := pool.Get(4, 4)
	g.Set(1, 1, true)
	pool.Put(g)

	again := pool.Get(6, 3)
	if again.Width() != 6 || again.Height() != 3 {
		t.Fatalf("pooled grid has dimensions %dx%d", again.Width(), again.Height())
	}
	if again.CountLivingCells() != 0 {
		t.Fatal("pooled grid was not cleared")
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	g := gridFrom(t, 3, [2]int{0, 0}, [2]int{2, 1})

	if err := NewTextRenderer(&buf, false).Consume(7, g); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Gen: 7 | Living: 2") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != gridPosBlock+gridPosEmpty+gridPosEmpty {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[2] != gridPosEmpty+gridPosEmpty+gridPosBlock {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}
