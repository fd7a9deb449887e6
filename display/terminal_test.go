package display

import (
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	return screen
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func rowText(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestTerminalConsumeDrawsCells(t *testing.T) {
	screen := newSimScreen(t, 80, 12)
	defer screen.Fini()

	g, _ := model.GliderGrid(9, 1, 1)
	term := NewTerminal(screen)
	if err := term.Consume(3, g); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	for y := range 9 {
		for x := range 9 {
			want := tcell.ColorBlack
			if g.Get(x, y) {
				want = tcell.ColorWhite
			}
			if got := background(screen, x*2, y); got != want {
				t.Fatalf("cell (%d,%d) background %v, want %v", x, y, got, want)
			}
			if got := background(screen, x*2+1, y); got != want {
				t.Fatalf("cell (%d,%d) second column background %v, want %v", x, y, got, want)
			}
		}
	}

	if status := rowText(screen, 9, 80); !strings.HasPrefix(status, "Gen: 3 | Living: 5") {
		t.Fatalf("unexpected status line %q", status)
	}
}

func TestTerminalConsumeClipsToScreen(t *testing.T) {
	screen := newSimScreen(t, 6, 2)
	defer screen.Fini()

	g := model.NewGrid(10)
	g.Set(9, 9, true)
	if err := NewTerminal(screen).Consume(0, g); err != nil {
		t.Fatalf("Consume: %v", err)
	}
}

func TestTerminalRunStopsWhenSimulationIsDone(t *testing.T) {
	screen := newSimScreen(t, 40, 20)

	cfg := utils.DefaultConfig()
	cfg.GridSize = 10
	cfg.IntervalMS = 1
	cfg.Glider = true
	cfg.MaxGenerations = 4

	grid, _ := game.InitialGrid(cfg)
	sim := game.New(cfg, grid)
	term := NewTerminal(screen)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := term.Run(ctx, sim); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 4 {
		t.Fatalf("stopped at generation %d, want 4", sim.Generation())
	}
	if err := sim.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestTerminalRunQuitsOnKey(t *testing.T) {
	screen := newSimScreen(t, 40, 20)
	defer screen.Fini()

	cfg := utils.DefaultConfig()
	cfg.GridSize = 10
	cfg.IntervalMS = 1000
	cfg.Glider = true

	grid, _ := game.InitialGrid(cfg)
	sim := game.New(cfg, grid)
	term := NewTerminal(screen)

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), sim) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestFillCellsRGBA(t *testing.T) {
	g := model.NewGrid(2)
	g.Set(1, 0, true)
	buf := make([]byte, 4*4)

	fillCellsRGBA(buf, g, color.White, color.Black)

	want := []byte{
		0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0xff,
		0, 0, 0, 0xff, 0, 0, 0, 0xff,
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}
