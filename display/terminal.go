// Package display holds the interactive sinks: a full-screen terminal view
// and a desktop window.
package display

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/model"
)

var (
	aliveStyle  = tcell.StyleDefault.Background(tcell.ColorWhite)
	deadStyle   = tcell.StyleDefault.Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Terminal draws every generation on a tcell screen, two columns per cell
type Terminal struct {
	screen tcell.Screen
	sim    *game.Simulation
}

// NewTerminal wraps an initialised screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// OpenTerminal creates and initialises the terminal screen
func OpenTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[OpenTerminal] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[OpenTerminal] failed to initialize screen")
	}
	screen.Clear()
	return NewTerminal(screen), nil
}

// Consume draws g and a status line below it, clipped to the screen
func (t *Terminal) Consume(generation int, g *model.Grid) error {
	sw, sh := t.screen.Size()
	for y := range min(g.Height(), sh) {
		for x := range min(g.Width(), sw/2) {
			style := deadStyle
			if g.Get(x, y) {
				style = aliveStyle
			}
			t.screen.SetContent(x*2, y, ' ', nil, style)
			t.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}

	if g.Height() < sh {
		t.drawStatus(g.Height(), sw, t.statusLine(generation, g))
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) statusLine(generation int, g *model.Grid) string {
	status := game.StatusActive
	if t.sim != nil {
		status = t.sim.Status()
	}
	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | q to quit",
		generation, g.CountLivingCells(), g.Density()*100, status)
}

func (t *Terminal) drawStatus(row, width int, line string) {
	col := 0
	for _, r := range line {
		if col >= width {
			break
		}
		t.screen.SetContent(col, row, r, nil, statusStyle)
		col++
	}
	for ; col < width; col++ {
		t.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	}
}

// Run drives sim on its interval while listening for q, Esc or Ctrl+C.
// It returns when the user quits, ctx is cancelled or the simulation is done.
func (t *Terminal) Run(ctx context.Context, sim *game.Simulation) error {
	t.sim = sim
	sim.AddSink(t)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// wake the event loop once the simulation stops
		defer t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return sim.Run(ctx)
	})
	eg.Go(func() error {
		t.pollEvents(cancel)
		return nil
	})
	return eg.Wait()
}

func (t *Terminal) pollEvents(quit context.CancelFunc) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				quit()
				return
			}
		}
	}
}

// Close restores the terminal
func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}
