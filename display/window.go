//go:build ebiten

package display

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/model"
)

var hudColor = color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff}

// Window adapts a simulation to the ebiten.Game interface
type Window struct {
	ctx   context.Context
	sim   *game.Simulation
	step  *game.FixedStep
	img   *ebiten.Image
	buf   []byte
	scale int

	onColor  color.Color
	offColor color.Color

	generation int
	living     int
	paused     bool
	tickOnce   bool
	hud        bool
}

// newWindow registers the window as a sink of sim
func newWindow(ctx context.Context, sim *game.Simulation, scale int) *Window {
	g := sim.Grid()
	w := &Window{
		ctx:      ctx,
		sim:      sim,
		step:     game.NewFixedStep(sim.Interval()),
		img:      ebiten.NewImage(g.Width(), g.Height()),
		buf:      make([]byte, 4*g.Width()*g.Height()),
		scale:    scale,
		onColor:  color.White,
		offColor: color.Black,
		hud:      true,
	}
	sim.AddSink(w)
	return w
}

// RunWindow opens a desktop window and steps sim on its interval until the
// window is closed, Q or Esc is pressed, ctx is cancelled or sim is done
func RunWindow(ctx context.Context, sim *game.Simulation, scale int) error {
	w := newWindow(ctx, sim, scale)
	if err := sim.Start(); err != nil {
		return err
	}

	g := sim.Grid()
	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetWindowSize(g.Width()*scale, g.Height()*scale)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[RunWindow] window failed")
	}
	return nil
}

// Consume copies the generation into the pixel buffer
func (w *Window) Consume(generation int, g *model.Grid) error {
	fillCellsRGBA(w.buf, g, w.onColor, w.offColor)
	w.generation = generation
	w.living = g.CountLivingCells()
	return nil
}

// Update handles input and advances the simulation when its interval elapsed
func (w *Window) Update() error {
	if w.ctx.Err() != nil || w.sim.Done() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused = !w.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		w.hud = !w.hud
	}

	due := w.step.ShouldStep()
	if (!w.paused && due) || w.tickOnce {
		w.tickOnce = false
		return w.sim.Tick()
	}
	return nil
}

// Draw renders the latest generation
func (w *Window) Draw(screen *ebiten.Image) {
	w.img.WritePixels(w.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)

	if w.hud {
		line := fmt.Sprintf("Gen: %d  Living: %d  %s", w.generation, w.living, w.sim.Status())
		if w.paused {
			line += "  [paused]"
		}
		text.Draw(screen, line, basicfont.Face7x13, 4, 14, hudColor)
	}
}

// Layout returns the logical screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	g := w.sim.Grid()
	return g.Width() * w.scale, g.Height() * w.scale
}
