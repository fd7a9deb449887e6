package model

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClearScreen = "\033[H\033[2J"
)

// TextRenderer writes each generation to a plain writer as block glyphs
type TextRenderer struct {
	w io.Writer
	// ClearScreen emits an ANSI clear sequence before every frame
	ClearScreen bool
}

// NewTextRenderer creates a renderer writing to w
func NewTextRenderer(w io.Writer, clearScreen bool) *TextRenderer {
	return &TextRenderer{w: w, ClearScreen: clearScreen}
}

// Consume renders the grid for the given generation
func (r *TextRenderer) Consume(generation int, g *Grid) error {
	bw := bufio.NewWriter(r.w)
	if r.ClearScreen {
		bw.WriteString(ansiClearScreen)
	}
	fmt.Fprintf(bw, "Gen: %d | Living: %d | Density: %.1f%%\n",
		generation, g.CountLivingCells(), g.Density()*100)
	r.display(bw, g)
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "[TextRenderer.Consume] failed to write generation %d", generation)
	}
	return nil
}

// display renders the grid rows
func (r *TextRenderer) display(w *bufio.Writer, g *Grid) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
}
