package display

import (
	"image/color"

	"github.com/sheikhrachel/go-gol-torus/model"
)

// fillCellsRGBA converts the grid into RGBA pixels in buf, one pixel per cell
func fillCellsRGBA(buf []byte, g *model.Grid, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	w := g.Width()
	for y := range g.Height() {
		for x := range w {
			base := (y*w + x) * 4
			if g.Get(x, y) {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}
