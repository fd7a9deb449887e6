// Package export records generations to an animation file.
package export

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/model"
)

var (
	// AliveColor and DeadColor are the two frame colors
	AliveColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DeadColor  = color.RGBA{A: 0xff}

	palette = color.Palette{DeadColor, AliveColor}
)

// Options controls how frames are written
type Options struct {
	Frames int // generations to record before the file is finalised
	FPS    int
	Scale  int // pixels per cell
}

// Encoder writes a sequence of equally sized frames
type Encoder interface {
	WriteFrame(frame *image.Paletted) error
	Close() error
}

// Exporter is a sink that records the first Frames generations and then
// finalises the file
type Exporter struct {
	path     string
	opts     Options
	encoder  Encoder
	written  int
	finished bool
}

// New opens an exporter for path; .gif is encoded in-process, every other
// extension is handed to ffmpeg
func New(path string, opts Options) (*Exporter, error) {
	if opts.Frames <= 0 || opts.FPS <= 0 || opts.Scale <= 0 {
		return nil, errors.Errorf("[export.New] frames, fps and scale must be positive, got %+v", opts)
	}

	var (
		enc Encoder
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		enc, err = NewGIFEncoder(path, opts.FPS)
	default:
		enc, err = NewFFmpegEncoder(path, opts.FPS)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[export.New] failed to open %s", path)
	}
	return NewWithEncoder(path, opts, enc), nil
}

// NewWithEncoder wraps an already opened encoder
func NewWithEncoder(path string, opts Options, enc Encoder) *Exporter {
	return &Exporter{path: path, opts: opts, encoder: enc}
}

// Path returns the output file
func (e *Exporter) Path() string {
	return e.path
}

// Written returns how many frames have been recorded
func (e *Exporter) Written() int {
	return e.written
}

// Finished reports whether the file has been finalised
func (e *Exporter) Finished() bool {
	return e.finished
}

// Consume records g until the frame budget is spent
func (e *Exporter) Consume(generation int, g *model.Grid) error {
	if e.finished {
		return nil
	}

	if err := e.encoder.WriteFrame(Rasterize(g, e.opts.Scale)); err != nil {
		return errors.Wrapf(err, "[Exporter.Consume] failed to write generation %d to %s", generation, e.path)
	}
	e.written++

	if e.written >= e.opts.Frames {
		return e.Close()
	}
	return nil
}

// Close finalises the file; later calls and frames are ignored
func (e *Exporter) Close() error {
	if e.finished {
		return nil
	}
	e.finished = true
	if err := e.encoder.Close(); err != nil {
		return errors.Wrapf(err, "[Exporter.Close] failed to finalise %s", e.path)
	}
	return nil
}

// Rasterize draws g as a two-color image with scale x scale pixels per cell
func Rasterize(g *model.Grid, scale int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.Width()*scale, g.Height()*scale), palette)
	for y := range g.Height() {
		for x := range g.Width() {
			if !g.Get(x, y) {
				continue // palette index 0 is dead
			}
			for py := y * scale; py < (y+1)*scale; py++ {
				row := img.Pix[py*img.Stride:]
				for px := x * scale; px < (x+1)*scale; px++ {
					row[px] = 1
				}
			}
		}
	}
	return img
}
