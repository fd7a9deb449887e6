package export

import (
	"bufio"
	"image"
	"image/gif"
	"os"

	"github.com/pkg/errors"
)

// GIFEncoder buffers frames and writes a looping GIF on Close
type GIFEncoder struct {
	file  *os.File
	delay int // hundredths of a second per frame
	anim  gif.GIF
}

// NewGIFEncoder creates path for writing
func NewGIFEncoder(path string, fps int) (*GIFEncoder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewGIFEncoder] failed to create file: %+v", path)
	}
	return &GIFEncoder{file: f, delay: max(1, 100/fps)}, nil
}

// WriteFrame appends a frame
func (e *GIFEncoder) WriteFrame(frame *image.Paletted) error {
	e.anim.Image = append(e.anim.Image, frame)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

// Close encodes the buffered frames and closes the file
func (e *GIFEncoder) Close() error {
	w := bufio.NewWriter(e.file)
	if err := gif.EncodeAll(w, &e.anim); err != nil {
		e.file.Close()
		return errors.Wrap(err, "[GIFEncoder.Close] failed to encode animation")
	}
	if err := w.Flush(); err != nil {
		e.file.Close()
		return errors.Wrap(err, "[GIFEncoder.Close] failed to flush animation")
	}
	return e.file.Close()
}
