package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// ffmpegBinary is looked up on PATH
var ffmpegBinary = "ffmpeg"

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process that encodes
// them with libx264
type FFmpegEncoder struct {
	path   string
	fps    int
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
	rgba   []byte
}

// NewFFmpegEncoder checks that ffmpeg is available; the process starts with
// the first frame, once the frame size is known
func NewFFmpegEncoder(path string, fps int) (*FFmpegEncoder, error) {
	if _, err := exec.LookPath(ffmpegBinary); err != nil {
		return nil, errors.Wrap(err, "[NewFFmpegEncoder] ffmpeg is required for non-gif exports")
	}
	return &FFmpegEncoder{path: path, fps: fps}, nil
}

// ffmpegArgs builds the command line for a raw RGBA stream of the given size
func ffmpegArgs(path string, fps, width, height int) []string {
	return []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-vcodec", "libx264",
		"-pix_fmt", "yuv420p",
		path,
	}
}

func (e *FFmpegEncoder) start(width, height int) error {
	// yuv420p needs even dimensions
	e.width, e.height = width+width%2, height+height%2
	e.rgba = make([]byte, 4*e.width*e.height)

	e.cmd = exec.Command(ffmpegBinary, ffmpegArgs(e.path, e.fps, e.width, e.height)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "[FFmpegEncoder.start] failed to open stdin pipe")
	}
	e.stdin = stdin

	if err = e.cmd.Start(); err != nil {
		return errors.Wrap(err, "[FFmpegEncoder.start] failed to start ffmpeg")
	}
	return nil
}

// WriteFrame converts frame to RGBA and streams it to ffmpeg
func (e *FFmpegEncoder) WriteFrame(frame *image.Paletted) error {
	b := frame.Bounds()
	if e.cmd == nil {
		if err := e.start(b.Dx(), b.Dy()); err != nil {
			return err
		}
	}

	fillRGBA(e.rgba, e.width, frame)
	if _, err := e.stdin.Write(e.rgba); err != nil {
		return errors.Wrapf(err, "[FFmpegEncoder.WriteFrame] ffmpeg rejected frame: %s", e.stderr.String())
	}
	return nil
}

// Close ends the stream and waits for ffmpeg to finish the file
func (e *FFmpegEncoder) Close() error {
	if e.cmd == nil {
		return nil
	}
	if err := e.stdin.Close(); err != nil {
		return errors.Wrap(err, "[FFmpegEncoder.Close] failed to close stdin")
	}
	if err := e.cmd.Wait(); err != nil {
		return errors.Wrapf(err, "[FFmpegEncoder.Close] ffmpeg failed: %s", e.stderr.String())
	}
	return nil
}

// fillRGBA expands a paletted frame into buf, a stride x rows RGBA buffer.
// Padding pixels keep the dead color.
func fillRGBA(buf []byte, stride int, frame *image.Paletted) {
	for i := 0; i < len(buf); i += 4 {
		buf[i+0], buf[i+1], buf[i+2], buf[i+3] = DeadColor.R, DeadColor.G, DeadColor.B, DeadColor.A
	}

	b := frame.Bounds()
	for y := range b.Dy() {
		for x := range b.Dx() {
			if frame.Pix[y*frame.Stride+x] == 0 {
				continue
			}
			base := (y*stride + x) * 4
			buf[base+0] = AliveColor.R
			buf[base+1] = AliveColor.G
			buf[base+2] = AliveColor.B
			buf[base+3] = AliveColor.A
		}
	}
}
