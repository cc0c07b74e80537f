package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"

	"cloud-ca/internal/core"

	"github.com/icza/mjpeg"
)

// DefaultJPEGQuality is used when a recorder is created with quality 0.
const DefaultJPEGQuality = 90

// Recorder writes one Motion-JPEG AVI frame per call to AddFrame.
type Recorder struct {
	avi    mjpeg.AviWriter
	frame  *Frame
	opts   jpeg.Options
	buf    bytes.Buffer
	frames int
	closed bool
}

// NewRecorder creates path and prepares an AVI sized for the scaled grid.
func NewRecorder(path string, size core.Size, scale, fps, quality int) (*Recorder, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("video fps=%d must be positive: %w", fps, core.ErrInvalidConfig)
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	frame := NewFrame(size, scale)
	b := frame.Bounds()
	avi, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	return &Recorder{avi: avi, frame: frame, opts: jpeg.Options{Quality: quality}}, nil
}

// AddFrame encodes the sim's current state as the next video frame.
func (r *Recorder) AddFrame(sim core.Sim) error {
	if r.closed {
		return errors.New("video: add frame after close")
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, r.frame.Render(sim), &r.opts); err != nil {
		return fmt.Errorf("encode frame %d: %w", r.frames, err)
	}
	if err := r.avi.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalises the AVI index. It is safe to call more than once.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.avi.Close()
}
