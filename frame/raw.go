package frame

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/pool"
	"github.com/xaionaro-go/avtransform/types"
)

// Source produces samples one by one; io.EOF means the end of the stream.
type Source interface {
	ReadSample(ctx context.Context) (*types.Sample, error)
}

// RawReader reads headerless back-to-back frames of a fixed layout.
type RawReader struct {
	Layout        Layout
	FrameDuration time.Duration
	BufferPool    *pool.BufferPool

	reader *bufio.Reader
	index  int64
}

var _ Source = (*RawReader)(nil)

func NewRawReader(
	r io.Reader,
	layout Layout,
	frameDuration time.Duration,
	bufferPool *pool.BufferPool,
) *RawReader {
	return &RawReader{
		Layout:        layout,
		FrameDuration: frameDuration,
		BufferPool:    bufferPool,
		reader:        bufio.NewReaderSize(r, layout.FrameSize()),
	}
}

func (r *RawReader) ReadSample(ctx context.Context) (_ret *types.Sample, _err error) {
	logger.Tracef(ctx, "ReadSample")
	defer func() { logger.Tracef(ctx, "/ReadSample: %s %v", _ret, _err) }()

	size := r.Layout.FrameSize()
	if size == 0 {
		return nil, fmt.Errorf("unsupported layout %s", r.Layout)
	}
	buf := r.BufferPool.Get(size)
	n, err := io.ReadFull(r.reader, buf)
	switch {
	case errors.Is(err, io.EOF):
		r.BufferPool.Put(buf)
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		r.BufferPool.Put(buf)
		return nil, fmt.Errorf("truncated frame #%d: got %d bytes out of %d: %w", r.index, n, size, err)
	case err != nil:
		r.BufferPool.Put(buf)
		return nil, fmt.Errorf("unable to read frame #%d: %w", r.index, err)
	}

	s := types.NewSample(buf, time.Duration(r.index)*r.FrameDuration, r.FrameDuration)
	if r.index == 0 {
		s.Flags |= types.SampleFlagDiscontinuity
	}
	s.Flags |= types.SampleFlagKeyFrame
	r.index++
	return s, nil
}

// RawWriter writes frames back-to-back, without any headers.
type RawWriter struct {
	Layout     Layout
	BufferPool *pool.BufferPool

	writer *bufio.Writer
}

func NewRawWriter(
	w io.Writer,
	layout Layout,
	bufferPool *pool.BufferPool,
) *RawWriter {
	return &RawWriter{
		Layout:     layout,
		BufferPool: bufferPool,
		writer:     bufio.NewWriterSize(w, layout.FrameSize()),
	}
}

// WriteSample writes the frame and recycles the sample buffer: the sample
// must not be used afterwards.
func (w *RawWriter) WriteSample(ctx context.Context, s *types.Sample) (_err error) {
	logger.Tracef(ctx, "WriteSample(ctx, %s)", s)
	defer func() { logger.Tracef(ctx, "/WriteSample(ctx, %s): %v", s, _err) }()

	size := w.Layout.FrameSize()
	if len(s.Buffer) < size {
		return fmt.Errorf("the sample is too small: %d < %d", len(s.Buffer), size)
	}
	if _, err := w.writer.Write(s.Buffer[:size]); err != nil {
		return fmt.Errorf("unable to write the frame: %w", err)
	}
	if w.BufferPool != nil {
		w.BufferPool.Put(s.Buffer)
		s.Buffer = nil
	}
	return nil
}

func (w *RawWriter) Flush() error {
	return w.writer.Flush()
}

// PatternGenerator is a Source of synthetic frames: vertical color bars
// scrolling by one bar per frame.
type PatternGenerator struct {
	Layout        Layout
	FrameDuration time.Duration
	FrameCount    int64
	BufferPool    *pool.BufferPool

	index int64
}

var _ Source = (*PatternGenerator)(nil)

var colorBars = []color.RGBA{
	{R: 235, G: 235, B: 235, A: 255},
	{R: 235, G: 235, B: 16, A: 255},
	{R: 16, G: 235, B: 235, A: 255},
	{R: 16, G: 235, B: 16, A: 255},
	{R: 235, G: 16, B: 235, A: 255},
	{R: 235, G: 16, B: 16, A: 255},
	{R: 16, G: 16, B: 235, A: 255},
	{R: 16, G: 16, B: 16, A: 255},
}

func (g *PatternGenerator) ReadSample(ctx context.Context) (*types.Sample, error) {
	if g.FrameCount > 0 && g.index >= g.FrameCount {
		return nil, io.EOF
	}

	size := g.Layout.FrameSize()
	if size == 0 {
		return nil, fmt.Errorf("unsupported layout %s", g.Layout)
	}
	buf := g.BufferPool.Get(size)
	barWidth := max(g.Layout.Width/len(colorBars), 1)
	shift := int(g.index)
	err := g.Layout.Fill(buf, func(x, y int) color.RGBA {
		return colorBars[(x/barWidth+shift)%len(colorBars)]
	})
	if err != nil {
		g.BufferPool.Put(buf)
		return nil, fmt.Errorf("unable to draw the pattern: %w", err)
	}

	s := types.NewSample(buf, time.Duration(g.index)*g.FrameDuration, g.FrameDuration)
	s.Flags |= types.SampleFlagKeyFrame
	g.index++
	return s, nil
}
