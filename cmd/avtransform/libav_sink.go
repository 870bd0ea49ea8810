package main

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avtransform/avbridge"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/pool"
	"github.com/xaionaro-go/avtransform/types"
)

// libavTimeBase is the MPEG-TS clock.
var libavTimeBase = astiav.NewRational(1, 90000)

// libavSink hands every output sample over to libav as an astiav.Frame and
// writes what libav gives back, the way a host feeding an encoder would.
type libavSink struct {
	Next       sink
	Type       *types.MediaType
	BufferPool *pool.BufferPool
}

var _ sink = (*libavSink)(nil)

func newLibavSink(
	ctx context.Context,
	outputType *types.MediaType,
	next sink,
	bufferPool *pool.BufferPool,
) (*libavSink, error) {
	cp := astiav.AllocCodecParameters()
	defer cp.Free()
	if err := avbridge.CodecParametersFromMediaType(outputType, cp); err != nil {
		return nil, fmt.Errorf("unable to describe %s to libav: %w", outputType, err)
	}
	described, err := avbridge.MediaTypeFromCodecParameters(cp)
	if err != nil {
		return nil, fmt.Errorf("unable to read back the libav codec parameters: %w", err)
	}
	if !described.Equal(outputType) {
		return nil, fmt.Errorf("libav cannot carry %s exactly (got %s)", outputType, described)
	}
	logger.Debugf(ctx, "libav codec parameters: %dx%d %v", cp.Width(), cp.Height(), cp.PixelFormat())
	return &libavSink{
		Next:       next,
		Type:       outputType,
		BufferPool: bufferPool,
	}, nil
}

func (s *libavSink) WriteSample(ctx context.Context, sample *types.Sample) error {
	f, err := avbridge.FrameFromSample(ctx, sample, s.Type, libavTimeBase)
	if err != nil {
		return fmt.Errorf("unable to convert %s to a libav frame: %w", sample, err)
	}
	out, err := avbridge.SampleFromFrame(ctx, f, libavTimeBase)
	if err != nil {
		return fmt.Errorf("unable to convert the libav frame back: %w", err)
	}
	out.Flags = sample.Flags
	out.SideData = sample.SideData
	s.BufferPool.Put(sample.Buffer)
	sample.Buffer = nil
	return s.Next.WriteSample(ctx, out)
}
