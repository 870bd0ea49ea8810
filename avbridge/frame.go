package avbridge

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/internal"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/types"
)

// planeAlign 1 makes libav pack the planes tightly, which is exactly the
// default-stride layout of types.NewVideoMediaType.
const planeAlign = 1

// SampleFromFrame copies a decoded video frame into a new sample.
func SampleFromFrame(
	ctx context.Context,
	f *astiav.Frame,
	timeBase astiav.Rational,
) (_ret *types.Sample, _err error) {
	logger.Tracef(ctx, "SampleFromFrame(ctx, %dx%d)", f.Width(), f.Height())
	defer func() { logger.Tracef(ctx, "/SampleFromFrame(ctx, %dx%d): %s %v", f.Width(), f.Height(), _ret, _err) }()

	buf, err := f.Data().Bytes(planeAlign)
	if err != nil {
		return nil, fmt.Errorf("unable to get the frame data: %w", err)
	}
	s := types.NewSample(buf, Duration(f.Pts(), timeBase), Duration(f.Duration(), timeBase))
	s.Flags |= types.SampleFlagKeyFrame
	return s, nil
}

// FrameFromSample allocates a libav frame of type t and copies the sample
// into it. The frame is freed by a finalizer.
func FrameFromSample(
	ctx context.Context,
	s *types.Sample,
	t *types.MediaType,
	timeBase astiav.Rational,
) (_ret *astiav.Frame, _err error) {
	logger.Tracef(ctx, "FrameFromSample(ctx, %s, %s)", s, t)
	defer func() { logger.Tracef(ctx, "/FrameFromSample(ctx, %s, %s): %v", s, t, _err) }()

	layout, err := frame.LayoutFromMediaType(t)
	if err != nil {
		return nil, err
	}
	if expected, _ := layout.Subtype.DefaultStride(layout.Width); layout.Stride != expected {
		return nil, fmt.Errorf("padded strides are not supported yet: %d != %d", layout.Stride, expected)
	}
	pixFmt, err := PixelFormatFromSubtype(t.Subtype)
	if err != nil {
		return nil, err
	}
	if len(s.Buffer) < layout.FrameSize() {
		return nil, fmt.Errorf("the sample is too small: %d < %d", len(s.Buffer), layout.FrameSize())
	}

	f := astiav.AllocFrame()
	internal.SetFinalizerFree(ctx, f)
	f.SetWidth(layout.Width)
	f.SetHeight(layout.Height)
	f.SetPixelFormat(pixFmt)
	f.SetPts(FromDuration(s.PTS, timeBase))
	f.SetDuration(FromDuration(s.Duration, timeBase))
	if err := f.AllocBuffer(0); err != nil {
		return nil, fmt.Errorf("unable to allocate the frame buffer: %w", err)
	}
	if err := f.Data().SetBytes(s.Buffer[:layout.FrameSize()], planeAlign); err != nil {
		return nil, fmt.Errorf("unable to copy the sample into the frame: %w", err)
	}
	return f, nil
}
