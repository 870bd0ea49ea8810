package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect/flip"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/types"
)

type collector struct {
	Samples []*types.Sample
}

func (c *collector) WriteSample(ctx context.Context, s *types.Sample) error {
	c.Samples = append(c.Samples, s)
	return nil
}

func TestPump(t *testing.T) {
	ctx := context.Background()
	for _, name := range effectNames() {
		t.Run(name, func(t *testing.T) {
			inputType, err := types.NewVideoMediaType(types.SubtypeRGBA, 16, 8, types.Rational{Num: 25, Den: 1})
			require.NoError(t, err)

			s, err := newEffectStage(ctx, name, effectParams{Text: "x", BlurRadius: 1})
			require.NoError(t, err)
			defer s.Close(ctx)

			outputType, err := negotiate(ctx, s, inputType)
			require.NoError(t, err)
			require.True(t, outputType.Equal(inputType))

			layout, err := frame.LayoutFromMediaType(inputType)
			require.NoError(t, err)
			source := &frame.PatternGenerator{
				Layout:        layout,
				FrameDuration: 40 * time.Millisecond,
				FrameCount:    5,
			}
			var out collector
			require.NoError(t, pump(ctx, s, source, &out, false))
			require.Len(t, out.Samples, 5)
			require.Equal(t, 160*time.Millisecond, out.Samples[4].PTS)
			require.Equal(t, uint64(5), s.Stats().Produced.Count)
		})
	}
}

func TestPumpRawFile(t *testing.T) {
	ctx := context.Background()
	inputType, err := types.NewVideoMediaType(types.SubtypeNV12, 8, 4, types.Rational{Num: 25, Den: 1})
	require.NoError(t, err)
	layout, err := frame.LayoutFromMediaType(inputType)
	require.NoError(t, err)

	s, err := newEffectStage(ctx, "grayscale", effectParams{})
	require.NoError(t, err)
	_, err = negotiate(ctx, s, inputType)
	require.NoError(t, err)

	input := bytes.Repeat([]byte{200}, 3*layout.FrameSize())
	var output bytes.Buffer
	w := frame.NewRawWriter(&output, layout, nil)
	require.NoError(t, pump(ctx, s, frame.NewRawReader(bytes.NewReader(input), layout, 40*time.Millisecond, nil), w, false))
	require.NoError(t, w.Flush())
	require.Equal(t, len(input), output.Len())

	lumaSize := layout.Stride * layout.Height
	for idx := 0; idx < 3; idx++ {
		f := output.Bytes()[idx*layout.FrameSize() : (idx+1)*layout.FrameSize()]
		require.Equal(t, bytes.Repeat([]byte{200}, lumaSize), f[:lumaSize])
		require.Equal(t, bytes.Repeat([]byte{128}, layout.FrameSize()-lumaSize), f[lumaSize:])
	}
}

func TestNegotiateRejects(t *testing.T) {
	ctx := context.Background()
	inputType, err := types.NewVideoMediaType(types.SubtypeNV12, 8, 4, types.Rational{})
	require.NoError(t, err)
	s, err := newEffectStage(ctx, "textoverlay", effectParams{})
	require.NoError(t, err)
	_, err = negotiate(ctx, s, inputType)
	require.Error(t, err)

	_, err = newEffectStage(ctx, "nonexistent", effectParams{})
	require.Error(t, err)
}

func TestPumpViaLibav(t *testing.T) {
	ctx := context.Background()
	inputType, err := types.NewVideoMediaType(types.SubtypeYUY2, 8, 4, types.Rational{Num: 25, Den: 1})
	require.NoError(t, err)
	layout, err := frame.LayoutFromMediaType(inputType)
	require.NoError(t, err)

	run := func(wrap func(outputType *types.MediaType, next sink) sink) []*types.Sample {
		s, err := newEffectStage(ctx, "flip", effectParams{FlipMode: flip.FlipModeHorizontal})
		require.NoError(t, err)
		defer s.Close(ctx)
		outputType, err := negotiate(ctx, s, inputType)
		require.NoError(t, err)

		source := &frame.PatternGenerator{
			Layout:        layout,
			FrameDuration: 40 * time.Millisecond,
			FrameCount:    3,
		}
		var out collector
		require.NoError(t, pump(ctx, s, source, wrap(outputType, &out), false))
		return out.Samples
	}

	direct := run(func(_ *types.MediaType, next sink) sink { return next })
	viaLibav := run(func(outputType *types.MediaType, next sink) sink {
		libav, err := newLibavSink(ctx, outputType, next, nil)
		require.NoError(t, err)
		return libav
	})

	require.Len(t, viaLibav, len(direct))
	for idx := range direct {
		require.Equal(t, direct[idx].Buffer, viaLibav[idx].Buffer)
		require.Equal(t, direct[idx].PTS, viaLibav[idx].PTS)
		require.Equal(t, direct[idx].Flags, viaLibav[idx].Flags)
	}
}

func TestLibavSinkRejectsPaddedStride(t *testing.T) {
	ctx := context.Background()
	mt, err := types.NewVideoMediaType(types.SubtypeYUY2, 4, 2, types.Rational{Num: 25, Den: 1})
	require.NoError(t, err)
	padded := mt.With(attribute.KeyDefaultStride, attribute.Int(16))

	_, err = newLibavSink(ctx, padded, &collector{}, nil)
	require.Error(t, err)
}
