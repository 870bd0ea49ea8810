package blur

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
)

func TestGaussianBlur(t *testing.T) {
	ctx := context.Background()
	mt, err := types.NewVideoMediaType(types.SubtypeRGBA, 8, 8, types.Rational{})
	require.NoError(t, err)
	layout, err := frame.LayoutFromMediaType(mt)
	require.NoError(t, err)

	s := stage.New(ctx, NewGaussianBlur(0))
	require.NoError(t, s.SetInputType(ctx, 0, mt, false))
	require.NoError(t, s.SetOutputType(ctx, 0, mt, false))

	info, err := s.DescribeOutputRequirements(ctx, 0)
	require.NoError(t, err)
	require.True(t, info.Flags.Has(types.StreamInfoFlagProvidesSamples))

	newInput := func() *types.Sample {
		buf := make([]byte, layout.FrameSize())
		require.NoError(t, layout.Fill(buf, func(x, y int) color.RGBA {
			if x == 4 && y == 4 {
				return color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			return color.RGBA{A: 255}
		}))
		return types.NewSample(buf, time.Second, time.Millisecond)
	}

	in := newInput()
	require.NoError(t, s.SubmitInput(ctx, 0, in))
	out, err := s.ProduceOutput(ctx)
	require.NoError(t, err)
	require.Same(t, in, out)

	s.GetAttributes(ctx).SetFloat(ctx, attribute.KeyBlurRadius, 2)
	in = newInput()
	require.NoError(t, s.SubmitInput(ctx, 0, in))
	out, err = s.ProduceOutput(ctx)
	require.NoError(t, err)
	require.NotSame(t, in, out)
	require.Equal(t, in.PTS, out.PTS)
	require.Len(t, out.Buffer, layout.FrameSize())

	center, err := layout.At(out.Buffer, 4, 4)
	require.NoError(t, err)
	neighbour, err := layout.At(out.Buffer, 5, 4)
	require.NoError(t, err)
	require.Less(t, center.(color.RGBA).R, uint8(255))
	require.NotZero(t, neighbour.(color.RGBA).R)
}
