package textoverlay

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
)

func countLit(buf []byte, stride, x0, y0, x1, y1 int) int {
	count := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if buf[y*stride+x*4] != 0 {
				count++
			}
		}
	}
	return count
}

func TestTextOverlay(t *testing.T) {
	ctx := context.Background()
	mt, err := types.NewVideoMediaType(types.SubtypeRGBA, 64, 32, types.Rational{})
	require.NoError(t, err)
	s := stage.New(ctx, New())
	require.NoError(t, s.SetInputType(ctx, 0, mt, false))
	require.NoError(t, s.SetOutputType(ctx, 0, mt, false))
	require.ErrorIs(t, s.SetInputType(ctx, 0, types.NewMediaType(types.MajorTypeVideo, types.SubtypeNV12), true), stage.ErrTypeRejected{})

	produce := func() []byte {
		in := types.NewSample(make([]byte, 64*32*4), time.Second, 0)
		require.NoError(t, s.SubmitInput(ctx, 0, in))
		out, err := s.ProduceOutput(ctx)
		require.NoError(t, err)
		require.Same(t, in, out)
		return out.Buffer
	}

	require.Zero(t, countLit(produce(), 64*4, 0, 0, 64, 32))

	attrs := s.GetAttributes(ctx)
	attrs.SetString(ctx, attribute.KeyOverlayText, "HI")
	attrs.SetInt(ctx, attribute.KeyOverlayX, 32)
	attrs.SetInt(ctx, attribute.KeyOverlayY, 10)
	buf := produce()
	require.NotZero(t, countLit(buf, 64*4, 32, 10, 64, 32))
	require.Zero(t, countLit(buf, 64*4, 0, 0, 32, 32))
	require.Zero(t, countLit(buf, 64*4, 0, 0, 64, 10))

	o := New()
	o.SetColor(color.RGBA{B: 0xff, A: 0xff})
	require.Equal(t, color.RGBA{B: 0xff, A: 0xff}, o.Color())
	s = stage.New(ctx, o, stage.OptionInitialAttributes(attribute.Set{
		attribute.KeyOverlayText: attribute.String("HI"),
	}))
	require.NoError(t, s.SetInputType(ctx, 0, mt, false))
	require.NoError(t, s.SetOutputType(ctx, 0, mt, false))
	buf = produce()
	require.Zero(t, countLit(buf, 64*4, 0, 0, 64, 32))
	require.NotZero(t, countLit(buf[2:], 64*4, 0, 0, 63, 32))
}

func TestTextPlaceholder(t *testing.T) {
	ctx := context.Background()
	o := New()
	o.BindAttributes(ctx, attribute.NewStore(attribute.Set{
		attribute.KeyOverlayText: attribute.String("pts=" + PlaceholderPTS),
	}))
	text, pos := o.Text(ctx, "1s")
	require.Equal(t, "pts=1s", text)
	require.Equal(t, defaultX, pos.X)
	require.Equal(t, defaultY, pos.Y)
}
