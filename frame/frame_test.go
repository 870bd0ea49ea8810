package frame

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/pool"
	"github.com/xaionaro-go/avtransform/types"
)

func layoutFor(t *testing.T, subtype types.Subtype, width, height int) Layout {
	mt, err := types.NewVideoMediaType(subtype, width, height, types.Rational{Num: 25, Den: 1})
	require.NoError(t, err)
	l, err := LayoutFromMediaType(mt)
	require.NoError(t, err)
	return l
}

func TestLayoutFromMediaType(t *testing.T) {
	mt, err := types.NewVideoMediaType(types.SubtypeYUY2, 4, 2, types.Rational{})
	require.NoError(t, err)

	l, err := LayoutFromMediaType(mt.With(attribute.KeyDefaultStride, attribute.Int(16)))
	require.NoError(t, err)
	require.Equal(t, Layout{Subtype: types.SubtypeYUY2, Width: 4, Height: 2, Stride: 16}, l)
	require.Equal(t, 32, l.FrameSize())

	_, err = LayoutFromMediaType(mt.With(attribute.KeyDefaultStride, attribute.Int(4)))
	require.Error(t, err)

	_, err = LayoutFromMediaType(types.NewMediaType(types.MajorTypeAudio, types.SubtypePCM))
	require.Error(t, err)

	_, err = LayoutFromMediaType(nil)
	require.Error(t, err)
}

func TestPlanes(t *testing.T) {
	for _, tc := range []struct {
		Subtype  types.Subtype
		Expected []Plane
	}{
		{types.SubtypeYUY2, []Plane{{Stride: 8, RowBytes: 8, Rows: 2}}},
		{types.SubtypeRGBA, []Plane{{Stride: 16, RowBytes: 16, Rows: 2}}},
		{types.SubtypeNV12, []Plane{{Stride: 4, RowBytes: 4, Rows: 2}, {Stride: 4, RowBytes: 4, Rows: 1}}},
		{types.SubtypeI420, []Plane{{Stride: 4, RowBytes: 4, Rows: 2}, {Stride: 2, RowBytes: 2, Rows: 1}, {Stride: 2, RowBytes: 2, Rows: 1}}},
	} {
		t.Run(tc.Subtype.String(), func(t *testing.T) {
			l := layoutFor(t, tc.Subtype, 4, 2)
			planes, err := l.Planes(make([]byte, l.FrameSize()))
			require.NoError(t, err)
			require.Len(t, planes, len(tc.Expected))
			for idx, p := range planes {
				require.Equal(t, tc.Expected[idx].Stride, p.Stride)
				require.Equal(t, tc.Expected[idx].RowBytes, p.RowBytes)
				require.Equal(t, tc.Expected[idx].Rows, p.Rows)
				require.Len(t, p.Data, p.Stride*p.Rows)
				require.Len(t, p.Row(p.Rows-1), p.RowBytes)
			}

			_, err = l.Planes(make([]byte, l.FrameSize()-1))
			require.Error(t, err)
		})
	}
}

func TestFillAt(t *testing.T) {
	colorAt := func(x, y int) color.RGBA {
		return colorBars[(x/2+y)%len(colorBars)]
	}
	for _, subtype := range types.VideoSubtypes() {
		t.Run(subtype.String(), func(t *testing.T) {
			l := layoutFor(t, subtype, 8, 4)
			buf := make([]byte, l.FrameSize())
			require.NoError(t, l.Fill(buf, colorAt))

			for y := 0; y < l.Height; y++ {
				for x := 0; x < l.Width; x++ {
					c, err := l.At(buf, x, y)
					require.NoError(t, err)
					expected := colorAt(x, y)
					if subtype == types.SubtypeRGBA {
						require.Equal(t, expected, c)
						continue
					}
					yy, _, _ := color.RGBToYCbCr(expected.R, expected.G, expected.B)
					require.Equal(t, yy, c.(color.YCbCr).Y, "(%d, %d)", x, y)
				}
			}

			_, err := l.At(buf, l.Width, 0)
			require.Error(t, err)
		})
	}
}

func TestRGBA(t *testing.T) {
	l := layoutFor(t, types.SubtypeRGBA, 2, 2)
	buf := make([]byte, l.FrameSize())
	img, err := l.RGBA(buf)
	require.NoError(t, err)
	img.SetRGBA(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	require.Equal(t, []byte{1, 2, 3, 4}, buf[12:16])

	out, err := l.FromImage(img, nil)
	require.NoError(t, err)
	require.Equal(t, buf, out)

	copied, err := l.FromImage(img, make([]byte, l.FrameSize()))
	require.NoError(t, err)
	require.Equal(t, buf, copied)

	_, err = layoutFor(t, types.SubtypeNV12, 2, 2).RGBA(buf)
	require.Error(t, err)
}

func TestRawRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := layoutFor(t, types.SubtypeNV12, 4, 2)
	bufPool := pool.NewBufferPool()

	gen := &PatternGenerator{
		Layout:        l,
		FrameDuration: 40 * time.Millisecond,
		FrameCount:    3,
		BufferPool:    bufPool,
	}
	var generated []*types.Sample
	for {
		s, err := gen.ReadSample(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		generated = append(generated, s.Clone())
	}
	require.Len(t, generated, 3)
	require.Equal(t, 80*time.Millisecond, generated[2].PTS)

	var file bytes.Buffer
	w := NewRawWriter(&file, l, bufPool)
	for _, s := range generated {
		require.NoError(t, w.WriteSample(ctx, s.Clone()))
	}
	require.NoError(t, w.Flush())
	require.Equal(t, 3*l.FrameSize(), file.Len())

	r := NewRawReader(bytes.NewReader(file.Bytes()), l, 40*time.Millisecond, bufPool)
	for idx, expected := range generated {
		s, err := r.ReadSample(ctx)
		require.NoError(t, err)
		require.Equal(t, expected.Buffer, s.Buffer)
		require.Equal(t, expected.PTS, s.PTS)
		require.Equal(t, idx == 0, s.IsDiscontinuity())
	}
	_, err := r.ReadSample(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestRawReaderTruncated(t *testing.T) {
	ctx := context.Background()
	l := layoutFor(t, types.SubtypeYUY2, 4, 2)
	r := NewRawReader(bytes.NewReader(make([]byte, l.FrameSize()+3)), l, 0, nil)

	_, err := r.ReadSample(ctx)
	require.NoError(t, err)
	_, err = r.ReadSample(ctx)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
