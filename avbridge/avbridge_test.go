package avbridge

import (
	"context"
	"testing"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avtransform/types"
)

func TestPixelFormats(t *testing.T) {
	for _, subtype := range types.VideoSubtypes() {
		pixFmt, err := PixelFormatFromSubtype(subtype)
		require.NoError(t, err)
		back, err := SubtypeFromPixelFormat(pixFmt)
		require.NoError(t, err)
		require.Equal(t, subtype, back)
	}
	_, err := PixelFormatFromSubtype(types.SubtypePCM)
	require.Error(t, err)
}

func TestDuration(t *testing.T) {
	tb := astiav.NewRational(1, 90000)
	require.Equal(t, time.Second, Duration(90000, tb))
	require.Equal(t, int64(3600), FromDuration(40*time.Millisecond, tb))
	require.Zero(t, Duration(avNoPTSValue, tb))
	for _, d := range []time.Duration{40 * time.Millisecond, 80 * time.Millisecond, 33366667} {
		require.Equal(t, d.Round(time.Microsecond), Duration(FromDuration(d, tb), tb).Round(time.Microsecond))
	}
	require.Equal(t, 80*time.Millisecond, Duration(7200, tb))
}

func TestCodecParameters(t *testing.T) {
	mt, err := types.NewVideoMediaType(types.SubtypeNV12, 8, 4, types.Rational{Num: 25, Den: 1})
	require.NoError(t, err)

	cp := astiav.AllocCodecParameters()
	defer cp.Free()
	require.NoError(t, CodecParametersFromMediaType(mt, cp))

	back, err := MediaTypeFromCodecParameters(cp)
	require.NoError(t, err)
	require.True(t, back.Equal(mt), "%s != %s", back, mt)
}

func TestFrameRoundTrip(t *testing.T) {
	ctx := context.Background()
	tb := astiav.NewRational(1, 1000)
	mt, err := types.NewVideoMediaType(types.SubtypeYUY2, 4, 2, types.Rational{})
	require.NoError(t, err)

	in := types.NewSample([]byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}, 80*time.Millisecond, 40*time.Millisecond)

	f, err := FrameFromSample(ctx, in, mt, tb)
	require.NoError(t, err)
	require.Equal(t, int64(80), f.Pts())

	out, err := SampleFromFrame(ctx, f, tb)
	require.NoError(t, err)
	require.Equal(t, in.Buffer, out.Buffer)
	require.Equal(t, in.PTS, out.PTS)
	require.Equal(t, in.Duration, out.Duration)
}
