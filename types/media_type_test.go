package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avtransform/attribute"
)

func TestMediaTypeCloneEqual(t *testing.T) {
	for _, subtype := range VideoSubtypes() {
		t.Run(subtype.String(), func(t *testing.T) {
			mt, err := NewVideoMediaType(subtype, 64, 48, Rational{Num: 30, Den: 1})
			require.NoError(t, err)

			c := mt.Clone()
			require.True(t, c.Equal(mt))
			require.True(t, mt.Equal(c))
			require.NotSame(t, mt, c)

			c.Attributes.Set(attribute.KeyFrameWidth, attribute.Int(32))
			require.False(t, c.Equal(mt))
			w, _, _ := mt.FrameSize()
			require.Equal(t, 64, w)
		})
	}
}

func TestMediaTypeEqualNil(t *testing.T) {
	var a, b *MediaType
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(NewMediaType(MajorTypeVideo, SubtypeNV12)))
	require.False(t, NewMediaType(MajorTypeVideo, SubtypeNV12).Equal(nil))
	require.Nil(t, a.Clone())
}

func TestMediaTypeEqualDistinguishes(t *testing.T) {
	a := NewMediaType(MajorTypeVideo, SubtypeNV12)
	require.False(t, a.Equal(NewMediaType(MajorTypeAudio, SubtypeNV12)))
	require.False(t, a.Equal(NewMediaType(MajorTypeVideo, SubtypeYUY2)))
	require.True(t, a.Equal(&MediaType{Major: MajorTypeVideo, Subtype: SubtypeNV12}))
}

func TestMediaTypeWith(t *testing.T) {
	a := NewMediaType(MajorTypeVideo, SubtypeRGBA)
	b := a.With(attribute.KeyInterlaceMode, attribute.Int(int64(InterlaceModeFieldInterleavedUpperFirst)))
	require.Equal(t, InterlaceModeUnknown, a.InterlaceMode())
	require.Equal(t, InterlaceModeFieldInterleavedUpperFirst, b.InterlaceMode())
}

func TestNewVideoMediaType(t *testing.T) {
	mt, err := NewVideoMediaType(SubtypeNV12, 4, 3, Rational{Num: 25, Den: 1})
	require.NoError(t, err)

	w, h, ok := mt.FrameSize()
	require.True(t, ok)
	require.Equal(t, 4, w)
	require.Equal(t, 3, h)

	stride, ok := mt.DefaultStride()
	require.True(t, ok)
	require.Equal(t, 4, stride)

	size, ok := mt.SampleSize()
	require.True(t, ok)
	require.Equal(t, 4*(3+2), size)

	fps, ok := mt.FrameRate()
	require.True(t, ok)
	require.Equal(t, 40*time.Millisecond, fps.FrameDuration())
	require.True(t, mt.FixedSizeSamples())
	require.Equal(t, InterlaceModeProgressive, mt.InterlaceMode())

	_, err = NewVideoMediaType(SubtypeYUY2, 3, 2, Rational{})
	require.Error(t, err)
}

func TestSubtype(t *testing.T) {
	require.Equal(t, "YUY2", SubtypeYUY2.String())
	require.Equal(t, "PCM", SubtypePCM.String())
	s, err := SubtypeFromString("nv12")
	require.NoError(t, err)
	require.Equal(t, SubtypeNV12, s)
	_, err = SubtypeFromString("TOOLONG")
	require.Error(t, err)
}

func TestSampleCloneContentEqual(t *testing.T) {
	s := NewSample([]byte{1, 2, 3}, time.Second, 40*time.Millisecond)
	s.Flags = SampleFlagKeyFrame | SampleFlagDiscontinuity

	c := s.Clone()
	require.True(t, c.ContentEqual(s))
	c.Buffer[0] = 9
	require.False(t, c.ContentEqual(s))
	require.Equal(t, byte(1), s.Buffer[0])
	require.True(t, s.IsDiscontinuity())
	require.False(t, s.IsInterlaced())
	require.Equal(t, "discontinuity|keyframe", s.Flags.String())
}
