// media_type.go defines MediaType, the descriptor of a data format negotiated between stages.

package types

import (
	"fmt"

	"github.com/xaionaro-go/avtransform/attribute"
)

// MediaType describes a data format: the major category, the exact layout
// and arbitrary attributes (dimensions, stride, interlace mode, ...).
//
// A MediaType must not be modified after it was handed to anybody else;
// use With or Clone to derive a new one.
type MediaType struct {
	Major      MajorType
	Subtype    Subtype
	Attributes attribute.Set
}

func NewMediaType(major MajorType, subtype Subtype) *MediaType {
	return &MediaType{
		Major:      major,
		Subtype:    subtype,
		Attributes: attribute.Set{},
	}
}

// NewVideoMediaType builds an uncompressed progressive video type with
// the default stride and sample size derived from the subtype.
func NewVideoMediaType(
	subtype Subtype,
	width, height int,
	frameRate Rational,
) (*MediaType, error) {
	stride, err := subtype.DefaultStride(width)
	if err != nil {
		return nil, fmt.Errorf("unable to calculate the stride: %w", err)
	}
	size, err := subtype.FrameSize(stride, height)
	if err != nil {
		return nil, fmt.Errorf("unable to calculate the frame size: %w", err)
	}

	t := NewMediaType(MajorTypeVideo, subtype)
	t.Attributes.Set(attribute.KeyFrameWidth, attribute.Int(int64(width)))
	t.Attributes.Set(attribute.KeyFrameHeight, attribute.Int(int64(height)))
	t.Attributes.Set(attribute.KeyDefaultStride, attribute.Int(int64(stride)))
	t.Attributes.Set(attribute.KeySampleSize, attribute.Int(int64(size)))
	t.Attributes.Set(attribute.KeyFixedSizeSamples, attribute.Bool(true))
	t.Attributes.Set(attribute.KeyAllSamplesIndependent, attribute.Bool(true))
	t.Attributes.Set(attribute.KeyInterlaceMode, attribute.Int(int64(InterlaceModeProgressive)))
	if frameRate.Den != 0 {
		t.Attributes.Set(attribute.KeyFrameRateNum, attribute.Int(int64(frameRate.Num)))
		t.Attributes.Set(attribute.KeyFrameRateDen, attribute.Int(int64(frameRate.Den)))
	}
	return t, nil
}

func (t *MediaType) Clone() *MediaType {
	if t == nil {
		return nil
	}
	return &MediaType{
		Major:      t.Major,
		Subtype:    t.Subtype,
		Attributes: t.Attributes.Clone(),
	}
}

// Equal compares the descriptors by value; nil equals only nil.
func (t *MediaType) Equal(other *MediaType) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if t.Major != other.Major {
		return false
	}
	if t.Subtype != other.Subtype {
		return false
	}
	return t.Attributes.Equal(other.Attributes)
}

// With returns a copy of the media type with the attribute set.
func (t *MediaType) With(key attribute.Key, value attribute.Value) *MediaType {
	c := t.Clone()
	if c.Attributes == nil {
		c.Attributes = attribute.Set{}
	}
	c.Attributes.Set(key, value)
	return c
}

func (t *MediaType) Get(key attribute.Key) (attribute.Value, bool) {
	if t == nil {
		return attribute.Value{}, false
	}
	return t.Attributes.Get(key)
}

func (t *MediaType) getInt(key attribute.Key) (int64, bool) {
	v, ok := t.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func (t *MediaType) FrameSize() (width, height int, ok bool) {
	w, okW := t.getInt(attribute.KeyFrameWidth)
	h, okH := t.getInt(attribute.KeyFrameHeight)
	if !okW || !okH {
		return 0, 0, false
	}
	return int(w), int(h), true
}

func (t *MediaType) DefaultStride() (int, bool) {
	v, ok := t.getInt(attribute.KeyDefaultStride)
	return int(v), ok
}

func (t *MediaType) SampleSize() (int, bool) {
	v, ok := t.getInt(attribute.KeySampleSize)
	return int(v), ok
}

func (t *MediaType) FixedSizeSamples() bool {
	v, _ := t.getInt(attribute.KeyFixedSizeSamples)
	return v != 0
}

func (t *MediaType) InterlaceMode() InterlaceMode {
	v, ok := t.getInt(attribute.KeyInterlaceMode)
	if !ok {
		return InterlaceModeUnknown
	}
	return InterlaceMode(v)
}

func (t *MediaType) FrameRate() (Rational, bool) {
	num, okN := t.getInt(attribute.KeyFrameRateNum)
	den, okD := t.getInt(attribute.KeyFrameRateDen)
	if !okN || !okD || den == 0 {
		return Rational{}, false
	}
	return Rational{Num: int(num), Den: int(den)}, true
}

func (t *MediaType) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s/%s%s", t.Major, t.Subtype, t.Attributes)
}

type InterlaceMode int

const (
	InterlaceModeUnknown = InterlaceMode(iota)
	InterlaceModeProgressive
	InterlaceModeFieldInterleavedUpperFirst
	InterlaceModeFieldInterleavedLowerFirst
	InterlaceModeFieldSingleUpper
	InterlaceModeFieldSingleLower
	InterlaceModeMixedInterlaceOrProgressive
)

func (m InterlaceMode) String() string {
	switch m {
	case InterlaceModeUnknown:
		return "unknown"
	case InterlaceModeProgressive:
		return "progressive"
	case InterlaceModeFieldInterleavedUpperFirst:
		return "interleaved_upper_first"
	case InterlaceModeFieldInterleavedLowerFirst:
		return "interleaved_lower_first"
	case InterlaceModeFieldSingleUpper:
		return "single_upper"
	case InterlaceModeFieldSingleLower:
		return "single_lower"
	case InterlaceModeMixedInterlaceOrProgressive:
		return "mixed"
	default:
		return fmt.Sprintf("InterlaceMode(%d)", int(m))
	}
}
