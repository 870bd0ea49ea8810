// layout.go describes the memory layout of uncompressed video frames.

// Package frame provides stride-bounded views over the buffers of
// uncompressed video samples, plus raw frame I/O and test patterns.
package frame

import (
	"fmt"

	"github.com/xaionaro-go/avtransform/types"
)

// Layout is everything needed to address pixels of a frame buffer. It is
// meant to be computed once, when a media type is committed, and reused for
// every sample.
type Layout struct {
	Subtype types.Subtype
	Width   int
	Height  int

	// Stride is the stride of the first plane in bytes; chroma planes of
	// planar formats derive their strides from it.
	Stride int
}

func LayoutFromMediaType(t *types.MediaType) (Layout, error) {
	if t == nil {
		return Layout{}, fmt.Errorf("media type is not set")
	}
	if t.Major != types.MajorTypeVideo {
		return Layout{}, fmt.Errorf("expected a video type, got %s", t.Major)
	}
	width, height, ok := t.FrameSize()
	if !ok {
		return Layout{}, fmt.Errorf("frame size is not set in %s", t)
	}
	minStride, err := t.Subtype.DefaultStride(width)
	if err != nil {
		return Layout{}, fmt.Errorf("unable to calculate the stride: %w", err)
	}
	stride, ok := t.DefaultStride()
	if !ok {
		stride = minStride
	}
	if stride < minStride {
		return Layout{}, fmt.Errorf("stride %d is less than the minimal %d", stride, minStride)
	}
	if height <= 0 {
		return Layout{}, fmt.Errorf("invalid height %d", height)
	}
	return Layout{
		Subtype: t.Subtype,
		Width:   width,
		Height:  height,
		Stride:  stride,
	}, nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%s %dx%d (stride %d)", l.Subtype, l.Width, l.Height, l.Stride)
}

// FrameSize is the amount of bytes a buffer must have to hold one frame.
func (l Layout) FrameSize() int {
	size, err := l.Subtype.FrameSize(l.Stride, l.Height)
	if err != nil {
		return 0
	}
	return size
}

// Plane is a stride-bounded view over one plane of a frame. Row accesses
// never reach beyond the plane.
type Plane struct {
	Data []byte

	// Stride is the distance between rows in bytes.
	Stride int

	// RowBytes is the amount of meaningful bytes in each row (<= Stride).
	RowBytes int

	Rows int
}

func (p Plane) Row(y int) []byte {
	offset := y * p.Stride
	return p.Data[offset : offset+p.RowBytes : offset+p.RowBytes]
}

// Planes splits buf into the planes of the layout: one plane for packed
// formats, Y+UV for NV12 and Y+U+V for I420.
func (l Layout) Planes(buf []byte) ([]Plane, error) {
	size := l.FrameSize()
	if size == 0 {
		return nil, fmt.Errorf("unsupported layout %s", l)
	}
	if len(buf) < size {
		return nil, fmt.Errorf("buffer is too small: %d < %d", len(buf), size)
	}

	chromaRows := (l.Height + 1) / 2
	switch l.Subtype {
	case types.SubtypeYUY2, types.SubtypeUYVY:
		return []Plane{
			{Data: buf[:l.Stride*l.Height], Stride: l.Stride, RowBytes: l.Width * 2, Rows: l.Height},
		}, nil
	case types.SubtypeRGBA:
		return []Plane{
			{Data: buf[:l.Stride*l.Height], Stride: l.Stride, RowBytes: l.Width * 4, Rows: l.Height},
		}, nil
	case types.SubtypeNV12:
		lumaSize := l.Stride * l.Height
		return []Plane{
			{Data: buf[:lumaSize], Stride: l.Stride, RowBytes: l.Width, Rows: l.Height},
			{Data: buf[lumaSize:size], Stride: l.Stride, RowBytes: l.Width, Rows: chromaRows},
		}, nil
	case types.SubtypeI420:
		lumaSize := l.Stride * l.Height
		chromaStride := l.Stride / 2
		chromaSize := chromaStride * chromaRows
		return []Plane{
			{Data: buf[:lumaSize], Stride: l.Stride, RowBytes: l.Width, Rows: l.Height},
			{Data: buf[lumaSize : lumaSize+chromaSize], Stride: chromaStride, RowBytes: l.Width / 2, Rows: chromaRows},
			{Data: buf[lumaSize+chromaSize : size], Stride: chromaStride, RowBytes: l.Width / 2, Rows: chromaRows},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported subtype %s", l.Subtype)
	}
}

// LumaOffsets returns the offsets of the luma bytes within a pixel pair of
// a packed 4:2:2 row, and the offsets of the chroma bytes.
func LumaOffsets(subtype types.Subtype) (luma [2]int, chroma [2]int, ok bool) {
	switch subtype {
	case types.SubtypeYUY2:
		return [2]int{0, 2}, [2]int{1, 3}, true
	case types.SubtypeUYVY:
		return [2]int{1, 3}, [2]int{0, 2}, true
	default:
		return luma, chroma, false
	}
}
