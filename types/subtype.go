package types

import (
	"fmt"
	"strings"
)

// Subtype is a FourCC code identifying the exact data layout within a major type.
type Subtype uint32

func FourCC(s string) Subtype {
	var b [4]byte
	copy(b[:], s)
	return Subtype(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

var (
	SubtypeUndefined = Subtype(0)
	SubtypeYUY2      = FourCC("YUY2")
	SubtypeUYVY      = FourCC("UYVY")
	SubtypeNV12      = FourCC("NV12")
	SubtypeI420      = FourCC("I420")
	SubtypeRGBA      = FourCC("RGBA")
	SubtypePCM       = FourCC("PCM ")
)

func VideoSubtypes() []Subtype {
	return []Subtype{
		SubtypeYUY2,
		SubtypeUYVY,
		SubtypeNV12,
		SubtypeI420,
		SubtypeRGBA,
	}
}

func SubtypeFromString(s string) (Subtype, error) {
	if len(s) == 0 || len(s) > 4 {
		return SubtypeUndefined, fmt.Errorf("invalid FourCC '%s'", s)
	}
	return FourCC(strings.ToUpper(s)), nil
}

func (s Subtype) String() string {
	if s == SubtypeUndefined {
		return "undefined"
	}
	b := []byte{byte(s), byte(s >> 8), byte(s >> 16), byte(s >> 24)}
	return strings.TrimRight(string(b), " \x00")
}

func (s Subtype) IsPacked422() bool {
	return s == SubtypeYUY2 || s == SubtypeUYVY
}

// DefaultStride returns the minimal stride in bytes of the first plane.
func (s Subtype) DefaultStride(width int) (int, error) {
	if width <= 0 {
		return 0, fmt.Errorf("invalid width %d", width)
	}
	switch s {
	case SubtypeYUY2, SubtypeUYVY:
		if width%2 != 0 {
			return 0, fmt.Errorf("%s requires an even width, got %d", s, width)
		}
		return width * 2, nil
	case SubtypeNV12, SubtypeI420:
		if width%2 != 0 {
			return 0, fmt.Errorf("%s requires an even width, got %d", s, width)
		}
		return width, nil
	case SubtypeRGBA:
		return width * 4, nil
	default:
		return 0, fmt.Errorf("stride of %s is not known", s)
	}
}

// FrameSize returns the size in bytes of one frame with the given stride.
func (s Subtype) FrameSize(stride, height int) (int, error) {
	if height <= 0 {
		return 0, fmt.Errorf("invalid height %d", height)
	}
	switch s {
	case SubtypeYUY2, SubtypeUYVY, SubtypeRGBA:
		return stride * height, nil
	case SubtypeNV12:
		return stride * (height + (height+1)/2), nil
	case SubtypeI420:
		chromaHeight := (height + 1) / 2
		return stride*height + 2*(stride/2)*chromaHeight, nil
	default:
		return 0, fmt.Errorf("frame size of %s is not known", s)
	}
}
