package frame

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/xaionaro-go/avtransform/types"
)

// RGBA wraps an RGBA frame buffer as an image without copying: drawing on
// the image modifies the buffer.
func (l Layout) RGBA(buf []byte) (*image.RGBA, error) {
	if l.Subtype != types.SubtypeRGBA {
		return nil, fmt.Errorf("expected %s, got %s", types.SubtypeRGBA, l.Subtype)
	}
	size := l.Stride * l.Height
	if len(buf) < size {
		return nil, fmt.Errorf("buffer is too small: %d < %d", len(buf), size)
	}
	return &image.RGBA{
		Pix:    buf[:size:size],
		Stride: l.Stride,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}, nil
}

// FromImage renders img into an RGBA frame buffer of the layout, reusing
// img's pixels directly when they already match the layout.
func (l Layout) FromImage(img image.Image, buf []byte) ([]byte, error) {
	if rgba, ok := img.(*image.RGBA); ok &&
		rgba.Stride == l.Stride &&
		rgba.Rect == image.Rect(0, 0, l.Width, l.Height) &&
		len(rgba.Pix) == l.Stride*l.Height &&
		buf == nil {
		return rgba.Pix, nil
	}

	if buf == nil {
		buf = make([]byte, l.FrameSize())
	}
	dst, err := l.RGBA(buf)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf, nil
}
