package frame

import (
	"fmt"
	"image/color"

	"github.com/xaionaro-go/avtransform/types"
)

// Fill paints every pixel of buf with colorAt. Chroma of subsampled formats
// is taken from the top-left pixel of each block.
func (l Layout) Fill(buf []byte, colorAt func(x, y int) color.RGBA) error {
	planes, err := l.Planes(buf)
	if err != nil {
		return err
	}

	switch l.Subtype {
	case types.SubtypeRGBA:
		for y := 0; y < l.Height; y++ {
			row := planes[0].Row(y)
			for x := 0; x < l.Width; x++ {
				c := colorAt(x, y)
				row[x*4+0] = c.R
				row[x*4+1] = c.G
				row[x*4+2] = c.B
				row[x*4+3] = c.A
			}
		}
	case types.SubtypeYUY2, types.SubtypeUYVY:
		luma, chroma, _ := LumaOffsets(l.Subtype)
		for y := 0; y < l.Height; y++ {
			row := planes[0].Row(y)
			for x := 0; x < l.Width; x += 2 {
				pair := row[x*2 : x*2+4]
				y0, cb, cr := toYCbCr(colorAt(x, y))
				y1, _, _ := toYCbCr(colorAt(x+1, y))
				pair[luma[0]] = y0
				pair[luma[1]] = y1
				pair[chroma[0]] = cb
				pair[chroma[1]] = cr
			}
		}
	case types.SubtypeNV12, types.SubtypeI420:
		for y := 0; y < l.Height; y++ {
			lumaRow := planes[0].Row(y)
			for x := 0; x < l.Width; x++ {
				yy, cb, cr := toYCbCr(colorAt(x, y))
				lumaRow[x] = yy
				if x%2 != 0 || y%2 != 0 {
					continue
				}
				if l.Subtype == types.SubtypeNV12 {
					uv := planes[1].Row(y / 2)
					uv[x] = cb
					uv[x+1] = cr
				} else {
					planes[1].Row(y / 2)[x/2] = cb
					planes[2].Row(y / 2)[x/2] = cr
				}
			}
		}
	default:
		return fmt.Errorf("unsupported subtype %s", l.Subtype)
	}
	return nil
}

// At returns the pixel at (x, y): color.RGBA for RGBA buffers and
// color.YCbCr for the YUV ones.
func (l Layout) At(buf []byte, x, y int) (color.Color, error) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return nil, fmt.Errorf("(%d, %d) is out of %dx%d", x, y, l.Width, l.Height)
	}
	planes, err := l.Planes(buf)
	if err != nil {
		return nil, err
	}

	switch l.Subtype {
	case types.SubtypeRGBA:
		px := planes[0].Row(y)[x*4 : x*4+4]
		return color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}, nil
	case types.SubtypeYUY2, types.SubtypeUYVY:
		luma, chroma, _ := LumaOffsets(l.Subtype)
		pairX := x &^ 1
		pair := planes[0].Row(y)[pairX*2 : pairX*2+4]
		return color.YCbCr{Y: pair[luma[x-pairX]], Cb: pair[chroma[0]], Cr: pair[chroma[1]]}, nil
	case types.SubtypeNV12:
		uv := planes[1].Row(y / 2)
		return color.YCbCr{Y: planes[0].Row(y)[x], Cb: uv[x&^1], Cr: uv[x|1]}, nil
	case types.SubtypeI420:
		return color.YCbCr{
			Y:  planes[0].Row(y)[x],
			Cb: planes[1].Row(y / 2)[x/2],
			Cr: planes[2].Row(y / 2)[x/2],
		}, nil
	default:
		return nil, fmt.Errorf("unsupported subtype %s", l.Subtype)
	}
}

func toYCbCr(c color.RGBA) (y, cb, cr uint8) {
	return color.RGBToYCbCr(c.R, c.G, c.B)
}
