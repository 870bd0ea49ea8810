// Package flip implements a strategy mirroring or rotating video frames by
// 180 degrees, controlled at runtime through the attribute store.
package flip

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
)

type Flip struct {
	effect.VideoBase
	rowBuf []byte
}

var (
	_ stage.Strategy            = (*Flip)(nil)
	_ stage.InputTypeEnumerator = (*Flip)(nil)
	_ stage.TypeCommitter       = (*Flip)(nil)
	_ stage.AttributesBinder    = (*Flip)(nil)
	_ stage.InputInspector      = (*Flip)(nil)
)

func New() *Flip {
	return &Flip{
		VideoBase: effect.NewVideoBase(
			types.VideoSubtypes(),
			[]types.Subtype{types.SubtypeYUY2, types.SubtypeUYVY, types.SubtypeNV12, types.SubtypeI420},
		),
	}
}

func (f *Flip) String() string {
	return "Flip"
}

// Mode returns the currently requested flip mode; invalid values mean FlipModeNone.
func (f *Flip) Mode(ctx context.Context) FlipMode {
	if f.Attributes == nil {
		return FlipModeNone
	}
	v, ok := f.Attributes.GetInt(ctx, attribute.KeyFlipMode)
	if !ok {
		return FlipModeNone
	}
	mode := FlipMode(v)
	if !mode.IsValid() {
		logger.Warnf(ctx, "invalid flip mode %d, ignoring", v)
		return FlipModeNone
	}
	return mode
}

func (f *Flip) InspectInput(ctx context.Context, input *types.Sample) (bool, error) {
	if input.IsInterlaced() && f.Mode(ctx).SwapsRows() {
		return false, nil
	}
	return true, nil
}

func (f *Flip) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	mode := f.Mode(ctx)
	if mode == FlipModeNone || f.IsBypassed(ctx) {
		return input, nil
	}
	if input.IsInterlaced() && mode.SwapsRows() {
		// the mode was changed after the sample passed InspectInput
		logger.Debugf(ctx, "dropping interlaced %s: %s would swap its fields", input, mode)
		return nil, nil
	}

	if f.Layout.Subtype == types.SubtypeRGBA {
		return f.transformRGBA(input, mode)
	}

	planes, err := f.Planes(input)
	if err != nil {
		return nil, err
	}
	if mode == FlipModeHorizontal || mode == FlipModeRotate180 {
		f.mirror(planes)
	}
	if mode.SwapsRows() {
		for _, p := range planes {
			f.swapRows(p)
		}
	}
	return input, nil
}

func (f *Flip) transformRGBA(input *types.Sample, mode FlipMode) (*types.Sample, error) {
	img, err := f.Layout.RGBA(input.Buffer)
	if err != nil {
		return nil, err
	}
	var result image.Image
	switch mode {
	case FlipModeHorizontal:
		result = transform.FlipH(img)
	case FlipModeVertical:
		result = transform.FlipV(img)
	case FlipModeRotate180:
		result = transform.FlipV(transform.FlipH(img))
	default:
		return nil, fmt.Errorf("unexpected flip mode %s", mode)
	}
	buf, err := f.Layout.FromImage(result, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to render the flipped image: %w", err)
	}
	return effect.NewOutputSample(input, buf), nil
}

func (f *Flip) mirror(planes []frame.Plane) {
	switch f.Layout.Subtype {
	case types.SubtypeYUY2, types.SubtypeUYVY:
		luma, _, _ := frame.LumaOffsets(f.Layout.Subtype)
		for y := 0; y < planes[0].Rows; y++ {
			row := planes[0].Row(y)
			reverseUnits(row, 4)
			for x := 0; x+3 < len(row); x += 4 {
				row[x+luma[0]], row[x+luma[1]] = row[x+luma[1]], row[x+luma[0]]
			}
		}
	case types.SubtypeNV12:
		reverseRows(planes[0], 1)
		reverseRows(planes[1], 2)
	case types.SubtypeI420:
		for _, p := range planes {
			reverseRows(p, 1)
		}
	}
}

func reverseRows(p frame.Plane, unit int) {
	for y := 0; y < p.Rows; y++ {
		reverseUnits(p.Row(y), unit)
	}
}

// reverseUnits reverses the order of unit-sized groups of bytes in row.
func reverseUnits(row []byte, unit int) {
	count := len(row) / unit
	for i, j := 0, count-1; i < j; i, j = i+1, j-1 {
		a := row[i*unit : i*unit+unit]
		b := row[j*unit : j*unit+unit]
		for k := 0; k < unit; k++ {
			a[k], b[k] = b[k], a[k]
		}
	}
}

func (f *Flip) swapRows(p frame.Plane) {
	if cap(f.rowBuf) < p.RowBytes {
		f.rowBuf = make([]byte, p.RowBytes)
	}
	tmp := f.rowBuf[:p.RowBytes]
	for i, j := 0, p.Rows-1; i < j; i, j = i+1, j-1 {
		a, b := p.Row(i), p.Row(j)
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
