// Package textoverlay implements a strategy drawing a text line over RGBA
// frames. The text and its position are read from the attribute store on
// every frame, so they may be changed while streaming.
package textoverlay

import (
	"context"
	"image"
	"image/color"
	"strings"

	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderPTS in the text is replaced by the presentation timestamp of the frame.
const PlaceholderPTS = "{pts}"

const (
	defaultX = 2
	defaultY = 2
)

type TextOverlay struct {
	effect.VideoBase
	Face font.Face

	color *color.RGBA
}

var (
	_ stage.Strategy            = (*TextOverlay)(nil)
	_ stage.InputTypeEnumerator = (*TextOverlay)(nil)
	_ stage.TypeCommitter       = (*TextOverlay)(nil)
	_ stage.AttributesBinder    = (*TextOverlay)(nil)
)

func New() *TextOverlay {
	return &TextOverlay{
		VideoBase: effect.NewVideoBase(
			[]types.Subtype{types.SubtypeRGBA},
			[]types.Subtype{types.SubtypeRGBA},
		),
		Face:  basicfont.Face7x13,
		color: &color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// SetColor changes the text color; safe to call while streaming.
func (o *TextOverlay) SetColor(c color.RGBA) {
	xatomic.StorePointer(&o.color, &c)
}

func (o *TextOverlay) Color() color.RGBA {
	return *xatomic.LoadPointer(&o.color)
}

func (o *TextOverlay) String() string {
	return "TextOverlay"
}

// Text returns the text to draw and the top-left corner of its box.
func (o *TextOverlay) Text(ctx context.Context, pts string) (string, image.Point) {
	pos := image.Pt(defaultX, defaultY)
	if o.Attributes == nil {
		return "", pos
	}
	text, _ := o.Attributes.GetString(ctx, attribute.KeyOverlayText)
	if x, ok := o.Attributes.GetInt(ctx, attribute.KeyOverlayX); ok {
		pos.X = int(x)
	}
	if y, ok := o.Attributes.GetInt(ctx, attribute.KeyOverlayY); ok {
		pos.Y = int(y)
	}
	return strings.ReplaceAll(text, PlaceholderPTS, pts), pos
}

func (o *TextOverlay) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	if o.IsBypassed(ctx) {
		return input, nil
	}
	text, pos := o.Text(ctx, input.PTS.String())
	if text == "" {
		return input, nil
	}

	img, err := o.Layout.RGBA(input.Buffer)
	if err != nil {
		return nil, err
	}
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(o.Color()),
		Face: o.Face,
		Dot:  fixed.P(pos.X, pos.Y+o.Face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)
	return input, nil
}
