// Package grayscale implements a strategy removing the color from video
// frames.
package grayscale

import (
	"context"
	"fmt"

	"github.com/anthonynsimon/bild/effect"
	videoeffect "github.com/xaionaro-go/avtransform/effect"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
)

const chromaZero = 128

type Grayscale struct {
	videoeffect.VideoBase
}

var (
	_ stage.Strategy            = (*Grayscale)(nil)
	_ stage.InputTypeEnumerator = (*Grayscale)(nil)
	_ stage.TypeCommitter       = (*Grayscale)(nil)
	_ stage.AttributesBinder    = (*Grayscale)(nil)
)

func New() *Grayscale {
	return &Grayscale{
		VideoBase: videoeffect.NewVideoBase(
			[]types.Subtype{types.SubtypeYUY2, types.SubtypeUYVY, types.SubtypeNV12, types.SubtypeI420, types.SubtypeRGBA},
			[]types.Subtype{types.SubtypeYUY2, types.SubtypeUYVY, types.SubtypeNV12, types.SubtypeI420},
		),
	}
}

func (g *Grayscale) String() string {
	return "Grayscale"
}

func (g *Grayscale) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	if g.IsBypassed(ctx) {
		return input, nil
	}

	if g.Layout.Subtype == types.SubtypeRGBA {
		img, err := g.Layout.RGBA(input.Buffer)
		if err != nil {
			return nil, err
		}
		buf, err := g.Layout.FromImage(effect.Grayscale(img), nil)
		if err != nil {
			return nil, fmt.Errorf("unable to render the grayscale image: %w", err)
		}
		return videoeffect.NewOutputSample(input, buf), nil
	}

	planes, err := g.Planes(input)
	if err != nil {
		return nil, err
	}
	switch g.Layout.Subtype {
	case types.SubtypeYUY2, types.SubtypeUYVY:
		_, chroma, _ := frame.LumaOffsets(g.Layout.Subtype)
		for y := 0; y < planes[0].Rows; y++ {
			row := planes[0].Row(y)
			for x := 0; x+3 < len(row); x += 4 {
				row[x+chroma[0]] = chromaZero
				row[x+chroma[1]] = chromaZero
			}
		}
	case types.SubtypeNV12, types.SubtypeI420:
		for _, p := range planes[1:] {
			for y := 0; y < p.Rows; y++ {
				row := p.Row(y)
				for x := range row {
					row[x] = chromaZero
				}
			}
		}
	default:
		return nil, fmt.Errorf("unexpected subtype %s", g.Layout.Subtype)
	}
	return input, nil
}
