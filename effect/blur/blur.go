// Package blur implements a gaussian blur strategy for RGBA frames.
package blur

import (
	"context"
	"fmt"

	"github.com/anthonynsimon/bild/blur"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
	"go.uber.org/atomic"
)

type GaussianBlur struct {
	effect.VideoBase

	// DefaultRadius is used while attribute.KeyBlurRadius is not set.
	DefaultRadius atomic.Float64
}

var (
	_ stage.Strategy            = (*GaussianBlur)(nil)
	_ stage.InputTypeEnumerator = (*GaussianBlur)(nil)
	_ stage.TypeCommitter       = (*GaussianBlur)(nil)
	_ stage.AttributesBinder    = (*GaussianBlur)(nil)
)

func NewGaussianBlur(defaultRadius float64) *GaussianBlur {
	b := &GaussianBlur{
		VideoBase: effect.NewVideoBase([]types.Subtype{types.SubtypeRGBA}, nil),
	}
	b.DefaultRadius.Store(defaultRadius)
	return b
}

func (b *GaussianBlur) String() string {
	return fmt.Sprintf("GaussianBlur(%v)", b.DefaultRadius.Load())
}

func (b *GaussianBlur) Radius(ctx context.Context) float64 {
	if b.Attributes != nil {
		if radius, ok := b.Attributes.GetFloat(ctx, attribute.KeyBlurRadius); ok {
			return radius
		}
	}
	return b.DefaultRadius.Load()
}

func (b *GaussianBlur) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	radius := b.Radius(ctx)
	if radius <= 0 || b.IsBypassed(ctx) {
		return input, nil
	}

	img, err := b.Layout.RGBA(input.Buffer)
	if err != nil {
		return nil, err
	}
	buf, err := b.Layout.FromImage(blur.Gaussian(img, radius), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to render the blurred image: %w", err)
	}
	return effect.NewOutputSample(input, buf), nil
}
