package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect/blur"
	"github.com/xaionaro-go/avtransform/effect/flip"
	"github.com/xaionaro-go/avtransform/effect/framecounter"
	"github.com/xaionaro-go/avtransform/effect/grayscale"
	"github.com/xaionaro-go/avtransform/effect/passthrough"
	"github.com/xaionaro-go/avtransform/effect/textoverlay"
	"github.com/xaionaro-go/avtransform/stage"
)

type effectParams struct {
	Text       string
	FlipMode   flip.FlipMode
	BlurRadius float64
}

var effects = map[string]func(ctx context.Context, params effectParams) stage.Abstract{
	"passthrough": func(ctx context.Context, _ effectParams) stage.Abstract {
		return stage.New(ctx, passthrough.New())
	},
	"grayscale": func(ctx context.Context, _ effectParams) stage.Abstract {
		return stage.New(ctx, grayscale.New())
	},
	"framecounter": func(ctx context.Context, _ effectParams) stage.Abstract {
		return stage.New(ctx, framecounter.New())
	},
	"textoverlay": func(ctx context.Context, params effectParams) stage.Abstract {
		return stage.New(ctx, textoverlay.New(), stage.OptionInitialAttributes(attribute.Set{
			attribute.KeyOverlayText: attribute.String(params.Text),
		}))
	},
	"flip": func(ctx context.Context, params effectParams) stage.Abstract {
		return stage.New(ctx, flip.New(), stage.OptionInitialAttributes(attribute.Set{
			attribute.KeyFlipMode: attribute.Int(int64(params.FlipMode)),
		}))
	},
	"blur": func(ctx context.Context, params effectParams) stage.Abstract {
		return stage.New(ctx, blur.NewGaussianBlur(params.BlurRadius))
	},
}

func effectNames() []string {
	var names []string
	for name := range effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newEffectStage(ctx context.Context, name string, params effectParams) (stage.Abstract, error) {
	factory, ok := effects[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect '%s', available: %v", name, effectNames())
	}
	return factory(ctx, params), nil
}
