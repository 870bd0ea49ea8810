// Package framecounter implements a pass-through strategy counting the
// samples it has seen and publishing the count to the attribute store.
package framecounter

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
	"go.uber.org/atomic"
)

// Index is attached to the side data of every sample passing through a
// FrameCounter; the first sample after a reset is #1.
type Index uint64

type FrameCounter struct {
	effect.VideoBase
	Count atomic.Uint64
}

var (
	_ stage.Strategy          = (*FrameCounter)(nil)
	_ stage.TypeCommitter     = (*FrameCounter)(nil)
	_ stage.AttributesBinder  = (*FrameCounter)(nil)
	_ stage.Resetter          = (*FrameCounter)(nil)
	_ stage.StreamingObserver = (*FrameCounter)(nil)
)

func New() *FrameCounter {
	return &FrameCounter{
		VideoBase: effect.NewVideoBase(types.VideoSubtypes(), types.VideoSubtypes()),
	}
}

func (c *FrameCounter) String() string {
	return fmt.Sprintf("FrameCounter(%d)", c.Count.Load())
}

func (c *FrameCounter) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	count := c.Count.Inc()
	input.SideData = append(input.SideData, Index(count))
	if c.Attributes != nil {
		c.Attributes.SetInt(ctx, attribute.KeyFrameCount, int64(count))
	}
	return input, nil
}

func (c *FrameCounter) Reset(ctx context.Context) {
	logger.Debugf(ctx, "resetting the frame counter at %d", c.Count.Load())
	c.Count.Store(0)
	if c.Attributes != nil {
		c.Attributes.SetInt(ctx, attribute.KeyFrameCount, 0)
	}
}

func (c *FrameCounter) OnBeginStreaming(ctx context.Context) {
	logger.Debugf(ctx, "begin streaming at frame %d", c.Count.Load())
}

func (c *FrameCounter) OnEndStreaming(ctx context.Context) {
	logger.Infof(ctx, "end streaming: %d frames counted", c.Count.Load())
}
