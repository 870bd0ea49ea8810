// Package passthrough implements the identity strategy: every sample is
// returned untouched, whatever the media type is.
package passthrough

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
)

type Passthrough struct{}

var _ stage.Strategy = (*Passthrough)(nil)

func New() *Passthrough {
	return &Passthrough{}
}

func (p *Passthrough) String() string {
	return "Passthrough"
}

func (p *Passthrough) CheckInputType(ctx context.Context, t *types.MediaType) error {
	if t.Major == types.MajorTypeUnknown || t.Subtype == types.SubtypeUndefined {
		return fmt.Errorf("the media type is not defined: %s", t)
	}
	return nil
}

func (p *Passthrough) InputStreamInfo(ctx context.Context, input *types.MediaType) types.StreamInfo {
	return types.VideoStreamInfo(input, types.StreamInfoFlagProcessesInPlace|types.StreamInfoFlagOptional)
}

func (p *Passthrough) OutputStreamInfo(ctx context.Context, output *types.MediaType) types.StreamInfo {
	return types.VideoStreamInfo(output, types.StreamInfoFlagProcessesInPlace)
}

func (p *Passthrough) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	return input, nil
}
