// Package effect contains the pieces shared by the effect strategies
// implemented in its subpackages.
package effect

import (
	"context"
	"fmt"
	"slices"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/types"
)

// VideoBase implements the type handling hooks of a strategy working on
// uncompressed video frames of a fixed set of subtypes. It is meant to be
// embedded; the embedding strategy adds String and Transform.
type VideoBase struct {
	Subtypes []types.Subtype

	// InPlaceSubtypes are the subtypes processed in place; for the others
	// the strategy allocates the output samples.
	InPlaceSubtypes []types.Subtype

	Layout     frame.Layout
	Attributes *attribute.Store
}

func NewVideoBase(subtypes, inPlaceSubtypes []types.Subtype) VideoBase {
	return VideoBase{
		Subtypes:        subtypes,
		InPlaceSubtypes: inPlaceSubtypes,
	}
}

func (b *VideoBase) CheckInputType(ctx context.Context, t *types.MediaType) error {
	if t.Major != types.MajorTypeVideo {
		return fmt.Errorf("expected a video type, got %s", t.Major)
	}
	if !slices.Contains(b.Subtypes, t.Subtype) {
		return fmt.Errorf("subtype %s is not supported, expected one of %v", t.Subtype, b.Subtypes)
	}
	if _, err := frame.LayoutFromMediaType(t); err != nil {
		return fmt.Errorf("invalid frame layout: %w", err)
	}
	return nil
}

func (b *VideoBase) InputTypeCandidate(ctx context.Context, index int) (*types.MediaType, error) {
	if index >= len(b.Subtypes) {
		return nil, nil
	}
	return types.NewMediaType(types.MajorTypeVideo, b.Subtypes[index]), nil
}

func (b *VideoBase) streamInfo(t *types.MediaType) types.StreamInfo {
	if t == nil {
		return types.StreamInfo{
			Flags: types.StreamInfoFlagWholeSamples | types.StreamInfoFlagSingleSamplePerBuffer | types.StreamInfoFlagFixedSampleSize,
		}
	}
	flags := types.StreamInfoFlagProvidesSamples
	if slices.Contains(b.InPlaceSubtypes, t.Subtype) {
		flags = types.StreamInfoFlagProcessesInPlace
	}
	return types.VideoStreamInfo(t, flags)
}

func (b *VideoBase) InputStreamInfo(ctx context.Context, input *types.MediaType) types.StreamInfo {
	return b.streamInfo(input)
}

func (b *VideoBase) OutputStreamInfo(ctx context.Context, output *types.MediaType) types.StreamInfo {
	return b.streamInfo(output)
}

func (b *VideoBase) OnInputTypeSet(ctx context.Context, t *types.MediaType) {
	if t == nil {
		b.Layout = frame.Layout{}
		return
	}
	layout, err := frame.LayoutFromMediaType(t)
	if err != nil {
		logger.Errorf(ctx, "unable to get the layout of an already accepted type %s: %v", t, err)
		return
	}
	b.Layout = layout
	logger.Debugf(ctx, "layout: %s", layout)
}

func (b *VideoBase) OnOutputTypeSet(ctx context.Context, t *types.MediaType) {}

func (b *VideoBase) BindAttributes(ctx context.Context, attrs *attribute.Store) {
	b.Attributes = attrs
}

// IsBypassed reports if the effect is disabled through the attribute store.
func (b *VideoBase) IsBypassed(ctx context.Context) bool {
	if b.Attributes == nil {
		return false
	}
	v, ok := b.Attributes.GetInt(ctx, attribute.KeyEffectBypass)
	return ok && v != 0
}

// Planes returns the planes of the sample according to the committed layout.
func (b *VideoBase) Planes(s *types.Sample) ([]frame.Plane, error) {
	return b.Layout.Planes(s.Buffer)
}

// NewOutputSample wraps buf into a new sample with the metadata of input.
func NewOutputSample(input *types.Sample, buf []byte) *types.Sample {
	out := &types.Sample{Buffer: buf}
	out.CopyMetadataFrom(input)
	return out
}
