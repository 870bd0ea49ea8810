package stage

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/types"
)

// Strategy is the effect-specific logic plugged into a Stage. A Strategy is
// called only under the Stage lock, so it needs no synchronization of its
// own, except for the attribute store it may read.
type Strategy interface {
	fmt.Stringer

	// CheckInputType returns nil if the type is acceptable as the input type.
	CheckInputType(ctx context.Context, t *types.MediaType) error

	// InputStreamInfo describes the input buffer requirements; input may be nil.
	InputStreamInfo(ctx context.Context, input *types.MediaType) types.StreamInfo

	// OutputStreamInfo describes the output buffer requirements; output may be nil.
	OutputStreamInfo(ctx context.Context, output *types.MediaType) types.StreamInfo

	// Transform turns the pending input into the output. It either mutates
	// the input and returns it (in place) or returns a new sample
	// (StreamInfoFlagProvidesSamples). Returning (nil, nil) drops the sample.
	Transform(ctx context.Context, input *types.Sample) (*types.Sample, error)
}

/* for easier copy&paste:

func (s *MyFancyStrategyPlaceholder) String() string {
}

func (s *MyFancyStrategyPlaceholder) CheckInputType(ctx context.Context, t *types.MediaType) error {
}

func (s *MyFancyStrategyPlaceholder) InputStreamInfo(ctx context.Context, input *types.MediaType) types.StreamInfo {
}

func (s *MyFancyStrategyPlaceholder) OutputStreamInfo(ctx context.Context, output *types.MediaType) types.StreamInfo {
}

func (s *MyFancyStrategyPlaceholder) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
}

*/

// InputTypeEnumerator lists the preferred input types. Returning
// ErrNoMoreTypes{} (or a nil type) ends the enumeration.
type InputTypeEnumerator interface {
	InputTypeCandidate(ctx context.Context, index int) (*types.MediaType, error)
}

// OutputTypeEnumerator overrides the default "single type derived from the
// input" enumeration. input is nil if no input type is set.
type OutputTypeEnumerator interface {
	OutputTypeCandidate(ctx context.Context, input *types.MediaType, index int) (*types.MediaType, error)
}

// OutputTypeDeriver overrides the default "output mirrors input" policy.
type OutputTypeDeriver interface {
	DeriveOutputType(ctx context.Context, input *types.MediaType) (*types.MediaType, error)
}

// OutputTypeChecker overrides the default "output must equal the derived type" rule.
type OutputTypeChecker interface {
	CheckOutputType(ctx context.Context, input, output *types.MediaType) error
}

// TypeCommitter is notified after a type is stored (nil means cleared).
// It is the place to precompute per-format constants such as strides.
type TypeCommitter interface {
	OnInputTypeSet(ctx context.Context, t *types.MediaType)
	OnOutputTypeSet(ctx context.Context, t *types.MediaType)
}

// InputInspector looks at a just-submitted sample before it becomes
// pending. Returning accept == false discards the sample without failing
// the submission (e.g. an unsupported interlaced frame).
type InputInspector interface {
	InspectInput(ctx context.Context, input *types.Sample) (accept bool, err error)
}

// Resetter drops any per-stream state on StartOfStream and Flush.
type Resetter interface {
	Reset(ctx context.Context)
}

type StreamingObserver interface {
	OnBeginStreaming(ctx context.Context)
	OnEndStreaming(ctx context.Context)
}

// AttributesBinder receives the Stage attribute store once, on construction.
type AttributesBinder interface {
	BindAttributes(ctx context.Context, attrs *attribute.Store)
}
