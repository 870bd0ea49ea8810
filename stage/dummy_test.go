package stage

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/types"
)

// dummyStrategy is an identity strategy with overridable hooks.
type dummyStrategy struct {
	Accept      []types.Subtype
	TransformFn func(ctx context.Context, input *types.Sample) (*types.Sample, error)
	InspectFn   func(ctx context.Context, input *types.Sample) (bool, error)

	TransformCallCount      int
	ResetCallCount          int
	BeginStreamingCallCount int
	EndStreamingCallCount   int
	CloseCallCount          int
	CommittedInput          []*types.MediaType
	CommittedOutput         []*types.MediaType
	Attributes              *attribute.Store
}

var (
	_ Strategy          = (*dummyStrategy)(nil)
	_ TypeCommitter     = (*dummyStrategy)(nil)
	_ InputInspector    = (*dummyStrategy)(nil)
	_ Resetter          = (*dummyStrategy)(nil)
	_ StreamingObserver = (*dummyStrategy)(nil)
	_ AttributesBinder  = (*dummyStrategy)(nil)
	_ types.Closer      = (*dummyStrategy)(nil)
)

func (s *dummyStrategy) String() string {
	return "dummy"
}

func (s *dummyStrategy) CheckInputType(ctx context.Context, t *types.MediaType) error {
	if t.Major != types.MajorTypeVideo {
		return fmt.Errorf("not a video type: %s", t.Major)
	}
	if len(s.Accept) == 0 {
		return nil
	}
	for _, subtype := range s.Accept {
		if subtype == t.Subtype {
			return nil
		}
	}
	return fmt.Errorf("subtype %s is not supported", t.Subtype)
}

func (s *dummyStrategy) InputStreamInfo(ctx context.Context, input *types.MediaType) types.StreamInfo {
	return types.VideoStreamInfo(input, types.StreamInfoFlagProcessesInPlace)
}

func (s *dummyStrategy) OutputStreamInfo(ctx context.Context, output *types.MediaType) types.StreamInfo {
	return types.VideoStreamInfo(output, types.StreamInfoFlagProcessesInPlace)
}

func (s *dummyStrategy) Transform(ctx context.Context, input *types.Sample) (*types.Sample, error) {
	s.TransformCallCount++
	if s.TransformFn != nil {
		return s.TransformFn(ctx, input)
	}
	return input, nil
}

func (s *dummyStrategy) OnInputTypeSet(ctx context.Context, t *types.MediaType) {
	s.CommittedInput = append(s.CommittedInput, t)
}

func (s *dummyStrategy) OnOutputTypeSet(ctx context.Context, t *types.MediaType) {
	s.CommittedOutput = append(s.CommittedOutput, t)
}

func (s *dummyStrategy) InspectInput(ctx context.Context, input *types.Sample) (bool, error) {
	if s.InspectFn != nil {
		return s.InspectFn(ctx, input)
	}
	return true, nil
}

func (s *dummyStrategy) Reset(ctx context.Context) {
	s.ResetCallCount++
}

func (s *dummyStrategy) OnBeginStreaming(ctx context.Context) {
	s.BeginStreamingCallCount++
}

func (s *dummyStrategy) OnEndStreaming(ctx context.Context) {
	s.EndStreamingCallCount++
}

func (s *dummyStrategy) BindAttributes(ctx context.Context, attrs *attribute.Store) {
	s.Attributes = attrs
}

func (s *dummyStrategy) Close(ctx context.Context) error {
	s.CloseCallCount++
	return nil
}

// halfWidthStrategy derives an output type of half the input width, to
// exercise a non-identity OutputTypeDeriver.
type halfWidthStrategy struct {
	dummyStrategy
}

var _ OutputTypeDeriver = (*halfWidthStrategy)(nil)

func (s *halfWidthStrategy) DeriveOutputType(ctx context.Context, input *types.MediaType) (*types.MediaType, error) {
	w, h, ok := input.FrameSize()
	if !ok {
		return nil, fmt.Errorf("no frame size in %s", input)
	}
	return types.NewVideoMediaType(input.Subtype, w/2, h, types.Rational{})
}

// enumeratingStrategy offers the given input types in order.
type enumeratingStrategy struct {
	dummyStrategy
	Candidates []*types.MediaType
}

var _ InputTypeEnumerator = (*enumeratingStrategy)(nil)

func (s *enumeratingStrategy) InputTypeCandidate(ctx context.Context, index int) (*types.MediaType, error) {
	if index >= len(s.Candidates) {
		return nil, ErrNoMoreTypes{}
	}
	return s.Candidates[index], nil
}
