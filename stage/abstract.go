package stage

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/types"
)

// Abstract is the contract a pipeline host drives a stage through.
type Abstract interface {
	fmt.Stringer
	types.Closer

	GetStreamShape(ctx context.Context) types.StreamShape
	GetStreamCount(ctx context.Context) (inputs, outputs uint)
	GetStreamIDs(ctx context.Context) (inputs, outputs []types.StreamID, err error)
	AddInputStreams(ctx context.Context, ids ...types.StreamID) error
	DeleteInputStream(ctx context.Context, id types.StreamID) error

	DescribeInputRequirements(ctx context.Context, id types.StreamID) (types.StreamInfo, error)
	DescribeOutputRequirements(ctx context.Context, id types.StreamID) (types.StreamInfo, error)

	EnumerateCandidateInputType(ctx context.Context, id types.StreamID, index int) (*types.MediaType, error)
	EnumerateCandidateOutputType(ctx context.Context, id types.StreamID, index int) (*types.MediaType, error)
	SetInputType(ctx context.Context, id types.StreamID, t *types.MediaType, testOnly bool) error
	SetOutputType(ctx context.Context, id types.StreamID, t *types.MediaType, testOnly bool) error
	GetCurrentInputType(ctx context.Context, id types.StreamID) (*types.MediaType, error)
	GetCurrentOutputType(ctx context.Context, id types.StreamID) (*types.MediaType, error)

	GetInputAcceptance(ctx context.Context, id types.StreamID) (types.InputStatus, error)
	GetOutputReadiness(ctx context.Context) types.OutputStatus
	SubmitInput(ctx context.Context, id types.StreamID, sample *types.Sample) error
	ProduceOutput(ctx context.Context) (*types.Sample, error)

	Dispatch(ctx context.Context, msg types.MessageType) (types.DispatchResult, error)
	GetAttributes(ctx context.Context) *attribute.Store
	State(ctx context.Context) State
	Stats() Statistics
}
