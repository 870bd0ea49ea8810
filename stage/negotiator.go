package stage

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/types"
	"github.com/xaionaro-go/typing"
)

// negotiator stores the current input and output types. It is not
// synchronized: it is accessed only under the Stage lock.
//
// Invariant: output is set only if input is set.
type negotiator struct {
	input  typing.Optional[types.MediaType]
	output typing.Optional[types.MediaType]
}

// Input returns the stored input type; the result must not be modified.
func (n *negotiator) Input() *types.MediaType {
	if !n.input.IsSet() {
		return nil
	}
	t := n.input.Get()
	return &t
}

// Output returns the stored output type; the result must not be modified.
func (n *negotiator) Output() *types.MediaType {
	if !n.output.IsSet() {
		return nil
	}
	t := n.output.Get()
	return &t
}

func (n *negotiator) IsNegotiated() bool {
	return n.input.IsSet() && n.output.IsSet()
}

func deriveOutputType(
	ctx context.Context,
	strategy Strategy,
	input *types.MediaType,
) (*types.MediaType, error) {
	if deriver, ok := strategy.(OutputTypeDeriver); ok {
		return deriver.DeriveOutputType(ctx, input)
	}
	return input.Clone(), nil
}

func (n *negotiator) CheckInput(
	ctx context.Context,
	strategy Strategy,
	t *types.MediaType,
) error {
	if err := strategy.CheckInputType(ctx, t); err != nil {
		return ErrTypeRejected{Type: t, Err: err}
	}

	output := n.Output()
	if output == nil {
		return nil
	}

	// the output type is already committed, so the new input must still
	// derive into it:
	derived, err := deriveOutputType(ctx, strategy, t)
	if err != nil {
		return ErrTypeRejected{Type: t, Err: fmt.Errorf("unable to derive the output type: %w", err)}
	}
	if !derived.Equal(output) {
		return ErrTypeRejected{Type: t, Err: fmt.Errorf("the derived output type %s does not match the current output type %s", derived, output)}
	}
	return nil
}

func (n *negotiator) CheckOutput(
	ctx context.Context,
	strategy Strategy,
	t *types.MediaType,
) error {
	input := n.Input()
	if input == nil {
		return ErrTypeNotSet{Direction: DirectionInput}
	}

	if checker, ok := strategy.(OutputTypeChecker); ok {
		if err := checker.CheckOutputType(ctx, input, t); err != nil {
			return ErrTypeRejected{Type: t, Err: err}
		}
		return nil
	}

	derived, err := deriveOutputType(ctx, strategy, input)
	if err != nil {
		return ErrTypeRejected{Type: t, Err: fmt.Errorf("unable to derive the output type: %w", err)}
	}
	if !derived.Equal(t) {
		return ErrTypeRejected{Type: t, Err: fmt.Errorf("expected %s", derived)}
	}
	return nil
}

// SetInput stores a clone of t (or clears both types if t is nil) and
// notifies the strategy. The type must already be checked.
func (n *negotiator) SetInput(
	ctx context.Context,
	strategy Strategy,
	t *types.MediaType,
) {
	committer, _ := strategy.(TypeCommitter)
	if t == nil {
		logger.Debugf(ctx, "clearing the input type (and so the output type)")
		hadOutput := n.output.IsSet()
		n.input.Unset()
		n.output.Unset()
		if committer != nil {
			committer.OnInputTypeSet(ctx, nil)
			if hadOutput {
				committer.OnOutputTypeSet(ctx, nil)
			}
		}
		return
	}

	c := t.Clone()
	n.input.Set(*c)
	logger.Debugf(ctx, "input type committed: %s", spew.Sdump(c))
	if committer != nil {
		committer.OnInputTypeSet(ctx, n.Input().Clone())
	}
}

func (n *negotiator) SetOutput(
	ctx context.Context,
	strategy Strategy,
	t *types.MediaType,
) {
	committer, _ := strategy.(TypeCommitter)
	if t == nil {
		logger.Debugf(ctx, "clearing the output type")
		n.output.Unset()
		if committer != nil {
			committer.OnOutputTypeSet(ctx, nil)
		}
		return
	}

	c := t.Clone()
	n.output.Set(*c)
	logger.Debugf(ctx, "output type committed: %s", spew.Sdump(c))
	if committer != nil {
		committer.OnOutputTypeSet(ctx, n.Output().Clone())
	}
}

func (n *negotiator) InputCandidate(
	ctx context.Context,
	strategy Strategy,
	index int,
) (*types.MediaType, error) {
	enumerator, ok := strategy.(InputTypeEnumerator)
	if !ok {
		return nil, ErrNoMoreTypes{}
	}
	t, err := enumerator.InputTypeCandidate(ctx, index)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoMoreTypes{}
	}
	return t.Clone(), nil
}

func (n *negotiator) OutputCandidate(
	ctx context.Context,
	strategy Strategy,
	index int,
) (*types.MediaType, error) {
	if enumerator, ok := strategy.(OutputTypeEnumerator); ok {
		t, err := enumerator.OutputTypeCandidate(ctx, n.Input().Clone(), index)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrNoMoreTypes{}
		}
		return t.Clone(), nil
	}

	input := n.Input()
	if input == nil {
		return nil, ErrTypeNotSet{Direction: DirectionInput}
	}
	if index > 0 {
		return nil, ErrNoMoreTypes{}
	}
	derived, err := deriveOutputType(ctx, strategy, input)
	if err != nil {
		return nil, fmt.Errorf("unable to derive the output type from %s: %w", input, err)
	}
	return derived.Clone(), nil
}
