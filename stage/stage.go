// Package stage implements a synchronous single-input single-output
// transform stage: type negotiation, a single pending sample and a
// lifecycle message table around a pluggable Strategy.
//
// Every operation of a Stage runs under one instance lock for its whole
// duration, so concurrent callers are strictly serialized. Nothing blocks
// waiting for data: an operation that cannot proceed fails immediately with
// one of the errors in error.go.
package stage

import (
	"context"
	"fmt"
	"time"

	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/internal"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/types"
	"github.com/xaionaro-go/xsync"
)

// StreamIDDefault is the only valid stream ID of both the input and the output.
const StreamIDDefault = types.StreamID(0)

type Stage[S Strategy] struct {
	Strategy S

	locker     xsync.Mutex
	name       string
	negotiator negotiator
	slot       sampleSlot
	draining   bool
	closed     bool
	attributes *attribute.Store
	counters   *Counters
}

var _ Abstract = (*Stage[Strategy])(nil)

func New[S Strategy](
	ctx context.Context,
	strategy S,
	opts ...Option,
) *Stage[S] {
	cfg := Options(opts).config()
	s := &Stage[S]{
		Strategy:   strategy,
		name:       cfg.Name,
		attributes: attribute.NewStore(cfg.InitialAttributes),
		counters:   newCounters(cfg.LatencyWindow),
	}
	if binder, ok := any(strategy).(AttributesBinder); ok {
		binder.BindAttributes(ctx, s.attributes)
	}
	return s
}

func (s *Stage[S]) String() string {
	if s.name != "" {
		return s.name
	}
	return fmt.Sprintf("Stage(%s)", s.Strategy)
}

func (s *Stage[S]) strategy() Strategy {
	return s.Strategy
}

func checkStreamID(id types.StreamID) error {
	if id != StreamIDDefault {
		return ErrInvalidStreamIndex{StreamID: id}
	}
	return nil
}

func (s *Stage[S]) GetStreamShape(ctx context.Context) types.StreamShape {
	return xsync.DoR1(ctx, &s.locker, func() types.StreamShape {
		return types.StreamShape{
			MinInputs:  1,
			MaxInputs:  1,
			MinOutputs: 1,
			MaxOutputs: 1,
		}
	})
}

func (s *Stage[S]) GetStreamCount(ctx context.Context) (inputs, outputs uint) {
	return xsync.DoR2(ctx, &s.locker, func() (uint, uint) {
		return 1, 1
	})
}

// GetStreamIDs is not implemented: the stream IDs are fixed to StreamIDDefault.
func (s *Stage[S]) GetStreamIDs(ctx context.Context) (inputs, outputs []types.StreamID, err error) {
	return nil, nil, ErrNotImplemented{}
}

func (s *Stage[S]) AddInputStreams(ctx context.Context, ids ...types.StreamID) error {
	return ErrNotImplemented{}
}

func (s *Stage[S]) DeleteInputStream(ctx context.Context, id types.StreamID) error {
	return ErrNotImplemented{}
}

func (s *Stage[S]) DescribeInputRequirements(
	ctx context.Context,
	id types.StreamID,
) (types.StreamInfo, error) {
	return xsync.DoA2R2(ctx, &s.locker, s.describeInputRequirementsLocked, ctx, id)
}

func (s *Stage[S]) describeInputRequirementsLocked(
	ctx context.Context,
	id types.StreamID,
) (types.StreamInfo, error) {
	if err := checkStreamID(id); err != nil {
		return types.StreamInfo{}, err
	}
	return s.Strategy.InputStreamInfo(ctx, s.negotiator.Input()), nil
}

func (s *Stage[S]) DescribeOutputRequirements(
	ctx context.Context,
	id types.StreamID,
) (types.StreamInfo, error) {
	return xsync.DoA2R2(ctx, &s.locker, s.describeOutputRequirementsLocked, ctx, id)
}

func (s *Stage[S]) describeOutputRequirementsLocked(
	ctx context.Context,
	id types.StreamID,
) (types.StreamInfo, error) {
	if err := checkStreamID(id); err != nil {
		return types.StreamInfo{}, err
	}
	return s.Strategy.OutputStreamInfo(ctx, s.negotiator.Output()), nil
}

func (s *Stage[S]) EnumerateCandidateInputType(
	ctx context.Context,
	id types.StreamID,
	index int,
) (_ret *types.MediaType, _err error) {
	logger.Tracef(ctx, "EnumerateCandidateInputType(ctx, %d, %d)", id, index)
	defer func() { logger.Tracef(ctx, "/EnumerateCandidateInputType(ctx, %d, %d): %s %v", id, index, _ret, _err) }()
	return xsync.DoA3R2(ctx, &s.locker, s.enumerateCandidateInputTypeLocked, ctx, id, index)
}

func (s *Stage[S]) enumerateCandidateInputTypeLocked(
	ctx context.Context,
	id types.StreamID,
	index int,
) (*types.MediaType, error) {
	if err := checkStreamID(id); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, ErrNoMoreTypes{}
	}
	return s.negotiator.InputCandidate(ctx, s.strategy(), index)
}

func (s *Stage[S]) EnumerateCandidateOutputType(
	ctx context.Context,
	id types.StreamID,
	index int,
) (_ret *types.MediaType, _err error) {
	logger.Tracef(ctx, "EnumerateCandidateOutputType(ctx, %d, %d)", id, index)
	defer func() { logger.Tracef(ctx, "/EnumerateCandidateOutputType(ctx, %d, %d): %s %v", id, index, _ret, _err) }()
	return xsync.DoA3R2(ctx, &s.locker, s.enumerateCandidateOutputTypeLocked, ctx, id, index)
}

func (s *Stage[S]) enumerateCandidateOutputTypeLocked(
	ctx context.Context,
	id types.StreamID,
	index int,
) (*types.MediaType, error) {
	if err := checkStreamID(id); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, ErrNoMoreTypes{}
	}
	return s.negotiator.OutputCandidate(ctx, s.strategy(), index)
}

// SetInputType validates t and, unless testOnly, stores a clone of it.
// A nil t clears the input type and with it the output type.
func (s *Stage[S]) SetInputType(
	ctx context.Context,
	id types.StreamID,
	t *types.MediaType,
	testOnly bool,
) (_err error) {
	logger.Tracef(ctx, "SetInputType(ctx, %d, %s, %t)", id, t, testOnly)
	defer func() { logger.Tracef(ctx, "/SetInputType(ctx, %d, %s, %t): %v", id, t, testOnly, _err) }()
	return xsync.DoA4R1(ctx, &s.locker, s.setInputTypeLocked, ctx, id, t, testOnly)
}

func (s *Stage[S]) setInputTypeLocked(
	ctx context.Context,
	id types.StreamID,
	t *types.MediaType,
	testOnly bool,
) error {
	if err := checkStreamID(id); err != nil {
		return err
	}
	if s.slot.IsPending() {
		return ErrCannotChangeWhileProcessing{}
	}
	if t != nil {
		if err := s.negotiator.CheckInput(ctx, s.strategy(), t); err != nil {
			return err
		}
	}
	if testOnly {
		return nil
	}
	s.negotiator.SetInput(ctx, s.strategy(), t)
	return nil
}

// SetOutputType validates t against the current input type and, unless
// testOnly, stores a clone of it. A nil t clears the output type.
func (s *Stage[S]) SetOutputType(
	ctx context.Context,
	id types.StreamID,
	t *types.MediaType,
	testOnly bool,
) (_err error) {
	logger.Tracef(ctx, "SetOutputType(ctx, %d, %s, %t)", id, t, testOnly)
	defer func() { logger.Tracef(ctx, "/SetOutputType(ctx, %d, %s, %t): %v", id, t, testOnly, _err) }()
	return xsync.DoA4R1(ctx, &s.locker, s.setOutputTypeLocked, ctx, id, t, testOnly)
}

func (s *Stage[S]) setOutputTypeLocked(
	ctx context.Context,
	id types.StreamID,
	t *types.MediaType,
	testOnly bool,
) error {
	if err := checkStreamID(id); err != nil {
		return err
	}
	if s.slot.IsPending() {
		return ErrCannotChangeWhileProcessing{}
	}
	if t != nil {
		if err := s.negotiator.CheckOutput(ctx, s.strategy(), t); err != nil {
			return err
		}
	}
	if testOnly {
		return nil
	}
	s.negotiator.SetOutput(ctx, s.strategy(), t)
	return nil
}

func (s *Stage[S]) GetCurrentInputType(
	ctx context.Context,
	id types.StreamID,
) (*types.MediaType, error) {
	return xsync.DoA2R2(ctx, &s.locker, s.getCurrentInputTypeLocked, ctx, id)
}

func (s *Stage[S]) getCurrentInputTypeLocked(
	ctx context.Context,
	id types.StreamID,
) (*types.MediaType, error) {
	if err := checkStreamID(id); err != nil {
		return nil, err
	}
	t := s.negotiator.Input()
	if t == nil {
		return nil, ErrTypeNotSet{Direction: DirectionInput}
	}
	return t.Clone(), nil
}

func (s *Stage[S]) GetCurrentOutputType(
	ctx context.Context,
	id types.StreamID,
) (*types.MediaType, error) {
	return xsync.DoA2R2(ctx, &s.locker, s.getCurrentOutputTypeLocked, ctx, id)
}

func (s *Stage[S]) getCurrentOutputTypeLocked(
	ctx context.Context,
	id types.StreamID,
) (*types.MediaType, error) {
	if err := checkStreamID(id); err != nil {
		return nil, err
	}
	t := s.negotiator.Output()
	if t == nil {
		return nil, ErrTypeNotSet{Direction: DirectionOutput}
	}
	return t.Clone(), nil
}

func (s *Stage[S]) GetInputAcceptance(
	ctx context.Context,
	id types.StreamID,
) (types.InputStatus, error) {
	return xsync.DoA2R2(ctx, &s.locker, s.getInputAcceptanceLocked, ctx, id)
}

func (s *Stage[S]) getInputAcceptanceLocked(
	ctx context.Context,
	id types.StreamID,
) (types.InputStatus, error) {
	if err := checkStreamID(id); err != nil {
		return types.InputStatusCannotAcceptMore, err
	}
	if s.slot.IsPending() {
		return types.InputStatusCannotAcceptMore, nil
	}
	return types.InputStatusCanAcceptMore, nil
}

func (s *Stage[S]) GetOutputReadiness(ctx context.Context) types.OutputStatus {
	return xsync.DoR1(ctx, &s.locker, func() types.OutputStatus {
		if s.slot.IsPending() {
			return types.OutputStatusReady
		}
		return types.OutputStatusNotReady
	})
}

// SubmitInput takes the ownership of the sample and makes it pending.
func (s *Stage[S]) SubmitInput(
	ctx context.Context,
	id types.StreamID,
	sample *types.Sample,
) (_err error) {
	logger.Tracef(ctx, "SubmitInput(ctx, %d, %s)", id, sample)
	defer func() { logger.Tracef(ctx, "/SubmitInput(ctx, %d, %s): %v", id, sample, _err) }()
	return xsync.DoA3R1(xsync.WithNoLogging(ctx, true), &s.locker, s.submitInputLocked, ctx, id, sample)
}

func (s *Stage[S]) submitInputLocked(
	ctx context.Context,
	id types.StreamID,
	sample *types.Sample,
) error {
	if err := checkStreamID(id); err != nil {
		return err
	}
	if s.slot.IsPending() {
		return ErrNotAccepting{}
	}
	if !s.negotiator.IsNegotiated() {
		return ErrTypesNotNegotiated{}
	}
	if sample == nil {
		return ErrNilSample{}
	}

	stored := s.slot.Put(sample)
	internal.Assert(ctx, stored, "the pending slot was expected to be empty")
	s.counters.Submitted.Increment(uint64(sample.Size()))

	inspector, ok := any(s.Strategy).(InputInspector)
	if !ok {
		return nil
	}
	accept, err := inspector.InspectInput(ctx, sample)
	if err != nil {
		s.slot.Take()
		s.counters.Failed.Increment(uint64(sample.Size()))
		return fmt.Errorf("%s refused the input sample %s: %w", s.Strategy, sample, err)
	}
	if !accept {
		s.slot.Take()
		s.counters.Rejected.Increment(uint64(sample.Size()))
		logger.Debugf(ctx, "%s rejected the input sample %s; discarded", s.Strategy, sample)
	}
	return nil
}

// ProduceOutput transforms the pending sample and returns the result, which
// is owned by the caller from now on. The pending slot is empty afterwards,
// whether the transform succeeded or not.
func (s *Stage[S]) ProduceOutput(
	ctx context.Context,
) (_ret *types.Sample, _err error) {
	logger.Tracef(ctx, "ProduceOutput(ctx)")
	defer func() { logger.Tracef(ctx, "/ProduceOutput(ctx): %s %v", _ret, _err) }()
	return xsync.DoA1R2(xsync.WithNoLogging(ctx, true), &s.locker, s.produceOutputLocked, ctx)
}

func (s *Stage[S]) produceOutputLocked(
	ctx context.Context,
) (*types.Sample, error) {
	if !s.slot.IsPending() {
		return nil, ErrNeedMoreInput{}
	}
	if !s.negotiator.IsNegotiated() {
		return nil, ErrTypesNotNegotiated{}
	}

	input := s.slot.Take()
	s.draining = false
	inputSize := uint64(input.Size())

	startTS := time.Now()
	output, err := s.Strategy.Transform(ctx, input)
	s.counters.TransformTime.Update(time.Since(startTS))
	if err != nil {
		s.counters.Failed.Increment(inputSize)
		return nil, fmt.Errorf("%s was unable to transform the sample: %w", s.Strategy, err)
	}
	if output == nil {
		s.counters.Dropped.Increment(inputSize)
		logger.Debugf(ctx, "%s dropped the sample", s.Strategy)
		return nil, ErrNeedMoreInput{}
	}
	s.counters.Produced.Increment(uint64(output.Size()))
	return output, nil
}

// GetAttributes returns the live attribute store (not a snapshot).
func (s *Stage[S]) GetAttributes(ctx context.Context) *attribute.Store {
	return xsync.DoR1(ctx, &s.locker, func() *attribute.Store {
		return s.attributes
	})
}

func (s *Stage[S]) State(ctx context.Context) State {
	return xsync.DoR1(ctx, &s.locker, func() State {
		switch {
		case !s.negotiator.IsNegotiated():
			return StateUninitialized
		case s.slot.IsPending() && s.draining:
			return StateDraining
		case s.slot.IsPending():
			return StateStreaming
		default:
			return StateNegotiated
		}
	})
}

// Stats does not take the lock.
func (s *Stage[S]) Stats() Statistics {
	return s.counters.ToStats()
}

// Close releases the pending sample and closes the strategy if it is a
// types.Closer. Closing twice is a no-op.
func (s *Stage[S]) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	return xsync.DoA1R1(ctx, &s.locker, s.closeLocked, ctx)
}

func (s *Stage[S]) closeLocked(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.slot.Take()
	s.draining = false
	closer, ok := any(s.Strategy).(types.Closer)
	if !ok {
		return nil
	}
	if err := closer.Close(ctx); err != nil {
		return fmt.Errorf("unable to close %s: %w", s.Strategy, err)
	}
	return nil
}
