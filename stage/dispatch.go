package stage

import (
	"context"

	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/types"
	"github.com/xaionaro-go/xsync"
)

// Dispatch handles a lifecycle message. Unknown messages are reported as
// DispatchResultNotHandled without an error.
func (s *Stage[S]) Dispatch(
	ctx context.Context,
	msg types.MessageType,
) (_ret types.DispatchResult, _err error) {
	logger.Tracef(ctx, "Dispatch(ctx, %s)", msg)
	defer func() { logger.Tracef(ctx, "/Dispatch(ctx, %s): %s %v", msg, _ret, _err) }()
	return xsync.DoA2R2(ctx, &s.locker, s.dispatchLocked, ctx, msg)
}

func (s *Stage[S]) dispatchLocked(
	ctx context.Context,
	msg types.MessageType,
) (types.DispatchResult, error) {
	switch msg {
	case types.MessageTypeStartOfStream, types.MessageTypeFlush:
		s.resetLocked(ctx)
		return types.DispatchResultHandled, nil
	case types.MessageTypeDrain:
		if s.slot.IsPending() {
			s.draining = true
		}
		return types.DispatchResultHandled, nil
	case types.MessageTypeEndOfStream:
		return types.DispatchResultHandled, nil
	case types.MessageTypeBeginStreaming:
		if observer, ok := any(s.Strategy).(StreamingObserver); ok {
			observer.OnBeginStreaming(ctx)
		}
		return types.DispatchResultHandled, nil
	case types.MessageTypeEndStreaming:
		if observer, ok := any(s.Strategy).(StreamingObserver); ok {
			observer.OnEndStreaming(ctx)
		}
		return types.DispatchResultHandled, nil
	case types.MessageTypeMarker, types.MessageTypeSetDeviceContext:
		return types.DispatchResultNotHandled, ErrUnsupportedMessage{Message: msg}
	default:
		logger.Debugf(ctx, "ignoring an unknown message %s", msg)
		return types.DispatchResultNotHandled, nil
	}
}

func (s *Stage[S]) resetLocked(ctx context.Context) {
	if dropped := s.slot.Take(); dropped != nil {
		s.counters.Flushed.Increment(uint64(dropped.Size()))
		logger.Debugf(ctx, "flushed the pending sample %s", dropped)
	}
	s.draining = false
	if resetter, ok := any(s.Strategy).(Resetter); ok {
		resetter.Reset(ctx)
	}
}
