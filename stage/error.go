package stage

import (
	"fmt"

	"github.com/xaionaro-go/avtransform/types"
)

// All the errors below are expected conditions a pipeline host branches on,
// e.g. `errors.Is(err, stage.ErrNotAccepting{})`. Errors carrying details
// match any value of their own type in errors.Is.

type ErrTypeRejected struct {
	Type *types.MediaType
	Err  error
}

func (e ErrTypeRejected) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("media type %s rejected: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("media type %s rejected", e.Type)
}

func (e ErrTypeRejected) Unwrap() error {
	return e.Err
}

func (ErrTypeRejected) Is(target error) bool {
	_, ok := target.(ErrTypeRejected)
	return ok
}

type ErrTypeNotSet struct {
	Direction Direction
}

func (e ErrTypeNotSet) Error() string {
	return fmt.Sprintf("%s media type is not set", e.Direction)
}

func (ErrTypeNotSet) Is(target error) bool {
	_, ok := target.(ErrTypeNotSet)
	return ok
}

type ErrTypesNotNegotiated struct{}

func (ErrTypesNotNegotiated) Error() string {
	return "input and output media types are not negotiated"
}

type ErrCannotChangeWhileProcessing struct{}

func (ErrCannotChangeWhileProcessing) Error() string {
	return "cannot change the media type while a sample is pending"
}

type ErrNotAccepting struct{}

func (ErrNotAccepting) Error() string {
	return "a sample is already pending, cannot accept more input"
}

type ErrNeedMoreInput struct{}

func (ErrNeedMoreInput) Error() string {
	return "need more input"
}

type ErrUnsupportedMessage struct {
	Message types.MessageType
}

func (e ErrUnsupportedMessage) Error() string {
	return fmt.Sprintf("message %s is not supported", e.Message)
}

func (ErrUnsupportedMessage) Is(target error) bool {
	_, ok := target.(ErrUnsupportedMessage)
	return ok
}

type ErrInvalidStreamIndex struct {
	StreamID types.StreamID
}

func (e ErrInvalidStreamIndex) Error() string {
	return fmt.Sprintf("invalid stream ID %d", e.StreamID)
}

func (ErrInvalidStreamIndex) Is(target error) bool {
	_, ok := target.(ErrInvalidStreamIndex)
	return ok
}

type ErrNoMoreTypes struct{}

func (ErrNoMoreTypes) Error() string {
	return "no more types"
}

type ErrNotImplemented struct{}

func (ErrNotImplemented) Error() string {
	return "not implemented"
}

type ErrNilSample struct{}

func (ErrNilSample) Error() string {
	return "nil sample"
}
