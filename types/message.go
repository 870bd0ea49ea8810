// message.go defines the control messages a pipeline host dispatches to a stage.

package types

import "fmt"

type MessageType int

const (
	MessageTypeUndefined = MessageType(iota)
	MessageTypeFlush
	MessageTypeDrain
	MessageTypeSetDeviceContext
	MessageTypeMarker
	MessageTypeBeginStreaming
	MessageTypeEndStreaming
	MessageTypeStartOfStream
	MessageTypeEndOfStream
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeUndefined:
		return "undefined"
	case MessageTypeFlush:
		return "flush"
	case MessageTypeDrain:
		return "drain"
	case MessageTypeSetDeviceContext:
		return "set_device_context"
	case MessageTypeMarker:
		return "marker"
	case MessageTypeBeginStreaming:
		return "begin_streaming"
	case MessageTypeEndStreaming:
		return "end_streaming"
	case MessageTypeStartOfStream:
		return "start_of_stream"
	case MessageTypeEndOfStream:
		return "end_of_stream"
	default:
		return fmt.Sprintf("MessageType(%d)", int(t))
	}
}

type DispatchResult int

const (
	DispatchResultHandled = DispatchResult(iota)
	DispatchResultNotHandled
)

func (r DispatchResult) String() string {
	switch r {
	case DispatchResultHandled:
		return "handled"
	case DispatchResultNotHandled:
		return "not_handled"
	default:
		return fmt.Sprintf("DispatchResult(%d)", int(r))
	}
}
