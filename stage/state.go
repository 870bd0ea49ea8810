package stage

import "fmt"

type Direction int

const (
	DirectionInput = Direction(iota)
	DirectionOutput
)

func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// State is derived from the negotiated types and the pending slot; it is
// reported for observability and never consulted by the Stage itself.
type State int

const (
	StateUninitialized = State(iota)
	StateNegotiated
	StateStreaming
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateNegotiated:
		return "negotiated"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
