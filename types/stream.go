// stream.go defines the stream-level descriptors of a single-input single-output stage.

package types

import (
	"fmt"
	"strings"
)

type StreamID uint32

// StreamShape is the allowed number of input and output streams.
type StreamShape struct {
	MinInputs  uint
	MaxInputs  uint
	MinOutputs uint
	MaxOutputs uint
}

type StreamInfoFlags uint32

const (
	// StreamInfoFlagWholeSamples: each buffer holds whole samples.
	StreamInfoFlagWholeSamples = StreamInfoFlags(1 << iota)
	// StreamInfoFlagSingleSamplePerBuffer: each buffer holds exactly one sample.
	StreamInfoFlagSingleSamplePerBuffer
	StreamInfoFlagFixedSampleSize
	// StreamInfoFlagProcessesInPlace: the output is the input buffer, mutated.
	StreamInfoFlagProcessesInPlace
	// StreamInfoFlagProvidesSamples: the stage allocates its own output buffers.
	StreamInfoFlagProvidesSamples
	StreamInfoFlagOptional
)

func (f StreamInfoFlags) Has(flag StreamInfoFlags) bool {
	return f&flag == flag
}

func (f StreamInfoFlags) String() string {
	var parts []string
	for _, item := range []struct {
		Flag StreamInfoFlags
		Name string
	}{
		{StreamInfoFlagWholeSamples, "whole_samples"},
		{StreamInfoFlagSingleSamplePerBuffer, "single_sample_per_buffer"},
		{StreamInfoFlagFixedSampleSize, "fixed_sample_size"},
		{StreamInfoFlagProcessesInPlace, "in_place"},
		{StreamInfoFlagProvidesSamples, "provides_samples"},
		{StreamInfoFlagOptional, "optional"},
	} {
		if f.Has(item.Flag) {
			parts = append(parts, item.Name)
		}
	}
	return strings.Join(parts, "|")
}

// StreamInfo describes the buffer requirements of one stream of a stage.
type StreamInfo struct {
	Flags StreamInfoFlags

	// SampleSize is the minimal buffer size in bytes, zero if unknown.
	SampleSize int

	// Alignment is the required buffer alignment in bytes, zero if none.
	Alignment int

	// Lookahead is how many bytes of input the stage needs before it can produce output.
	Lookahead int
}

func (i StreamInfo) String() string {
	return fmt.Sprintf("StreamInfo(flags:%s, size:%d, align:%d)", i.Flags, i.SampleSize, i.Alignment)
}

// VideoStreamInfo returns the usual descriptor of uncompressed video with
// fixed-size frames taken from the media type.
func VideoStreamInfo(t *MediaType, extraFlags StreamInfoFlags) StreamInfo {
	info := StreamInfo{
		Flags: StreamInfoFlagWholeSamples |
			StreamInfoFlagSingleSamplePerBuffer |
			StreamInfoFlagFixedSampleSize |
			extraFlags,
	}
	if size, ok := t.SampleSize(); ok {
		info.SampleSize = size
	}
	return info
}

type InputStatus int

const (
	InputStatusCannotAcceptMore = InputStatus(iota)
	InputStatusCanAcceptMore
)

func (s InputStatus) String() string {
	switch s {
	case InputStatusCannotAcceptMore:
		return "cannot_accept_more"
	case InputStatusCanAcceptMore:
		return "can_accept_more"
	default:
		return fmt.Sprintf("InputStatus(%d)", int(s))
	}
}

type OutputStatus int

const (
	OutputStatusNotReady = OutputStatus(iota)
	OutputStatusReady
)

func (s OutputStatus) String() string {
	switch s {
	case OutputStatusNotReady:
		return "not_ready"
	case OutputStatusReady:
		return "ready"
	default:
		return fmt.Sprintf("OutputStatus(%d)", int(s))
	}
}
