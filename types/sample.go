// sample.go defines Sample, one discrete unit of media data passed through a stage.

package types

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"
)

type SampleFlags uint32

const (
	SampleFlagDiscontinuity = SampleFlags(1 << iota)
	SampleFlagKeyFrame
	SampleFlagInterlaced
	SampleFlagBottomFieldFirst
	SampleFlagRepeatField
)

func (f SampleFlags) Has(flag SampleFlags) bool {
	return f&flag == flag
}

func (f SampleFlags) String() string {
	var parts []string
	for _, item := range []struct {
		Flag SampleFlags
		Name string
	}{
		{SampleFlagDiscontinuity, "discontinuity"},
		{SampleFlagKeyFrame, "keyframe"},
		{SampleFlagInterlaced, "interlaced"},
		{SampleFlagBottomFieldFirst, "bff"},
		{SampleFlagRepeatField, "repeat_field"},
	} {
		if f.Has(item.Flag) {
			parts = append(parts, item.Name)
		}
	}
	return strings.Join(parts, "|")
}

// Sample is a buffer plus timing metadata. Whoever holds a *Sample owns it
// exclusively; ownership moves to a stage on submission and back to the
// caller when the stage produces its output.
type Sample struct {
	Buffer   []byte
	PTS      time.Duration
	Duration time.Duration
	Flags    SampleFlags
	SideData SideData
}

func NewSample(buf []byte, pts, duration time.Duration) *Sample {
	return &Sample{
		Buffer:   buf,
		PTS:      pts,
		Duration: duration,
	}
}

func (s *Sample) IsDiscontinuity() bool {
	return s.Flags.Has(SampleFlagDiscontinuity)
}

func (s *Sample) IsInterlaced() bool {
	return s.Flags.Has(SampleFlagInterlaced)
}

func (s *Sample) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Buffer)
}

// Clone deep-copies the buffer; the side data items are shared.
func (s *Sample) Clone() *Sample {
	if s == nil {
		return nil
	}
	return &Sample{
		Buffer:   bytes.Clone(s.Buffer),
		PTS:      s.PTS,
		Duration: s.Duration,
		Flags:    s.Flags,
		SideData: slices.Clone(s.SideData),
	}
}

// CopyMetadataFrom copies everything but the buffer.
func (s *Sample) CopyMetadataFrom(src *Sample) {
	s.PTS = src.PTS
	s.Duration = src.Duration
	s.Flags = src.Flags
	s.SideData = slices.Clone(src.SideData)
}

// ContentEqual compares the buffers, timestamps and flags.
func (s *Sample) ContentEqual(other *Sample) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	return s.PTS == other.PTS &&
		s.Duration == other.Duration &&
		s.Flags == other.Flags &&
		bytes.Equal(s.Buffer, other.Buffer)
}

func (s *Sample) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Sample(pts:%v, dur:%v, size:%d, flags:%s)", s.PTS, s.Duration, len(s.Buffer), s.Flags)
}
