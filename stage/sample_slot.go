package stage

import (
	"github.com/xaionaro-go/avtransform/types"
)

// sampleSlot holds at most one pending input sample. It is accessed only
// under the Stage lock.
type sampleSlot struct {
	pending *types.Sample
}

func (s *sampleSlot) IsPending() bool {
	return s.pending != nil
}

// Put returns false if a sample is already pending.
func (s *sampleSlot) Put(sample *types.Sample) bool {
	if s.pending != nil {
		return false
	}
	s.pending = sample
	return true
}

func (s *sampleSlot) Peek() *types.Sample {
	return s.pending
}

// Take empties the slot and returns what was pending.
func (s *sampleSlot) Take() *types.Sample {
	sample := s.pending
	s.pending = nil
	return sample
}
