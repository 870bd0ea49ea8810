package types

import (
	"slices"
)

// SideData is a list of arbitrary items attached to a sample by the stages
// it passes through. Later items shadow the earlier ones of the same type.
type SideData []any

func (d SideData) Contains(item any) bool {
	return slices.Contains(d, item)
}

func SideDataLatest[T any](d SideData) (T, bool) {
	for idx := len(d) - 1; idx >= 0; idx-- {
		if v, ok := d[idx].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
