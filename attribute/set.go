package attribute

import (
	"fmt"
	"sort"
	"strings"
)

// Set is a plain, unsynchronized attribute map. It is used as the immutable
// payload of media types and as snapshots of a Store.
type Set map[Key]Value

func (s Set) Get(key Key) (Value, bool) {
	v, ok := s[key]
	return v, ok
}

// Set stores the value; the last write wins.
func (s Set) Set(key Key, value Value) {
	s[key] = value.Clone()
}

func (s Set) Delete(key Key) {
	delete(s, key)
}

// Keys returns the keys sorted, for reproducible output only; callers must
// not rely on any particular ordering of a Set.
func (s Set) Keys() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	result := make(Set, len(s))
	for k, v := range s {
		result[k] = v.Clone()
	}
	return result
}

// Equal treats a nil set and an empty set as equal.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok {
			return false
		}
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}

// CopyTo writes all the items into dst, overwriting matching keys.
func (s Set) CopyTo(dst Set) {
	for k, v := range s {
		dst[k] = v.Clone()
	}
}

func (s Set) String() string {
	var b strings.Builder
	b.WriteString("{")
	for idx, k := range s.Keys() {
		if idx > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", k, s[k])
	}
	b.WriteString("}")
	return b.String()
}
