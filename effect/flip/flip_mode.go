package flip

import (
	"fmt"
	"strings"
)

// FlipMode is stored in the attribute store as an integer under
// attribute.KeyFlipMode.
type FlipMode int

const (
	FlipModeNone = FlipMode(iota)
	FlipModeHorizontal
	FlipModeVertical
	FlipModeRotate180
	endOfFlipMode
)

func (m FlipMode) String() string {
	switch m {
	case FlipModeNone:
		return "none"
	case FlipModeHorizontal:
		return "horizontal"
	case FlipModeVertical:
		return "vertical"
	case FlipModeRotate180:
		return "rotate180"
	default:
		return fmt.Sprintf("FlipMode(%d)", int(m))
	}
}

func (m FlipMode) IsValid() bool {
	return m >= FlipModeNone && m < endOfFlipMode
}

// SwapsRows is true if the mode moves rows (which mixes interlaced fields).
func (m FlipMode) SwapsRows() bool {
	return m == FlipModeVertical || m == FlipModeRotate180
}

func FlipModeFromString(s string) (FlipMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m := FlipModeNone; m < endOfFlipMode; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return FlipModeNone, fmt.Errorf("unknown flip mode '%s'", s)
}
