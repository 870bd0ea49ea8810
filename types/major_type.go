// major_type.go defines MajorType, the top-level category of a media type.

package types

import "fmt"

type MajorType int

const (
	MajorTypeUnknown = MajorType(-0x1)
	MajorTypeVideo   = MajorType(0x0)
	MajorTypeAudio   = MajorType(0x1)
	MajorTypeData    = MajorType(0x2)
	MajorTypeText    = MajorType(0x3)
)

func MajorTypes() []MajorType {
	return []MajorType{
		MajorTypeVideo,
		MajorTypeAudio,
		MajorTypeData,
		MajorTypeText,
	}
}

func (t MajorType) String() string {
	switch t {
	case MajorTypeVideo:
		return "video"
	case MajorTypeAudio:
		return "audio"
	case MajorTypeData:
		return "data"
	case MajorTypeText:
		return "text"
	case MajorTypeUnknown:
		return "unknown"
	default:
		return "MajorType(" + fmt.Sprintf("%d", int(t)) + ")"
	}
}

func MajorTypeFromString(s string) (MajorType, error) {
	for _, t := range MajorTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return MajorTypeUnknown, fmt.Errorf("unknown major type '%s'", s)
}
