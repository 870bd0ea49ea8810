package avbridge

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avtransform/types"
)

var pixelFormats = []struct {
	Subtype     types.Subtype
	PixelFormat astiav.PixelFormat
}{
	{types.SubtypeYUY2, astiav.PixelFormatYuyv422},
	{types.SubtypeUYVY, astiav.PixelFormatUyvy422},
	{types.SubtypeNV12, astiav.PixelFormatNv12},
	{types.SubtypeI420, astiav.PixelFormatYuv420P},
	{types.SubtypeRGBA, astiav.PixelFormatRgba},
}

func PixelFormatFromSubtype(subtype types.Subtype) (astiav.PixelFormat, error) {
	for _, item := range pixelFormats {
		if item.Subtype == subtype {
			return item.PixelFormat, nil
		}
	}
	return astiav.PixelFormatNone, fmt.Errorf("subtype %s has no libav pixel format", subtype)
}

func SubtypeFromPixelFormat(pixFmt astiav.PixelFormat) (types.Subtype, error) {
	for _, item := range pixelFormats {
		if item.PixelFormat == pixFmt {
			return item.Subtype, nil
		}
	}
	return types.SubtypeUndefined, fmt.Errorf("pixel format %s is not supported", pixFmt)
}
