// Package avbridge converts libav (go-astiav) frames and codec parameters
// into samples and media types, and back.
package avbridge

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/types"
)

// MediaTypeFromCodecParameters describes decoded raw video of the given
// codec parameters.
func MediaTypeFromCodecParameters(cp *astiav.CodecParameters) (*types.MediaType, error) {
	if cp.MediaType() != astiav.MediaTypeVideo {
		return nil, fmt.Errorf("only video is supported, got %s", cp.MediaType())
	}
	subtype, err := SubtypeFromPixelFormat(cp.PixelFormat())
	if err != nil {
		return nil, err
	}
	mt, err := types.NewVideoMediaType(subtype, cp.Width(), cp.Height(), RationalFromAstiav(cp.FrameRate()))
	if err != nil {
		return nil, err
	}
	if sar := cp.SampleAspectRatio(); sar.Num() > 0 && sar.Den() > 0 {
		mt.Attributes.Set(attribute.KeyPixelAspectNum, attribute.Int(int64(sar.Num())))
		mt.Attributes.Set(attribute.KeyPixelAspectDen, attribute.Int(int64(sar.Den())))
	}
	return mt, nil
}

// CodecParametersFromMediaType fills cp with the description of raw video of type t.
func CodecParametersFromMediaType(t *types.MediaType, cp *astiav.CodecParameters) error {
	width, height, ok := t.FrameSize()
	if !ok {
		return fmt.Errorf("frame size is not set in %s", t)
	}
	pixFmt, err := PixelFormatFromSubtype(t.Subtype)
	if err != nil {
		return err
	}
	cp.SetMediaType(astiav.MediaTypeVideo)
	cp.SetCodecID(astiav.CodecIDRawvideo)
	cp.SetWidth(width)
	cp.SetHeight(height)
	cp.SetPixelFormat(pixFmt)
	if frameRate, ok := t.FrameRate(); ok {
		cp.SetFrameRate(RationalToAstiav(frameRate))
	}
	return nil
}
