package attribute

// Key is a stable identifier of an attribute.
type Key string

// Media type description keys.
const (
	KeyFrameWidth            = Key("frame_width")
	KeyFrameHeight           = Key("frame_height")
	KeyDefaultStride         = Key("default_stride")
	KeyInterlaceMode         = Key("interlace_mode")
	KeyFrameRateNum          = Key("frame_rate_num")
	KeyFrameRateDen          = Key("frame_rate_den")
	KeyPixelAspectNum        = Key("pixel_aspect_num")
	KeyPixelAspectDen        = Key("pixel_aspect_den")
	KeyFixedSizeSamples      = Key("fixed_size_samples")
	KeySampleSize            = Key("sample_size")
	KeyAllSamplesIndependent = Key("all_samples_independent")
	KeyAudioChannels         = Key("audio_channels")
	KeyAudioSampleRate       = Key("audio_sample_rate")
	KeyAudioBitsPerSample    = Key("audio_bits_per_sample")
)

// Stage configuration keys, written by external controllers.
const (
	KeyFlipMode     = Key("flip_mode")
	KeyOverlayText  = Key("overlay_text")
	KeyOverlayX     = Key("overlay_x")
	KeyOverlayY     = Key("overlay_y")
	KeyFrameCount   = Key("frame_count")
	KeyEffectBypass = Key("effect_bypass")
	KeyBlurRadius   = Key("blur_radius")
)
