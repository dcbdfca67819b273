package mediasoupclient

import "strings"

// ProducerCodecOptions tune the parameters of the codec selected for sending.
// Nil and zero fields leave the negotiated value untouched.
type ProducerCodecOptions struct {
	OpusStereo              *bool  `json:"opusStereo,omitempty"`
	OpusFec                 *bool  `json:"opusFec,omitempty"`
	OpusDtx                 *bool  `json:"opusDtx,omitempty"`
	OpusMaxPlaybackRate     uint32 `json:"opusMaxPlaybackRate,omitempty"`
	OpusMaxAverageBitrate   uint32 `json:"opusMaxAverageBitrate,omitempty"`
	OpusPtime               uint8  `json:"opusPtime,omitempty"`
	OpusNack                *bool  `json:"opusNack,omitempty"`
	VideoGoogleStartBitrate uint32 `json:"videoGoogleStartBitrate,omitempty"`
	VideoGoogleMaxBitrate   uint32 `json:"videoGoogleMaxBitrate,omitempty"`
	VideoGoogleMinBitrate   uint32 `json:"videoGoogleMinBitrate,omitempty"`
}

// applyCodecOptions merges options into the first codec of params, which must
// be the media codec.
func applyCodecOptions(params *RtpParameters, options *ProducerCodecOptions) error {
	if options == nil || len(params.Codecs) == 0 {
		return nil
	}
	codec := params.Codecs[0]
	mimeType, err := ParseMimeType(codec.MimeType)
	if err != nil {
		return err
	}

	var overrides RtpCodecSpecificParameters

	switch {
	case mimeType.Kind == MediaKindAudio && strings.EqualFold(mimeType.Subtype, "opus"):
		overrides.Maxplaybackrate = options.OpusMaxPlaybackRate
		overrides.Maxaveragebitrate = options.OpusMaxAverageBitrate
		overrides.Ptime = options.OpusPtime

		if options.OpusStereo != nil {
			codec.Parameters.SpropStereo = boolToUint8(*options.OpusStereo)
			codec.Parameters.Stereo = boolToUint8(*options.OpusStereo)
		}
		if options.OpusFec != nil {
			codec.Parameters.Useinbandfec = boolToUint8(*options.OpusFec)
		}
		if options.OpusDtx != nil {
			codec.Parameters.Usedtx = boolToUint8(*options.OpusDtx)
		}
		if options.OpusNack != nil {
			isNack := func(fb RtcpFeedback) bool { return fb.Type == "nack" && len(fb.Parameter) == 0 }
			codec.RtcpFeedback = filterRtcpFeedback(codec.RtcpFeedback, func(fb RtcpFeedback) bool {
				return !isNack(fb)
			})
			if *options.OpusNack {
				codec.RtcpFeedback = append(codec.RtcpFeedback, RtcpFeedback{Type: "nack"})
			}
		}

	case mimeType.Kind == MediaKindVideo:
		overrides.XGoogleStartBitrate = options.VideoGoogleStartBitrate
		overrides.XGoogleMaxBitrate = options.VideoGoogleMaxBitrate
		overrides.XGoogleMinBitrate = options.VideoGoogleMinBitrate
	}

	return override(&codec.Parameters, overrides)
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
