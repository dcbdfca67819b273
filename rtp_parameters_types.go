package mediasoupclient

import (
	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

// MediaKind is the media kind ("audio" or "video").
type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
)

// Validate returns UnsupportedKindError unless kind is audio or video.
func (kind MediaKind) Validate() error {
	switch kind {
	case MediaKindAudio, MediaKindVideo:
		return nil
	default:
		return NewUnsupportedKindError(kind)
	}
}

// MediaDirection is the direction of an RTP header extension.
type MediaDirection string

const (
	MediaDirectionSendrecv MediaDirection = "sendrecv"
	MediaDirectionSendonly MediaDirection = "sendonly"
	MediaDirectionRecvonly MediaDirection = "recvonly"
	MediaDirectionInactive MediaDirection = "inactive"
)

func (d MediaDirection) canSend() bool {
	return d == MediaDirectionSendrecv || d == MediaDirectionSendonly
}

// RtpCapabilities define what an endpoint (or the router it talks to) can
// receive at media level. Codec order is significant.
type RtpCapabilities struct {
	// Codecs is the supported media and RTX codecs.
	Codecs []*RtpCodecCapability `json:"codecs,omitempty"`

	// HeaderExtensions is the supported RTP header extensions.
	HeaderExtensions []*RtpHeaderExtension `json:"headerExtensions,omitempty"`
}

// RtpCodecCapability provides information on the capabilities of a codec
// within the RTP capabilities.
//
// Exactly one RtpCodecCapability is present for each supported combination of
// parameters that requires a distinct payload type, for example one per H264
// 'packetization-mode' and 'profile-level-id' pair.
type RtpCodecCapability struct {
	// Kind is the media kind. If empty it is taken from MimeType.
	Kind MediaKind `json:"kind"`

	// MimeType is the codec MIME media type/subtype (e.g. 'audio/opus', 'video/VP8').
	MimeType string `json:"mimeType"`

	// PayloadType is the RTP payload type. It may be unset in abstract
	// capability tables, but is mandatory for negotiation input.
	PayloadType *uint8 `json:"payloadType,omitempty"`

	// ClockRate is the codec clock rate expressed in Hertz.
	ClockRate int `json:"clockRate"`

	// Channels is the number of channels supported (e.g. 2 for stereo). Just for
	// audio. Default 1.
	Channels int `json:"channels,omitempty"`

	// Parameters is the codec specific parameters. Some parameters (such as
	// 'packetization-mode' and 'profile-level-id' in H264 or 'profile-id' in VP9)
	// are critical for codec matching.
	Parameters RtpCodecSpecificParameters `json:"parameters,omitempty"`

	// RtcpFeedback is the transport layer and codec-specific feedback messages
	// for this codec.
	RtcpFeedback []RtcpFeedback `json:"rtcpFeedback,omitempty"`
}

// RtpHeaderExtension provides information relating to a supported header
// extension.
type RtpHeaderExtension struct {
	// Kind is media kind. If empty, it's valid for all kinds.
	Kind MediaKind `json:"kind"`

	// Uri of the RTP header extension, as defined in RFC 5285.
	Uri string `json:"uri"`

	// PreferredId is the preferred numeric identifier that goes in the RTP packet.
	PreferredId int `json:"preferredId"`

	// PreferredEncrypt if true, it is preferred that the value in the header be
	// encrypted as per RFC 6904. Default false.
	PreferredEncrypt bool `json:"preferredEncrypt,omitempty"`

	// Direction of the extension. Default "sendrecv".
	Direction MediaDirection `json:"direction,omitempty"`
}

// RtpParameters describe a concrete media stream, either the one an endpoint
// sends or the one it receives.
type RtpParameters struct {
	// Mid is the MID RTP extension value as defined in the BUNDLE specification.
	Mid string `json:"mid,omitempty"`

	// Codecs defines media and RTX codecs in use. The first one is the media
	// codec, optionally followed by its RTX codec.
	Codecs []*RtpCodecParameters `json:"codecs"`

	// HeaderExtensions is the RTP header extensions in use.
	HeaderExtensions []RtpHeaderExtensionParameters `json:"headerExtensions,omitempty"`

	// Encodings is the transmitted RTP streams and their settings.
	Encodings []RtpEncodingParameters `json:"encodings,omitempty"`

	// Rtcp is the parameters used for RTCP.
	Rtcp RtcpParameters `json:"rtcp,omitempty"`
}

// RtpCodecParameters provides information on codec settings within the RTP
// parameters.
type RtpCodecParameters struct {
	// MimeType is the codec MIME media type/subtype (e.g. 'audio/opus', 'video/VP8').
	MimeType string `json:"mimeType"`

	// PayloadType is the value that goes in the RTP Payload Type Field. Must be unique.
	PayloadType uint8 `json:"payloadType"`

	// ClockRate is codec clock rate expressed in Hertz.
	ClockRate int `json:"clockRate"`

	// Channels is the number of channels supported (e.g. 2 for stereo). Just
	// for audio. Default 1.
	Channels int `json:"channels,omitempty"`

	// Parameters is Codec-specific parameters available for signaling.
	Parameters RtpCodecSpecificParameters `json:"parameters,omitempty"`

	// RtcpFeedback is transport layer and codec-specific feedback messages for this codec.
	RtcpFeedback []RtcpFeedback `json:"rtcpFeedback,omitempty"`
}

// RtpCodecSpecificParameters is the codec-specific parameters available for
// signaling. Field tags are the SDP fmtp keys.
type RtpCodecSpecificParameters struct {
	h264.RtpParameter          // used by h264 codec
	ProfileId           *uint8 `json:"profile-id,omitempty"`   // used by vp9 and av1
	Apt                 uint8  `json:"apt,omitempty"`          // used by rtx codec
	Stereo              uint8  `json:"stereo,omitempty"`       // used by opus, 1 or 0
	SpropStereo         uint8  `json:"sprop-stereo,omitempty"` // used by opus, 1 or 0
	Useinbandfec        uint8  `json:"useinbandfec,omitempty"` // used by opus, 1 or 0
	Usedtx              uint8  `json:"usedtx,omitempty"`       // used by opus, 1 or 0
	Maxplaybackrate     uint32 `json:"maxplaybackrate,omitempty"`
	Maxaveragebitrate   uint32 `json:"maxaveragebitrate,omitempty"`
	Ptime               uint8  `json:"ptime,omitempty"`
	Minptime            uint8  `json:"minptime,omitempty"`
	XGoogleMinBitrate   uint32 `json:"x-google-min-bitrate,omitempty"`
	XGoogleMaxBitrate   uint32 `json:"x-google-max-bitrate,omitempty"`
	XGoogleStartBitrate uint32 `json:"x-google-start-bitrate,omitempty"`
}

// RtcpFeedback provides information on RTCP feedback messages for a specific
// codec.
type RtcpFeedback struct {
	// Type is RTCP feedback type.
	Type string `json:"type"`

	// Parameter is RTCP feedback parameter.
	Parameter string `json:"parameter,omitempty"`
}

// RtpEncodingParameters provides information relating to an encoding, which
// represents a media RTP stream and its associated RTX stream (if any).
type RtpEncodingParameters struct {
	// Ssrc of media.
	Ssrc uint32 `json:"ssrc,omitempty"`

	// Rid is the RID RTP extension value. Must be unique.
	Rid string `json:"rid,omitempty"`

	// CodecPayloadType is the codec payload type this encoding affects.
	// If unset, first media codec is chosen.
	CodecPayloadType uint8 `json:"codecPayloadType,omitempty"`

	// Rtx stream information.
	Rtx *RtpEncodingRtx `json:"rtx,omitempty"`

	// Dtx indicates whether discontinuous RTP transmission will be used.
	Dtx bool `json:"dtx,omitempty"`

	// ScalabilityMode defines spatial and temporal layers in the RTP stream
	// (e.g. 'L1T3'). See webrtc-svc.
	ScalabilityMode string `json:"scalabilityMode,omitempty"`

	// Others.
	ScaleResolutionDownBy float64 `json:"scaleResolutionDownBy,omitempty"`
	MaxBitrate            int     `json:"maxBitrate,omitempty"`
}

// RtpEncodingRtx represents the associated RTX stream for RTP stream.
type RtpEncodingRtx struct {
	Ssrc uint32 `json:"ssrc"`
}

// RtpHeaderExtensionParameters defines a RTP header extension within the RTP
// parameters.
type RtpHeaderExtensionParameters struct {
	// Uri of the RTP header extension, as defined in RFC 5285.
	Uri string `json:"uri"`

	// Id is the numeric identifier that goes in the RTP packet. Must be unique.
	Id int `json:"id"`

	// Encrypt if true, the value in the header is encrypted as per RFC 6904.
	Encrypt bool `json:"encrypt,omitempty"`
}

// RtcpParameters provides information on RTCP settings within the RTP
// parameters.
type RtcpParameters struct {
	// Cname is the Canonical Name (CNAME) used by RTCP (e.g. in SDES messages).
	Cname string `json:"cname,omitempty"`

	// ReducedSize defines whether reduced size RTCP RFC 5506 is configured (if
	// true) or compound RTCP as specified in RFC 3550 (if false). Default true.
	ReducedSize *bool `json:"reducedSize,omitempty"`
}
