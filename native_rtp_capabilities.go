package mediasoupclient

import (
	"github.com/hashicorp/go-version"
	"github.com/pion/sdp/v3"

	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

// EngineVersionLatest selects every entry of the native capability table.
const EngineVersionLatest = "latest"

const (
	repairedRtpStreamIdURI = "urn:ietf:params:rtp-hdrext:sdes:repaired-rtp-stream-id"
	videoOrientationURI    = "urn:3gpp:video-orientation"
	toffsetURI             = "urn:ietf:params:rtp-hdrext:toffset"
	playoutDelayURI        = "http://www.webrtc.org/experiments/rtp-hdrext/playout-delay"
)

// nativeH264Level is the level of the native H264 encoders, sized for 720p at
// 30 fps.
var nativeH264Level, _ = h264.SupportedLevel(1280*720, 30)

type nativeCodec struct {
	// constraint restricts the engine versions supporting the codec, empty
	// for all of them.
	constraint string
	codec      RtpCodecCapability
}

var nativeCodecs = []nativeCodec{
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindAudio,
			MimeType:    "audio/opus",
			PayloadType: Uint8(111),
			ClockRate:   48000,
			Channels:    2,
			Parameters: RtpCodecSpecificParameters{
				Minptime:     10,
				Useinbandfec: 1,
			},
			RtcpFeedback: []RtcpFeedback{
				{Type: "transport-cc"},
			},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindAudio,
			MimeType:    "audio/PCMU",
			PayloadType: Uint8(0),
			ClockRate:   8000,
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindAudio,
			MimeType:    "audio/PCMA",
			PayloadType: Uint8(8),
			ClockRate:   8000,
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/VP8",
			PayloadType: Uint8(96),
			ClockRate:   90000,
			RtcpFeedback: []RtcpFeedback{
				{Type: "goog-remb"},
				{Type: "transport-cc"},
				{Type: "ccm", Parameter: "fir"},
				{Type: "nack"},
				{Type: "nack", Parameter: "pli"},
			},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/rtx",
			PayloadType: Uint8(97),
			ClockRate:   90000,
			Parameters:  RtpCodecSpecificParameters{Apt: 96},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/VP9",
			PayloadType: Uint8(98),
			ClockRate:   90000,
			Parameters:  RtpCodecSpecificParameters{ProfileId: Uint8(0)},
			RtcpFeedback: []RtcpFeedback{
				{Type: "goog-remb"},
				{Type: "transport-cc"},
				{Type: "ccm", Parameter: "fir"},
				{Type: "nack"},
				{Type: "nack", Parameter: "pli"},
			},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/rtx",
			PayloadType: Uint8(99),
			ClockRate:   90000,
			Parameters:  RtpCodecSpecificParameters{Apt: 98},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/H264",
			PayloadType: Uint8(102),
			ClockRate:   90000,
			Parameters: RtpCodecSpecificParameters{
				RtpParameter: h264.RtpParameter{
					PacketizationMode:     1,
					ProfileLevelId:        h264.ProfileLevelId{Profile: h264.ProfileConstrainedBaseline, Level: nativeH264Level}.String(),
					LevelAsymmetryAllowed: 1,
				},
			},
			RtcpFeedback: []RtcpFeedback{
				{Type: "goog-remb"},
				{Type: "transport-cc"},
				{Type: "ccm", Parameter: "fir"},
				{Type: "nack"},
				{Type: "nack", Parameter: "pli"},
			},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/rtx",
			PayloadType: Uint8(103),
			ClockRate:   90000,
			Parameters:  RtpCodecSpecificParameters{Apt: 102},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/H264",
			PayloadType: Uint8(104),
			ClockRate:   90000,
			Parameters: RtpCodecSpecificParameters{
				RtpParameter: h264.RtpParameter{
					PacketizationMode:     1,
					ProfileLevelId:        h264.ProfileLevelId{Profile: h264.ProfileMain, Level: nativeH264Level}.String(),
					LevelAsymmetryAllowed: 1,
				},
			},
			RtcpFeedback: []RtcpFeedback{
				{Type: "goog-remb"},
				{Type: "transport-cc"},
				{Type: "ccm", Parameter: "fir"},
				{Type: "nack"},
				{Type: "nack", Parameter: "pli"},
			},
		},
	},
	{
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/rtx",
			PayloadType: Uint8(105),
			ClockRate:   90000,
			Parameters:  RtpCodecSpecificParameters{Apt: 104},
		},
	},
	{
		constraint: ">= 90",
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/AV1",
			PayloadType: Uint8(35),
			ClockRate:   90000,
			RtcpFeedback: []RtcpFeedback{
				{Type: "goog-remb"},
				{Type: "transport-cc"},
				{Type: "ccm", Parameter: "fir"},
				{Type: "nack"},
				{Type: "nack", Parameter: "pli"},
			},
		},
	},
	{
		constraint: ">= 90",
		codec: RtpCodecCapability{
			Kind:        MediaKindVideo,
			MimeType:    "video/rtx",
			PayloadType: Uint8(36),
			ClockRate:   90000,
			Parameters:  RtpCodecSpecificParameters{Apt: 35},
		},
	},
}

var nativeHeaderExtensions = []RtpHeaderExtension{
	{Kind: MediaKindAudio, Uri: sdp.SDESMidURI, PreferredId: 1, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: sdp.SDESMidURI, PreferredId: 1, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: sdp.SDESRTPStreamIDURI, PreferredId: 2, Direction: MediaDirectionRecvonly},
	{Kind: MediaKindVideo, Uri: repairedRtpStreamIdURI, PreferredId: 3, Direction: MediaDirectionRecvonly},
	{Kind: MediaKindAudio, Uri: sdp.ABSSendTimeURI, PreferredId: 4, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: sdp.ABSSendTimeURI, PreferredId: 4, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: sdp.TransportCCURI, PreferredId: 5, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindAudio, Uri: sdp.AudioLevelURI, PreferredId: 10, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: videoOrientationURI, PreferredId: 11, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: toffsetURI, PreferredId: 12, Direction: MediaDirectionSendrecv},
	{Kind: MediaKindVideo, Uri: playoutDelayURI, PreferredId: 14, Direction: MediaDirectionSendrecv},
}

// GetNativeRtpCapabilities returns the RTP capabilities of the local media
// engine of the given major version, or of the newest one for "latest". The
// returned value is a fresh copy.
func GetNativeRtpCapabilities(engineVersion string) (caps RtpCapabilities, err error) {
	var engine *version.Version

	if len(engineVersion) > 0 && engineVersion != EngineVersionLatest {
		if engine, err = version.NewVersion(engineVersion); err != nil {
			return caps, NewInvalidCapabilityError("invalid engine version %q: %s", engineVersion, err)
		}
	}

	caps.Codecs = []*RtpCodecCapability{}
	caps.HeaderExtensions = []*RtpHeaderExtension{}

	for _, entry := range nativeCodecs {
		if engine != nil && len(entry.constraint) > 0 {
			constraints, err := version.NewConstraint(entry.constraint)
			if err != nil {
				return caps, err
			}
			if !constraints.Check(engine) {
				continue
			}
		}
		codec := entry.codec
		codec.PayloadType = Uint8(*entry.codec.PayloadType)
		codec.Parameters = entry.codec.Parameters.clone()
		codec.RtcpFeedback = cloneRtcpFeedback(entry.codec.RtcpFeedback)

		caps.Codecs = append(caps.Codecs, &codec)
	}

	for _, ext := range nativeHeaderExtensions {
		ext := ext
		caps.HeaderExtensions = append(caps.HeaderExtensions, &ext)
	}

	return
}
