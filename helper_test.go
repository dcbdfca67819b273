package mediasoupclient

import (
	"github.com/pion/sdp/v3"

	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

func videoFeedback() []RtcpFeedback {
	return []RtcpFeedback{
		{Type: "nack"},
		{Type: "nack", Parameter: "pli"},
		{Type: "ccm", Parameter: "fir"},
		{Type: "goog-remb"},
		{Type: "transport-cc"},
	}
}

// generateRouterRtpCapabilities returns the capabilities of a router
// supporting opus, VP8 and H264, the video codecs with rtx.
func generateRouterRtpCapabilities() RtpCapabilities {
	return RtpCapabilities{
		Codecs: []*RtpCodecCapability{
			{
				Kind:         MediaKindAudio,
				MimeType:     "audio/opus",
				PayloadType:  Uint8(100),
				ClockRate:    48000,
				Channels:     2,
				Parameters:   RtpCodecSpecificParameters{Useinbandfec: 1},
				RtcpFeedback: []RtcpFeedback{{Type: "transport-cc"}},
			},
			{
				Kind:         MediaKindVideo,
				MimeType:     "video/VP8",
				PayloadType:  Uint8(101),
				ClockRate:    90000,
				RtcpFeedback: videoFeedback(),
			},
			{
				Kind:        MediaKindVideo,
				MimeType:    "video/rtx",
				PayloadType: Uint8(102),
				ClockRate:   90000,
				Parameters:  RtpCodecSpecificParameters{Apt: 101},
			},
			{
				Kind:        MediaKindVideo,
				MimeType:    "video/H264",
				PayloadType: Uint8(103),
				ClockRate:   90000,
				Parameters: RtpCodecSpecificParameters{
					RtpParameter: h264.RtpParameter{
						PacketizationMode:     1,
						ProfileLevelId:        "42e01f",
						LevelAsymmetryAllowed: 1,
					},
				},
				RtcpFeedback: videoFeedback(),
			},
			{
				Kind:        MediaKindVideo,
				MimeType:    "video/rtx",
				PayloadType: Uint8(104),
				ClockRate:   90000,
				Parameters:  RtpCodecSpecificParameters{Apt: 103},
			},
		},
		HeaderExtensions: []*RtpHeaderExtension{
			{Kind: MediaKindAudio, Uri: sdp.SDESMidURI, PreferredId: 1},
			{Kind: MediaKindVideo, Uri: sdp.SDESMidURI, PreferredId: 1},
			{Kind: MediaKindVideo, Uri: sdp.SDESRTPStreamIDURI, PreferredId: 2, Direction: MediaDirectionRecvonly},
			{Kind: MediaKindVideo, Uri: repairedRtpStreamIdURI, PreferredId: 3, Direction: MediaDirectionRecvonly},
			{Kind: MediaKindAudio, Uri: sdp.ABSSendTimeURI, PreferredId: 4},
			{Kind: MediaKindVideo, Uri: sdp.ABSSendTimeURI, PreferredId: 4},
			{Kind: MediaKindAudio, Uri: sdp.AudioLevelURI, PreferredId: 10},
			{Kind: MediaKindVideo, Uri: videoOrientationURI, PreferredId: 11},
		},
	}
}

func mustExtended(local, remote RtpCapabilities) ExtendedRtpCapabilities {
	extended, err := GetExtendedRtpCapabilities(local, remote)
	if err != nil {
		panic(err)
	}
	return extended
}

func mimeTypesOf(codecs []*RtpCodecCapability) (mimeTypes []string) {
	for _, codec := range codecs {
		mimeTypes = append(mimeTypes, codec.MimeType)
	}
	return
}

func parameterMimeTypesOf(codecs []*RtpCodecParameters) (mimeTypes []string) {
	for _, codec := range codecs {
		mimeTypes = append(mimeTypes, codec.MimeType)
	}
	return
}
