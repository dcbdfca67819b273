package pionengine

import (
	"testing"

	"github.com/pion/sdp/v3"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediasoupclient "github.com/jiyeyuran/mediasoup-client-go"
	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

func TestFmtpLine(t *testing.T) {
	line, err := FmtpLine(mediasoupclient.RtpCodecSpecificParameters{})
	require.NoError(t, err)
	assert.Empty(t, line)

	line, err = FmtpLine(mediasoupclient.RtpCodecSpecificParameters{
		RtpParameter: h264.RtpParameter{
			PacketizationMode:     1,
			ProfileLevelId:        "42e01f",
			LevelAsymmetryAllowed: 1,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f", line)

	line, err = FmtpLine(mediasoupclient.RtpCodecSpecificParameters{Minptime: 10, Useinbandfec: 1})
	require.NoError(t, err)
	assert.Equal(t, "minptime=10;useinbandfec=1", line)

	line, err = FmtpLine(mediasoupclient.RtpCodecSpecificParameters{ProfileId: mediasoupclient.Uint8(0)})
	require.NoError(t, err)
	assert.Equal(t, "profile-id=0", line)
}

func TestCodecParameters(t *testing.T) {
	params := mediasoupclient.RtpParameters{
		Codecs: []*mediasoupclient.RtpCodecParameters{
			{
				MimeType:     "video/VP8",
				PayloadType:  101,
				ClockRate:    90000,
				RtcpFeedback: []mediasoupclient.RtcpFeedback{{Type: "nack", Parameter: "pli"}},
			},
			{
				MimeType:    "video/rtx",
				PayloadType: 102,
				ClockRate:   90000,
				Parameters:  mediasoupclient.RtpCodecSpecificParameters{Apt: 101},
			},
		},
	}

	codecs, err := CodecParameters(params)
	require.NoError(t, err)
	require.Len(t, codecs, 2)

	assert.Equal(t, webrtc.PayloadType(101), codecs[0].PayloadType)
	assert.Equal(t, uint32(90000), codecs[0].ClockRate)
	assert.Equal(t, []webrtc.RTCPFeedback{{Type: "nack", Parameter: "pli"}}, codecs[0].RTCPFeedback)
	assert.Equal(t, "apt=101", codecs[1].SDPFmtpLine)
	assert.Nil(t, codecs[1].RTCPFeedback)
}

func TestRegisterRtpCapabilities(t *testing.T) {
	caps := mediasoupclient.RtpCapabilities{
		Codecs: []*mediasoupclient.RtpCodecCapability{
			{
				Kind:        mediasoupclient.MediaKindVideo,
				MimeType:    "video/VP8",
				PayloadType: mediasoupclient.Uint8(101),
				ClockRate:   90000,
			},
			{
				Kind:        mediasoupclient.MediaKindVideo,
				MimeType:    "video/rtx",
				PayloadType: mediasoupclient.Uint8(102),
				ClockRate:   90000,
				Parameters:  mediasoupclient.RtpCodecSpecificParameters{Apt: 101},
			},
		},
		HeaderExtensions: []*mediasoupclient.RtpHeaderExtension{
			{Uri: sdp.SDESMidURI, PreferredId: 1},
			{Kind: mediasoupclient.MediaKindVideo, Uri: sdp.SDESRTPStreamIDURI, PreferredId: 2,
				Direction: mediasoupclient.MediaDirectionRecvonly},
			{Kind: mediasoupclient.MediaKindVideo, Uri: sdp.ABSSendTimeURI, PreferredId: 3,
				Direction: mediasoupclient.MediaDirectionInactive},
		},
	}

	m := &webrtc.MediaEngine{}
	require.NoError(t, RegisterRtpCapabilities(m, caps))

	api := webrtc.NewAPI(webrtc.WithMediaEngine(m))
	pc, err := api.NewPeerConnection(webrtc.Configuration{})
	require.NoError(t, err)
	defer pc.Close()

	_, err = pc.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo)
	require.NoError(t, err)

	offer, err := pc.CreateOffer(nil)
	require.NoError(t, err)

	assert.Contains(t, offer.SDP, "a=rtpmap:101 VP8/90000")
	assert.Contains(t, offer.SDP, "a=fmtp:102 apt=101")
	assert.Contains(t, offer.SDP, sdp.SDESMidURI)
	assert.NotContains(t, offer.SDP, sdp.ABSSendTimeURI)

	caps.Codecs[0].PayloadType = nil
	err = RegisterRtpCapabilities(&webrtc.MediaEngine{}, caps)
	var capErr *mediasoupclient.InvalidCapabilityError
	assert.ErrorAs(t, err, &capErr)
}

func TestTransceiverDirections(t *testing.T) {
	both := []webrtc.RTPTransceiverDirection{webrtc.RTPTransceiverDirectionRecvonly, webrtc.RTPTransceiverDirectionSendonly}

	tests := []struct {
		direction mediasoupclient.MediaDirection
		expected  []webrtc.RTPTransceiverDirection
		ok        bool
	}{
		{direction: "", expected: both, ok: true},
		{direction: mediasoupclient.MediaDirectionSendrecv, expected: both, ok: true},
		{direction: mediasoupclient.MediaDirectionSendonly, expected: []webrtc.RTPTransceiverDirection{webrtc.RTPTransceiverDirectionSendonly}, ok: true},
		{direction: mediasoupclient.MediaDirectionRecvonly, expected: []webrtc.RTPTransceiverDirection{webrtc.RTPTransceiverDirectionRecvonly}, ok: true},
		{direction: mediasoupclient.MediaDirectionInactive},
	}

	for _, tt := range tests {
		directions, ok := transceiverDirections(tt.direction)
		assert.Equal(t, tt.ok, ok, tt.direction)
		assert.Equal(t, tt.expected, directions, tt.direction)
	}

	m := &webrtc.MediaEngine{}
	for _, tt := range tests[:4] {
		assert.NoError(t, m.RegisterHeaderExtension(webrtc.RTPHeaderExtensionCapability{URI: sdp.SDESMidURI},
			webrtc.RTPCodecTypeVideo, tt.expected...), tt.direction)
	}
}
