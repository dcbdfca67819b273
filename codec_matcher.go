package mediasoupclient

import (
	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

// codecMatcher decides whether a local and a remote codec capability
// describe the same codec. RTX codecs match only once the media codecs they
// point to have been paired.
type codecMatcher struct {
	// mediaPairs maps a local media payload type to the remote one it was
	// paired with.
	mediaPairs map[uint8]uint8
}

func newCodecMatcher() *codecMatcher {
	return &codecMatcher{mediaPairs: map[uint8]uint8{}}
}

func (m *codecMatcher) pair(localPt, remotePt uint8) {
	m.mediaPairs[localPt] = remotePt
}

func (m *codecMatcher) match(aCodec, bCodec *RtpCodecCapability) bool {
	aMimeType, err := ParseMimeType(aCodec.MimeType)
	if err != nil {
		return false
	}
	bMimeType, err := ParseMimeType(bCodec.MimeType)
	if err != nil {
		return false
	}

	if !aMimeType.Equal(bMimeType) {
		return false
	}
	if aCodec.ClockRate != bCodec.ClockRate {
		return false
	}
	if aMimeType.Kind == MediaKindAudio && channelsOf(aCodec) != channelsOf(bCodec) {
		return false
	}

	// Per codec special checks.
	switch aMimeType.Family() {
	case CodecFamilyRtx:
		remotePt, ok := m.mediaPairs[aCodec.Parameters.Apt]
		return ok && remotePt == bCodec.Parameters.Apt

	case CodecFamilyH264:
		aParameters, bParameters := aCodec.Parameters, bCodec.Parameters

		if aParameters.PacketizationMode != bParameters.PacketizationMode {
			return false
		}
		if !h264.IsSameProfile(aParameters.ProfileLevelId, bParameters.ProfileLevelId) {
			return false
		}
		if _, err := h264.GenerateProfileLevelIdForAnswer(aParameters.RtpParameter, bParameters.RtpParameter); err != nil {
			return false
		}
		return true

	case CodecFamilyVP9:
		return profileIdOf(aCodec) == profileIdOf(bCodec)

	default:
		return true
	}
}

// MatchCodecs reports whether the two codec capabilities describe the same
// codec under the matching rules used to build extended capabilities. RTX
// codecs never match here since they depend on a prior media pairing.
func MatchCodecs(aCodec, bCodec *RtpCodecCapability) bool {
	return newCodecMatcher().match(aCodec, bCodec)
}

func channelsOf(codec *RtpCodecCapability) int {
	if codec.Channels > 0 {
		return codec.Channels
	}
	return 1
}

func profileIdOf(codec *RtpCodecCapability) uint8 {
	if codec.Parameters.ProfileId != nil {
		return *codec.Parameters.ProfileId
	}
	return 0
}
