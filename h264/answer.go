package h264

import "errors"

var (
	ErrInvalidLocalProfileLevelId  = errors.New("h264: invalid local profile-level-id")
	ErrInvalidRemoteProfileLevelId = errors.New("h264: invalid remote profile-level-id")
	ErrProfileMismatch             = errors.New("h264: profile mismatch")
)

// RtpParameter holds the H264 fmtp parameters that take part in matching.
type RtpParameter struct {
	PacketizationMode     uint8  `json:"packetization-mode,omitempty"`
	ProfileLevelId        string `json:"profile-level-id,omitempty"`
	LevelAsymmetryAllowed uint8  `json:"level-asymmetry-allowed,omitempty"`
}

// GenerateProfileLevelIdForAnswer returns the profile-level-id to answer with,
// given the locally supported and the remotely offered parameters. Both sides
// describe sendrecv media, so they mix encode and decode capabilities.
//
// Profiles must already be equal: every supported profile is expected to be
// listed as a distinct local codec and tested one at a time against the remote
// one. Only the level and level-asymmetry-allowed are negotiated here.
//
// An empty string is returned when neither side has a profile-level-id.
func GenerateProfileLevelIdForAnswer(local, remote RtpParameter) (string, error) {
	if len(local.ProfileLevelId) == 0 && len(remote.ProfileLevelId) == 0 {
		return "", nil
	}

	localId := ParseSdpProfileLevelId(local.ProfileLevelId)
	if localId == nil {
		return "", ErrInvalidLocalProfileLevelId
	}
	remoteId := ParseSdpProfileLevelId(remote.ProfileLevelId)
	if remoteId == nil {
		return "", ErrInvalidRemoteProfileLevelId
	}
	if localId.Profile != remoteId.Profile {
		return "", ErrProfileMismatch
	}

	// Without level asymmetry the answer may not upgrade the offered level.
	answerLevel := minLevel(localId.Level, remoteId.Level)

	if local.LevelAsymmetryAllowed > 0 && remote.LevelAsymmetryAllowed > 0 {
		answerLevel = localId.Level
	}

	return ProfileLevelId{Profile: localId.Profile, Level: answerLevel}.String(), nil
}
