// Package h264 implements the H264 profile-level-id compatibility rules of
// RFC 6184 as applied by libwebrtc when negotiating codecs.
package h264

import (
	"encoding/hex"
	"fmt"
)

// constraintSet3Flag tells level 1b from level 1.1 when level_idc is 11 and
// profile_idc is 0x42, 0x4D or 0x58.
const constraintSet3Flag byte = 0x10

// DefaultProfileLevelId is assumed when a codec carries no profile-level-id.
//
// RFC 6184 says the default is Baseline level 1, but libwebrtc uses
// ConstrainedBaseline level 3.1 to stay compatible with external codecs that
// omit the parameter (http://crbug/webrtc/6337).
var DefaultProfileLevelId = ProfileLevelId{
	Profile: ProfileConstrainedBaseline,
	Level:   Level3_1,
}

type ProfileLevelId struct {
	Profile Profile
	Level   Level
}

// String returns the canonical three hex bytes of the profile-level-id, or ""
// for an invalid combination.
func (p ProfileLevelId) String() string {
	if p.Level == Level1_b {
		switch p.Profile {
		case ProfileConstrainedBaseline:
			return "42f00b"
		case ProfileBaseline:
			return "42100b"
		case ProfileMain:
			return "4d100b"
		default:
			return ""
		}
	}

	prefix := p.Profile.iopPrefix()
	if len(prefix) == 0 {
		return ""
	}

	return fmt.Sprintf("%s%02x", prefix, byte(p.Level))
}

// ParseProfileLevelId parses a profile-level-id given as three hex bytes. It
// returns nil if str is not a recognized H264 profile-level-id.
func ParseProfileLevelId(str string) *ProfileLevelId {
	if len(str) != 6 {
		return nil
	}
	raw, err := hex.DecodeString(str)
	if err != nil || (raw[0] == 0 && raw[1] == 0 && raw[2] == 0) {
		return nil
	}
	profileIdc, profileIop, levelIdc := raw[0], raw[1], Level(raw[2])

	var level Level

	switch {
	case levelIdc == Level1_1:
		if profileIop&constraintSet3Flag != 0 {
			level = Level1_b
		} else {
			level = Level1_1
		}
	case levelIdc != Level1_b && levelIdc.valid():
		level = levelIdc
	default:
		return nil
	}

	profile, ok := lookupProfile(profileIdc, profileIop)
	if !ok {
		return nil
	}

	return &ProfileLevelId{Profile: profile, Level: level}
}

// ParseSdpProfileLevelId is like ParseProfileLevelId but returns
// DefaultProfileLevelId for an empty string.
func ParseSdpProfileLevelId(str string) *ProfileLevelId {
	if len(str) == 0 {
		def := DefaultProfileLevelId
		return &def
	}
	return ParseProfileLevelId(str)
}

// IsSameProfile reports whether both profile-level-ids are valid and carry the
// same profile.
func IsSameProfile(a, b string) bool {
	pa, pb := ParseSdpProfileLevelId(a), ParseSdpProfileLevelId(b)

	return pa != nil && pb != nil && pa.Profile == pb.Profile
}

// IsSameProfileAndLevel reports whether both profile-level-ids are valid and
// carry the same profile and level.
func IsSameProfileAndLevel(a, b string) bool {
	pa, pb := ParseSdpProfileLevelId(a), ParseSdpProfileLevelId(b)

	return pa != nil && pb != nil && *pa == *pb
}
