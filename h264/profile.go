package h264

import "math"

// Profile is an H264 profile as negotiated in SDP.
type Profile byte

const (
	ProfileConstrainedBaseline Profile = iota + 1
	ProfileBaseline
	ProfileMain
	ProfileConstrainedHigh
	ProfileHigh
	ProfilePredictiveHigh444
)

func (p Profile) String() string {
	switch p {
	case ProfileConstrainedBaseline:
		return "ConstrainedBaseline"
	case ProfileBaseline:
		return "Baseline"
	case ProfileMain:
		return "Main"
	case ProfileConstrainedHigh:
		return "ConstrainedHigh"
	case ProfileHigh:
		return "High"
	case ProfilePredictiveHigh444:
		return "PredictiveHigh444"
	default:
		return ""
	}
}

// iopPrefix is the leading two hex bytes (profile_idc, profile_iop) used when
// rendering a profile-level-id for the profile.
func (p Profile) iopPrefix() string {
	switch p {
	case ProfileConstrainedBaseline:
		return "42e0"
	case ProfileBaseline:
		return "4200"
	case ProfileMain:
		return "4d00"
	case ProfileConstrainedHigh:
		return "640c"
	case ProfileHigh:
		return "6400"
	case ProfilePredictiveHigh444:
		return "f400"
	default:
		return ""
	}
}

// bitPattern matches bytes against patterns such as "x1xx0000", where "x"
// accepts either bit value.
type bitPattern struct {
	mask  byte
	value byte
}

func newBitPattern(str string) bitPattern {
	return bitPattern{
		mask:  math.MaxUint8 - maskOf('x', str),
		value: maskOf('1', str),
	}
}

func (b bitPattern) match(v byte) bool {
	return b.value == v&b.mask
}

// maskOf sets the bit of every position of str holding c, most significant
// bit first.
func maskOf(c byte, str string) (mask byte) {
	for i := 0; i < len(str); i++ {
		if str[i] == c {
			mask |= 1 << uint(len(str)-1-i)
		}
	}
	return
}

type profilePattern struct {
	profileIdc byte
	profileIop bitPattern
	profile    Profile
}

// profilePatterns maps profile_idc/profile_iop to a Profile, see
// https://tools.ietf.org/html/rfc6184#section-8.1.
var profilePatterns = []profilePattern{
	{0x42, newBitPattern("x1xx0000"), ProfileConstrainedBaseline},
	{0x4D, newBitPattern("1xxx0000"), ProfileConstrainedBaseline},
	{0x58, newBitPattern("11xx0000"), ProfileConstrainedBaseline},
	{0x42, newBitPattern("x0xx0000"), ProfileBaseline},
	{0x58, newBitPattern("10xx0000"), ProfileBaseline},
	{0x4D, newBitPattern("0x0x0000"), ProfileMain},
	{0x64, newBitPattern("00000000"), ProfileHigh},
	{0x64, newBitPattern("00001100"), ProfileConstrainedHigh},
	{0xF4, newBitPattern("00000000"), ProfilePredictiveHigh444},
}

func lookupProfile(profileIdc, profileIop byte) (Profile, bool) {
	for _, pattern := range profilePatterns {
		if pattern.profileIdc == profileIdc && pattern.profileIop.match(profileIop) {
			return pattern.profile, true
		}
	}
	return 0, false
}
