package mediasoupclient

import (
	"strings"
)

// CodecFamily groups codecs sharing a matching rule.
type CodecFamily int

const (
	// CodecFamilyGeneric codecs match on mimeType, clockRate and channels only.
	CodecFamilyGeneric CodecFamily = iota
	// CodecFamilyH264 codecs also match on packetization-mode and profile.
	CodecFamilyH264
	// CodecFamilyVP9 codecs also match on profile-id.
	CodecFamilyVP9
	// CodecFamilyRtx codecs match through their associated payload type.
	CodecFamilyRtx
)

// MimeType is a parsed "kind/subtype" codec MIME type.
type MimeType struct {
	Kind    MediaKind
	Subtype string
}

// ParseMimeType parses s, e.g. "video/VP8". The kind is case-insensitive and
// must be audio or video; the subtype keeps its original case.
func ParseMimeType(s string) (MimeType, error) {
	kind, subtype, ok := strings.Cut(s, "/")
	if !ok || len(subtype) == 0 || strings.Contains(subtype, "/") {
		return MimeType{}, NewInvalidCapabilityError("invalid mimeType %q", s)
	}
	mimeType := MimeType{
		Kind:    MediaKind(strings.ToLower(kind)),
		Subtype: subtype,
	}
	if err := mimeType.Kind.Validate(); err != nil {
		return MimeType{}, NewInvalidCapabilityError("invalid mimeType %q", s)
	}
	return mimeType, nil
}

func (m MimeType) String() string {
	return string(m.Kind) + "/" + m.Subtype
}

// Equal compares mime types case-insensitively.
func (m MimeType) Equal(other MimeType) bool {
	return m.Kind == other.Kind && strings.EqualFold(m.Subtype, other.Subtype)
}

func (m MimeType) Family() CodecFamily {
	switch strings.ToLower(m.Subtype) {
	case "rtx":
		return CodecFamilyRtx
	case "h264":
		return CodecFamilyH264
	case "vp9":
		return CodecFamilyVP9
	default:
		return CodecFamilyGeneric
	}
}

func (m MimeType) IsRtx() bool {
	return m.Family() == CodecFamilyRtx
}

// rtxMimeType returns the RTX mime type of the given kind.
func rtxMimeType(kind MediaKind) string {
	return MimeType{Kind: kind, Subtype: "rtx"}.String()
}

func isRtxMimeType(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), "/rtx")
}
