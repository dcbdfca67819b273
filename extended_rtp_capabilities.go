package mediasoupclient

// ExtendedRtpCapabilities is the reconciliation of local and remote RTP
// capabilities. Codec and header extension order follows the local
// declaration. It must not be modified once built, so it can be shared by
// concurrent readers.
type ExtendedRtpCapabilities struct {
	Codecs           []*ExtendedCodec           `json:"codecs"`
	HeaderExtensions []*ExtendedHeaderExtension `json:"headerExtensions"`
}

// ExtendedCodec is a local media codec matched with a remote one, plus the
// RTX link when both sides declare one.
type ExtendedCodec struct {
	Kind      MediaKind `json:"kind"`
	MimeType  string    `json:"mimeType"`
	ClockRate int       `json:"clockRate"`
	Channels  int       `json:"channels,omitempty"`

	LocalPayloadType     uint8  `json:"localPayloadType"`
	RemotePayloadType    uint8  `json:"remotePayloadType"`
	LocalRtxPayloadType  *uint8 `json:"localRtxPayloadType,omitempty"`
	RemoteRtxPayloadType *uint8 `json:"remoteRtxPayloadType,omitempty"`

	// Parameters comes from the local declaration, with the H264
	// profile-level-id replaced by the negotiated answer.
	Parameters       RtpCodecSpecificParameters `json:"parameters"`
	RemoteParameters RtpCodecSpecificParameters `json:"remoteParameters"`

	// RtcpFeedback is the local feedback followed by the remote-only one.
	RtcpFeedback []RtcpFeedback `json:"rtcpFeedback"`
}

// HasRtx reports whether the codec carries an RTX link on both sides.
func (c *ExtendedCodec) HasRtx() bool {
	return c.LocalRtxPayloadType != nil && c.RemoteRtxPayloadType != nil
}

// ExtendedHeaderExtension is a local header extension matched by uri with a
// remote one.
type ExtendedHeaderExtension struct {
	Kind      MediaKind      `json:"kind"`
	Uri       string         `json:"uri"`
	LocalId   int            `json:"localId"`
	RemoteId  int            `json:"remoteId"`
	Encrypt   bool           `json:"encrypt,omitempty"`
	Direction MediaDirection `json:"direction"`
}

func (e *ExtendedHeaderExtension) appliesTo(kind MediaKind) bool {
	return len(e.Kind) == 0 || e.Kind == kind
}

// Filter returns new extended capabilities holding only the codecs for which
// keep returns true. Header extensions are kept as they are.
func (c ExtendedRtpCapabilities) Filter(keep func(codec *ExtendedCodec) bool) ExtendedRtpCapabilities {
	filtered := ExtendedRtpCapabilities{
		Codecs:           []*ExtendedCodec{},
		HeaderExtensions: c.HeaderExtensions,
	}

	for _, codec := range c.Codecs {
		if keep(codec) {
			filtered.Codecs = append(filtered.Codecs, codec)
		}
	}

	return filtered
}

// codecsOfKind returns the codecs of the given kind, in order.
func (c ExtendedRtpCapabilities) codecsOfKind(kind MediaKind) (codecs []*ExtendedCodec) {
	for _, codec := range c.Codecs {
		if codec.Kind == kind {
			codecs = append(codecs, codec)
		}
	}
	return
}
