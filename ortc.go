package mediasoupclient

import (
	"fmt"

	"github.com/pion/sdp/v3"

	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

// maxPayloadType is the highest 7-bit RTP payload type.
const maxPayloadType = 127

/**
 * Validates RtpCapabilities. It returns a normalized deep copy of caps with
 * missing optional fields set to their defaults; caps itself is not modified.
 * Codec parameters without a field in RtpCodecSpecificParameters are not
 * kept, so they never reach the extended or sending capabilities.
 */
func ValidateRtpCapabilities(caps RtpCapabilities) (normalized RtpCapabilities, err error) {
	if err = clone(caps, &normalized); err != nil {
		return
	}

	payloadTypes := map[uint8]bool{}

	for _, codec := range normalized.Codecs {
		if codec == nil {
			return normalized, NewInvalidCapabilityError("missing codec")
		}
		if err = validateRtpCodecCapability(codec); err != nil {
			return
		}
		if codec.PayloadType == nil {
			continue
		}
		if payloadTypes[*codec.PayloadType] {
			return normalized, NewInvalidCapabilityError("duplicated codec.payloadType %d", *codec.PayloadType)
		}
		payloadTypes[*codec.PayloadType] = true
	}

	for _, ext := range normalized.HeaderExtensions {
		if ext == nil {
			return normalized, NewInvalidCapabilityError("missing header extension")
		}
		if err = validateRtpHeaderExtension(ext); err != nil {
			return
		}
	}

	return
}

/**
 * Validates RtpCodecCapability. It may modify given data by adding missing
 * fields with default values.
 */
func validateRtpCodecCapability(codec *RtpCodecCapability) error {
	// mimeType is mandatory.
	mimeType, err := ParseMimeType(codec.MimeType)
	if err != nil {
		return err
	}

	// kind is optional. If unset, take it from mimeType.
	if len(codec.Kind) == 0 {
		codec.Kind = mimeType.Kind
	} else if codec.Kind != mimeType.Kind {
		return NewInvalidCapabilityError("codec.kind %q does not match mimeType %q", codec.Kind, codec.MimeType)
	}

	// clockRate is mandatory.
	if codec.ClockRate <= 0 {
		return NewInvalidCapabilityError("missing codec.clockRate [mimeType:%s]", codec.MimeType)
	}

	if codec.PayloadType != nil && *codec.PayloadType > maxPayloadType {
		return NewInvalidCapabilityError("codec.payloadType %d out of range", *codec.PayloadType)
	}

	// channels is optional. If unset, set it to 1 (just if audio).
	if codec.Channels < 0 {
		return NewInvalidCapabilityError("invalid codec.channels %d", codec.Channels)
	}
	if codec.Kind == MediaKindAudio && codec.Channels == 0 {
		codec.Channels = 1
	}

	// apt is mandatory for RTX codecs.
	if mimeType.IsRtx() && codec.Parameters.Apt == 0 {
		return NewInvalidCapabilityError("missing codec.parameters.apt [mimeType:%s]", codec.MimeType)
	}

	return validateRtcpFeedbacks(codec.RtcpFeedback)
}

func validateRtcpFeedbacks(fbs []RtcpFeedback) error {
	for _, fb := range fbs {
		if len(fb.Type) == 0 {
			return NewInvalidCapabilityError("missing fb.type")
		}
	}
	return nil
}

/**
 * Validates RtpHeaderExtension. It may modify given data by adding missing
 * fields with default values.
 */
func validateRtpHeaderExtension(ext *RtpHeaderExtension) error {
	// kind is optional. If unset, the extension is valid for all kinds.
	if len(ext.Kind) > 0 && ext.Kind.Validate() != nil {
		return NewInvalidCapabilityError("invalid ext.kind %q", ext.Kind)
	}

	// uri is mandatory.
	if len(ext.Uri) == 0 {
		return NewInvalidCapabilityError("missing ext.uri")
	}

	// preferredId is mandatory.
	if ext.PreferredId <= 0 || ext.PreferredId > 255 {
		return NewInvalidCapabilityError("invalid ext.preferredId %d [uri:%s]", ext.PreferredId, ext.Uri)
	}

	// direction is optional. If unset set it to sendrecv.
	if len(ext.Direction) == 0 {
		ext.Direction = MediaDirectionSendrecv
	} else if _, err := sdp.NewDirection(string(ext.Direction)); err != nil {
		return NewInvalidCapabilityError("invalid ext.direction %q [uri:%s]", ext.Direction, ext.Uri)
	}

	return nil
}

/**
 * Validates RtpParameters. It returns a normalized deep copy of params with
 * missing optional fields set to their defaults; params itself is not
 * modified.
 */
func ValidateRtpParameters(params RtpParameters) (normalized RtpParameters, err error) {
	if err = clone(params, &normalized); err != nil {
		return
	}

	payloadTypes := map[uint8]bool{}

	for _, codec := range normalized.Codecs {
		if codec == nil {
			return normalized, NewInvalidCapabilityError("missing codec")
		}
		if err = validateRtpCodecParameters(codec); err != nil {
			return
		}
		if payloadTypes[codec.PayloadType] {
			return normalized, NewInvalidCapabilityError("duplicated codec.payloadType %d", codec.PayloadType)
		}
		payloadTypes[codec.PayloadType] = true
	}

	for _, ext := range normalized.HeaderExtensions {
		// uri is mandatory.
		if len(ext.Uri) == 0 {
			return normalized, NewInvalidCapabilityError("missing ext.uri")
		}
		// id is mandatory.
		if ext.Id <= 0 || ext.Id > 255 {
			return normalized, NewInvalidCapabilityError("invalid ext.id %d [uri:%s]", ext.Id, ext.Uri)
		}
	}

	// reducedSize is optional. If unset set it to true.
	if normalized.Rtcp.ReducedSize == nil {
		normalized.Rtcp.ReducedSize = Bool(true)
	}

	return
}

/**
 * Validates RtpCodecParameters. It may modify given data by adding missing
 * fields with default values.
 */
func validateRtpCodecParameters(codec *RtpCodecParameters) error {
	mimeType, err := ParseMimeType(codec.MimeType)
	if err != nil {
		return err
	}

	if codec.PayloadType > maxPayloadType {
		return NewInvalidCapabilityError("codec.payloadType %d out of range", codec.PayloadType)
	}

	if codec.ClockRate <= 0 {
		return NewInvalidCapabilityError("missing codec.clockRate [mimeType:%s]", codec.MimeType)
	}

	if mimeType.Kind == MediaKindAudio && codec.Channels == 0 {
		codec.Channels = 1
	}

	return validateRtcpFeedbacks(codec.RtcpFeedback)
}

func requirePayloadTypes(caps RtpCapabilities) error {
	for _, codec := range caps.Codecs {
		if codec.PayloadType == nil {
			return NewInvalidCapabilityError("missing codec.payloadType [mimeType:%s]", codec.MimeType)
		}
	}
	return nil
}

/**
 * Generate extended RTP capabilities out of the local capabilities of this
 * endpoint and the remote ones. Order follows the local declaration; local
 * codecs and header extensions without a remote match are dropped.
 */
func GetExtendedRtpCapabilities(localCaps, remoteCaps RtpCapabilities) (extended ExtendedRtpCapabilities, err error) {
	local, err := ValidateRtpCapabilities(localCaps)
	if err == nil {
		err = requirePayloadTypes(local)
	}
	if err != nil {
		return extended, fmt.Errorf("local capabilities: %w", err)
	}
	remote, err := ValidateRtpCapabilities(remoteCaps)
	if err == nil {
		err = requirePayloadTypes(remote)
	}
	if err != nil {
		return extended, fmt.Errorf("remote capabilities: %w", err)
	}

	extended.Codecs = []*ExtendedCodec{}
	extended.HeaderExtensions = []*ExtendedHeaderExtension{}

	matcher := newCodecMatcher()
	usedRemoteCodecs := map[*RtpCodecCapability]bool{}
	extendedByLocalPt := map[uint8]*ExtendedCodec{}

	findRemoteCodec := func(localCodec *RtpCodecCapability) *RtpCodecCapability {
		for _, remoteCodec := range remote.Codecs {
			if !usedRemoteCodecs[remoteCodec] && matcher.match(localCodec, remoteCodec) {
				usedRemoteCodecs[remoteCodec] = true
				return remoteCodec
			}
		}
		return nil
	}

	// Match media codecs.
	for _, localCodec := range local.Codecs {
		if isRtxMimeType(localCodec.MimeType) {
			continue
		}
		remoteCodec := findRemoteCodec(localCodec)
		if remoteCodec == nil {
			continue
		}
		extendedCodec := newExtendedCodec(localCodec, remoteCodec)

		matcher.pair(extendedCodec.LocalPayloadType, extendedCodec.RemotePayloadType)
		extendedByLocalPt[extendedCodec.LocalPayloadType] = extendedCodec
		extended.Codecs = append(extended.Codecs, extendedCodec)
	}

	// Match RTX codecs.
	for _, localCodec := range local.Codecs {
		if !isRtxMimeType(localCodec.MimeType) {
			continue
		}
		extendedCodec := extendedByLocalPt[localCodec.Parameters.Apt]

		if extendedCodec == nil || extendedCodec.Kind != localCodec.Kind || extendedCodec.LocalRtxPayloadType != nil {
			continue
		}
		remoteCodec := findRemoteCodec(localCodec)
		if remoteCodec == nil {
			continue
		}
		extendedCodec.LocalRtxPayloadType = Uint8(*localCodec.PayloadType)
		extendedCodec.RemoteRtxPayloadType = Uint8(*remoteCodec.PayloadType)
	}

	// Match header extensions.
	for _, localExt := range local.HeaderExtensions {
		remoteExt := findHeaderExtension(remote.HeaderExtensions, localExt)
		if remoteExt == nil {
			continue
		}
		extended.HeaderExtensions = append(extended.HeaderExtensions, &ExtendedHeaderExtension{
			Kind:      localExt.Kind,
			Uri:       localExt.Uri,
			LocalId:   localExt.PreferredId,
			RemoteId:  remoteExt.PreferredId,
			Encrypt:   localExt.PreferredEncrypt,
			Direction: intersectDirections(localExt.Direction, remoteExt.Direction),
		})
	}

	return
}

func newExtendedCodec(localCodec, remoteCodec *RtpCodecCapability) *ExtendedCodec {
	extendedCodec := &ExtendedCodec{
		Kind:              localCodec.Kind,
		MimeType:          localCodec.MimeType,
		ClockRate:         localCodec.ClockRate,
		Channels:          localCodec.Channels,
		LocalPayloadType:  *localCodec.PayloadType,
		RemotePayloadType: *remoteCodec.PayloadType,
		Parameters:        localCodec.Parameters.clone(),
		RemoteParameters:  remoteCodec.Parameters.clone(),
		RtcpFeedback:      unionRtcpFeedback(localCodec.RtcpFeedback, remoteCodec.RtcpFeedback),
	}

	// The matcher already accepted the pair, so only the answer is needed here.
	if mimeType, _ := ParseMimeType(localCodec.MimeType); mimeType.Family() == CodecFamilyH264 {
		plid, _ := h264.GenerateProfileLevelIdForAnswer(
			localCodec.Parameters.RtpParameter, remoteCodec.Parameters.RtpParameter)
		if len(plid) > 0 {
			extendedCodec.Parameters.ProfileLevelId = plid
		}
	}

	return extendedCodec
}

// findHeaderExtension returns the first remote extension with the uri of
// localExt, preferring one declared for the same kind.
func findHeaderExtension(remoteExts []*RtpHeaderExtension, localExt *RtpHeaderExtension) *RtpHeaderExtension {
	var sameUri *RtpHeaderExtension

	for _, remoteExt := range remoteExts {
		if remoteExt.Uri != localExt.Uri {
			continue
		}
		if remoteExt.Kind == localExt.Kind || len(remoteExt.Kind) == 0 || len(localExt.Kind) == 0 {
			return remoteExt
		}
		if sameUri == nil {
			sameUri = remoteExt
		}
	}

	return sameUri
}

// intersectDirections returns the direction both sides agree on, with
// sendrecv containing sendonly and recvonly, which both contain inactive.
func intersectDirections(local, remote MediaDirection) MediaDirection {
	switch {
	case local == MediaDirectionInactive || remote == MediaDirectionInactive:
		return MediaDirectionInactive
	case local == remote:
		return local
	case local == MediaDirectionSendrecv:
		return remote
	case remote == MediaDirectionSendrecv:
		return local
	default:
		return MediaDirectionInactive
	}
}

/**
 * Generate RTP capabilities for receiving media based on the given extended
 * RTP capabilities. Payload types and header extension ids are the remote
 * ones, since incoming streams use the remote numbering.
 */
func GetRecvRtpCapabilities(extended ExtendedRtpCapabilities) RtpCapabilities {
	caps := RtpCapabilities{
		Codecs:           []*RtpCodecCapability{},
		HeaderExtensions: []*RtpHeaderExtension{},
	}

	for _, extendedCodec := range extended.Codecs {
		caps.Codecs = append(caps.Codecs, &RtpCodecCapability{
			Kind:         extendedCodec.Kind,
			MimeType:     extendedCodec.MimeType,
			PayloadType:  Uint8(extendedCodec.RemotePayloadType),
			ClockRate:    extendedCodec.ClockRate,
			Channels:     extendedCodec.Channels,
			Parameters:   extendedCodec.Parameters.clone(),
			RtcpFeedback: cloneRtcpFeedback(extendedCodec.RtcpFeedback),
		})

		// Add RTX codec.
		if !extendedCodec.HasRtx() {
			continue
		}
		caps.Codecs = append(caps.Codecs, &RtpCodecCapability{
			Kind:        extendedCodec.Kind,
			MimeType:    rtxMimeType(extendedCodec.Kind),
			PayloadType: Uint8(*extendedCodec.RemoteRtxPayloadType),
			ClockRate:   extendedCodec.ClockRate,
			Parameters: RtpCodecSpecificParameters{
				Apt: extendedCodec.RemotePayloadType,
			},
			RtcpFeedback: []RtcpFeedback{},
		})
	}

	for _, extendedExt := range extended.HeaderExtensions {
		caps.HeaderExtensions = append(caps.HeaderExtensions, &RtpHeaderExtension{
			Kind:             extendedExt.Kind,
			Uri:              extendedExt.Uri,
			PreferredId:      extendedExt.RemoteId,
			PreferredEncrypt: extendedExt.Encrypt,
			Direction:        extendedExt.Direction,
		})
	}

	return caps
}

/**
 * Generate RTP parameters of the given kind for sending media. Only the first
 * codec of the kind (plus its RTX codec) is selected, with local payload
 * types and header extension ids.
 */
func GetSendingRtpParameters(kind MediaKind, extended ExtendedRtpCapabilities) (params RtpParameters, err error) {
	if err = kind.Validate(); err != nil {
		return
	}
	codecs := extended.codecsOfKind(kind)

	if len(codecs) == 0 {
		return params, NewNoCodecForKindError(kind)
	}
	extendedCodec := codecs[0]

	params.Codecs = []*RtpCodecParameters{
		sendingCodec(extendedCodec, extendedCodec.Parameters),
	}
	if extendedCodec.HasRtx() {
		params.Codecs = append(params.Codecs, sendingRtxCodec(extendedCodec))
	}
	params.HeaderExtensions = sendingHeaderExtensions(kind, extended)
	params.Rtcp = RtcpParameters{ReducedSize: Bool(true)}

	return
}

/**
 * Generate RTP parameters of the given kind that the remote side should use
 * to receive what this endpoint sends. Every codec of the kind is listed, with
 * the remote codec parameters, and RTCP feedback is reduced to the bandwidth
 * estimation mechanism available.
 */
func GetSendingRemoteRtpParameters(kind MediaKind, extended ExtendedRtpCapabilities) (params RtpParameters, err error) {
	if err = kind.Validate(); err != nil {
		return
	}
	codecs := extended.codecsOfKind(kind)

	if len(codecs) == 0 {
		return params, NewNoCodecForKindError(kind)
	}
	params.Codecs = []*RtpCodecParameters{}

	for _, extendedCodec := range codecs {
		params.Codecs = append(params.Codecs, sendingCodec(extendedCodec, extendedCodec.RemoteParameters))

		if extendedCodec.HasRtx() {
			params.Codecs = append(params.Codecs, sendingRtxCodec(extendedCodec))
		}
	}
	params.HeaderExtensions = sendingHeaderExtensions(kind, extended)
	params.Rtcp = RtcpParameters{ReducedSize: Bool(true)}

	// Reduce codecs' RTCP feedback. Use Transport-CC if available, REMB otherwise.
	var keep func(fb RtcpFeedback) bool

	switch {
	case hasHeaderExtension(params.HeaderExtensions, sdp.TransportCCURI):
		keep = func(fb RtcpFeedback) bool { return fb.Type != "goog-remb" }
	case hasHeaderExtension(params.HeaderExtensions, sdp.ABSSendTimeURI):
		keep = func(fb RtcpFeedback) bool { return fb.Type != "transport-cc" }
	default:
		keep = func(fb RtcpFeedback) bool { return fb.Type != "transport-cc" && fb.Type != "goog-remb" }
	}

	for _, codec := range params.Codecs {
		codec.RtcpFeedback = filterRtcpFeedback(codec.RtcpFeedback, keep)
	}

	return
}

func sendingCodec(extendedCodec *ExtendedCodec, parameters RtpCodecSpecificParameters) *RtpCodecParameters {
	return &RtpCodecParameters{
		MimeType:     extendedCodec.MimeType,
		PayloadType:  extendedCodec.LocalPayloadType,
		ClockRate:    extendedCodec.ClockRate,
		Channels:     extendedCodec.Channels,
		Parameters:   parameters.clone(),
		RtcpFeedback: cloneRtcpFeedback(extendedCodec.RtcpFeedback),
	}
}

func sendingRtxCodec(extendedCodec *ExtendedCodec) *RtpCodecParameters {
	return &RtpCodecParameters{
		MimeType:    rtxMimeType(extendedCodec.Kind),
		PayloadType: *extendedCodec.LocalRtxPayloadType,
		ClockRate:   extendedCodec.ClockRate,
		Parameters: RtpCodecSpecificParameters{
			Apt: extendedCodec.LocalPayloadType,
		},
		RtcpFeedback: []RtcpFeedback{},
	}
}

// sendingHeaderExtensions returns the extensions of kind valid for sending.
func sendingHeaderExtensions(kind MediaKind, extended ExtendedRtpCapabilities) []RtpHeaderExtensionParameters {
	exts := []RtpHeaderExtensionParameters{}

	for _, extendedExt := range extended.HeaderExtensions {
		if !extendedExt.appliesTo(kind) || !extendedExt.Direction.canSend() {
			continue
		}
		exts = append(exts, RtpHeaderExtensionParameters{
			Uri:     extendedExt.Uri,
			Id:      extendedExt.LocalId,
			Encrypt: extendedExt.Encrypt,
		})
	}

	return exts
}

func hasHeaderExtension(exts []RtpHeaderExtensionParameters, uri string) bool {
	for _, ext := range exts {
		if ext.Uri == uri {
			return true
		}
	}
	return false
}

/**
 * Whether media can be sent based on the given extended RTP capabilities.
 */
func CanSend(kind MediaKind, extended ExtendedRtpCapabilities) (bool, error) {
	if err := kind.Validate(); err != nil {
		return false, err
	}
	return len(extended.codecsOfKind(kind)) > 0, nil
}

/**
 * Whether the given RTP parameters can be received with the given extended
 * RTP capabilities. Every codec must use a payload type the remote side was
 * negotiated with, RTX ones included.
 */
func CanReceive(params RtpParameters, extended ExtendedRtpCapabilities) (bool, error) {
	normalized, err := ValidateRtpParameters(params)
	if err != nil {
		return false, err
	}
	if len(normalized.Codecs) == 0 {
		return false, nil
	}

	receivable := map[uint8]bool{}

	for _, extendedCodec := range extended.Codecs {
		receivable[extendedCodec.RemotePayloadType] = true

		if extendedCodec.HasRtx() {
			receivable[*extendedCodec.RemoteRtxPayloadType] = true
		}
	}

	for _, codec := range normalized.Codecs {
		if !receivable[codec.PayloadType] {
			return false, nil
		}
	}

	return true, nil
}

/**
 * Reduce the given codecs to the first media codec (plus its RTX codec), or
 * to the first one matching capCodec if given.
 */
func ReduceCodecs(codecs []*RtpCodecParameters, capCodec *RtpCodecCapability) ([]*RtpCodecParameters, error) {
	filtered := []*RtpCodecParameters{}

	for idx, codec := range codecs {
		if isRtxMimeType(codec.MimeType) {
			continue
		}
		if capCodec != nil && !MatchCodecs(capabilityOf(codec), capCodec) {
			continue
		}
		filtered = append(filtered, codec)

		if idx+1 < len(codecs) && isRtxMimeType(codecs[idx+1].MimeType) {
			filtered = append(filtered, codecs[idx+1])
		}
		return filtered, nil
	}

	if capCodec != nil {
		return nil, NewUnsupportedError("no matching codec found [mimeType:%s]", capCodec.MimeType)
	}
	return nil, NewUnsupportedError("no media codec found")
}

func capabilityOf(codec *RtpCodecParameters) *RtpCodecCapability {
	mimeType, _ := ParseMimeType(codec.MimeType)

	return &RtpCodecCapability{
		Kind:        mimeType.Kind,
		MimeType:    codec.MimeType,
		PayloadType: Uint8(codec.PayloadType),
		ClockRate:   codec.ClockRate,
		Channels:    codec.Channels,
		Parameters:  codec.Parameters,
	}
}
