// Package pionengine registers negotiated mediasoup capabilities with a pion
// MediaEngine and converts RTP parameters to their pion counterpart.
package pionengine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pion/webrtc/v4"

	mediasoupclient "github.com/jiyeyuran/mediasoup-client-go"
)

// RegisterRtpCapabilities registers the codecs and header extensions of caps
// with m. Header extensions without kind are registered for both kinds, and
// inactive ones are not registered.
func RegisterRtpCapabilities(m *webrtc.MediaEngine, caps mediasoupclient.RtpCapabilities) error {
	for _, codec := range caps.Codecs {
		if codec.PayloadType == nil {
			return mediasoupclient.NewInvalidCapabilityError("missing codec.payloadType [mimeType:%s]", codec.MimeType)
		}
		mimeType, err := mediasoupclient.ParseMimeType(codec.MimeType)
		if err != nil {
			return err
		}
		fmtpLine, err := FmtpLine(codec.Parameters)
		if err != nil {
			return err
		}
		parameters := webrtc.RTPCodecParameters{
			RTPCodecCapability: webrtc.RTPCodecCapability{
				MimeType:     codec.MimeType,
				ClockRate:    uint32(codec.ClockRate),
				Channels:     uint16(codec.Channels),
				SDPFmtpLine:  fmtpLine,
				RTCPFeedback: rtcpFeedback(codec.RtcpFeedback),
			},
			PayloadType: webrtc.PayloadType(*codec.PayloadType),
		}
		if err = m.RegisterCodec(parameters, codecType(mimeType.Kind)); err != nil {
			return err
		}
	}

	for _, ext := range caps.HeaderExtensions {
		directions, ok := transceiverDirections(ext.Direction)
		if !ok {
			continue
		}
		kinds := []mediasoupclient.MediaKind{ext.Kind}
		if len(ext.Kind) == 0 {
			kinds = []mediasoupclient.MediaKind{mediasoupclient.MediaKindAudio, mediasoupclient.MediaKindVideo}
		}
		for _, kind := range kinds {
			capability := webrtc.RTPHeaderExtensionCapability{URI: ext.Uri}

			if err := m.RegisterHeaderExtension(capability, codecType(kind), directions...); err != nil {
				return err
			}
		}
	}

	return nil
}

// CodecParameters converts the codecs of params, in order.
func CodecParameters(params mediasoupclient.RtpParameters) ([]webrtc.RTPCodecParameters, error) {
	codecs := make([]webrtc.RTPCodecParameters, 0, len(params.Codecs))

	for _, codec := range params.Codecs {
		fmtpLine, err := FmtpLine(codec.Parameters)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, webrtc.RTPCodecParameters{
			RTPCodecCapability: webrtc.RTPCodecCapability{
				MimeType:     codec.MimeType,
				ClockRate:    uint32(codec.ClockRate),
				Channels:     uint16(codec.Channels),
				SDPFmtpLine:  fmtpLine,
				RTCPFeedback: rtcpFeedback(codec.RtcpFeedback),
			},
			PayloadType: webrtc.PayloadType(codec.PayloadType),
		})
	}

	return codecs, nil
}

// FmtpLine renders codec parameters as an SDP fmtp line: "key=value" pairs
// sorted by key and joined by ';'.
func FmtpLine(params mediasoupclient.RtpCodecSpecificParameters) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	values := map[string]interface{}{}
	if err = decoder.Decode(&values); err != nil {
		return "", err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, values[key]))
	}

	return strings.Join(pairs, ";"), nil
}

func codecType(kind mediasoupclient.MediaKind) webrtc.RTPCodecType {
	switch kind {
	case mediasoupclient.MediaKindAudio:
		return webrtc.RTPCodecTypeAudio
	case mediasoupclient.MediaKindVideo:
		return webrtc.RTPCodecTypeVideo
	default:
		return webrtc.RTPCodecType(0)
	}
}

// transceiverDirections maps a header extension direction to the transceiver
// directions pion allows it on. It returns false for inactive extensions.
func transceiverDirections(direction mediasoupclient.MediaDirection) ([]webrtc.RTPTransceiverDirection, bool) {
	switch direction {
	case mediasoupclient.MediaDirectionSendonly:
		return []webrtc.RTPTransceiverDirection{webrtc.RTPTransceiverDirectionSendonly}, true
	case mediasoupclient.MediaDirectionRecvonly:
		return []webrtc.RTPTransceiverDirection{webrtc.RTPTransceiverDirectionRecvonly}, true
	case mediasoupclient.MediaDirectionInactive:
		return nil, false
	default:
		return []webrtc.RTPTransceiverDirection{
			webrtc.RTPTransceiverDirectionRecvonly,
			webrtc.RTPTransceiverDirectionSendonly,
		}, true
	}
}

func rtcpFeedback(fbs []mediasoupclient.RtcpFeedback) []webrtc.RTCPFeedback {
	if len(fbs) == 0 {
		return nil
	}
	feedback := make([]webrtc.RTCPFeedback, 0, len(fbs))

	for _, fb := range fbs {
		feedback = append(feedback, webrtc.RTCPFeedback{Type: fb.Type, Parameter: fb.Parameter})
	}

	return feedback
}
