package mediasoupclient

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

// SendOptions customize the RTP parameters returned by
// Device.SendingRtpParameters.
type SendOptions struct {
	// Encodings of the stream, validated against their scalability modes.
	Encodings []RtpEncodingParameters `json:"encodings,omitempty"`

	// CodecOptions are merged into the selected codec parameters.
	CodecOptions *ProducerCodecOptions `json:"codecOptions,omitempty"`

	// Codec selects the codec to send instead of the first negotiated one.
	Codec *RtpCodecCapability `json:"codec,omitempty"`
}

// Device holds the negotiation between the local media engine and one remote
// router. It must be loaded with the router capabilities before use, after
// which it is safe for concurrent use.
type Device struct {
	logger   logr.Logger
	options  *DeviceOptions
	mu       sync.RWMutex
	loaded   bool
	cname    string
	extended ExtendedRtpCapabilities
	recvCaps RtpCapabilities
}

// NewDevice creates an unloaded Device.
func NewDevice(options ...Option) *Device {
	opts := NewDeviceOptions()

	for _, o := range options {
		o(opts)
	}

	cname := opts.Cname
	if len(cname) == 0 {
		cname = uuid.NewString()[:8]
	}

	return &Device{
		logger:  opts.Logger,
		options: opts,
		cname:   cname,
	}
}

// Load negotiates the local capabilities with the given router ones. A
// Device may only be loaded once.
func (d *Device) Load(routerRtpCapabilities RtpCapabilities) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return NewInvalidStateError("already loaded")
	}

	var (
		localCaps RtpCapabilities
		err       error
	)
	if d.options.LocalRtpCapabilities != nil {
		localCaps = *d.options.LocalRtpCapabilities
	} else if localCaps, err = GetNativeRtpCapabilities(d.options.EngineVersion); err != nil {
		return err
	}

	extended, err := GetExtendedRtpCapabilities(localCaps, routerRtpCapabilities)
	if err != nil {
		d.logger.Error(err, "load() failed")
		return err
	}

	if d.logger.V(1).Enabled() {
		for _, codec := range localCaps.Codecs {
			if isRtxMimeType(codec.MimeType) {
				continue
			}
			extendedCodec := findLocalCodec(extended, codec)
			if extendedCodec == nil {
				d.logger.V(1).Info("local codec not supported by router", "mimeType", codec.MimeType, "payloadType", codec.PayloadType)
				continue
			}
			if h264AnswerChanged(codec, extendedCodec) {
				d.logger.V(1).Info("h264 profile-level-id changed by answer", "payloadType", extendedCodec.LocalPayloadType,
					"local", codec.Parameters.ProfileLevelId, "answer", extendedCodec.Parameters.ProfileLevelId)
			}
		}
	}

	d.extended = extended
	d.recvCaps = GetRecvRtpCapabilities(extended)
	d.loaded = true

	d.logger.V(1).Info("load() succeeded", "codecs", len(extended.Codecs), "headerExtensions", len(extended.HeaderExtensions))

	return nil
}

func findLocalCodec(extended ExtendedRtpCapabilities, codec *RtpCodecCapability) *ExtendedCodec {
	for _, extendedCodec := range extended.Codecs {
		if codec.PayloadType != nil && extendedCodec.LocalPayloadType == *codec.PayloadType {
			return extendedCodec
		}
	}
	return nil
}

// h264AnswerChanged reports whether the answer moved an H264 codec to another
// profile or level than the local one.
func h264AnswerChanged(codec *RtpCodecCapability, extendedCodec *ExtendedCodec) bool {
	if mimeType, _ := ParseMimeType(codec.MimeType); mimeType.Family() != CodecFamilyH264 {
		return false
	}
	return !h264.IsSameProfileAndLevel(codec.Parameters.ProfileLevelId, extendedCodec.Parameters.ProfileLevelId)
}

// Loaded reports whether Load succeeded.
func (d *Device) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.loaded
}

// RtpCapabilities returns what the device can receive, to be sent to the
// router when consuming.
func (d *Device) RtpCapabilities() (caps RtpCapabilities, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return caps, NewInvalidStateError("not loaded")
	}
	err = clone(d.recvCaps, &caps)

	return
}

// ExtendedRtpCapabilities returns a copy of the negotiated capabilities.
func (d *Device) ExtendedRtpCapabilities() (extended ExtendedRtpCapabilities, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return extended, NewInvalidStateError("not loaded")
	}
	err = clone(d.extended, &extended)

	return
}

// CanProduce reports whether media of the given kind can be sent.
func (d *Device) CanProduce(kind MediaKind) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return false, NewInvalidStateError("not loaded")
	}
	return CanSend(kind, d.extended)
}

// CanConsume reports whether a stream with the given parameters can be
// received.
func (d *Device) CanConsume(params RtpParameters) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return false, NewInvalidStateError("not loaded")
	}
	return CanReceive(params, d.extended)
}

// SendingRtpParameters returns the parameters to send media of the given
// kind with.
func (d *Device) SendingRtpParameters(kind MediaKind, options *SendOptions) (params RtpParameters, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return params, NewInvalidStateError("not loaded")
	}
	if options == nil {
		options = &SendOptions{}
	}
	if err = validateEncodings(options.Encodings); err != nil {
		return
	}

	extended := d.extended

	if options.Codec != nil {
		if options.Codec.Kind != kind && len(options.Codec.Kind) > 0 {
			return params, NewUnsupportedError("codec kind %q does not match %q", options.Codec.Kind, kind)
		}
		extended = extended.Filter(func(codec *ExtendedCodec) bool {
			return codec.Kind != kind || MatchCodecs(&RtpCodecCapability{
				Kind:        codec.Kind,
				MimeType:    codec.MimeType,
				PayloadType: Uint8(codec.LocalPayloadType),
				ClockRate:   codec.ClockRate,
				Channels:    codec.Channels,
				Parameters:  codec.Parameters,
			}, options.Codec)
		})
		if len(extended.codecsOfKind(kind)) == 0 {
			return params, NewUnsupportedError("no matching codec found [mimeType:%s]", options.Codec.MimeType)
		}
	}

	if params, err = GetSendingRtpParameters(kind, extended); err != nil {
		return
	}
	if err = applyCodecOptions(&params, options.CodecOptions); err != nil {
		return
	}
	if len(options.Encodings) > 0 {
		params.Encodings = append([]RtpEncodingParameters{}, options.Encodings...)
	} else {
		params.Encodings = []RtpEncodingParameters{{}}
	}
	params.Rtcp.Cname = d.cname

	return
}

// SendingRemoteRtpParameters returns the parameters the router should use
// to receive media of the given kind sent by this device.
func (d *Device) SendingRemoteRtpParameters(kind MediaKind) (params RtpParameters, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return params, NewInvalidStateError("not loaded")
	}
	if params, err = GetSendingRemoteRtpParameters(kind, d.extended); err != nil {
		return
	}
	params.Rtcp.Cname = d.cname

	return
}
