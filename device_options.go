package mediasoupclient

import (
	"os"

	"github.com/go-logr/logr"
)

// DeviceOptions configure a Device.
type DeviceOptions struct {
	// EngineVersion selects the native capability table, see
	// GetNativeRtpCapabilities. Default "latest".
	EngineVersion string `json:"engineVersion,omitempty"`

	// LocalRtpCapabilities replaces the native capability table when set.
	LocalRtpCapabilities *RtpCapabilities `json:"localRtpCapabilities,omitempty"`

	// Cname is the RTCP CNAME of the sending parameters. A random one is
	// generated if empty.
	Cname string `json:"cname,omitempty"`

	Logger logr.Logger `json:"-"`
}

func NewDeviceOptions() *DeviceOptions {
	engineVersion := os.Getenv("MEDIASOUP_CLIENT_ENGINE_VERSION")

	if len(engineVersion) == 0 {
		engineVersion = EngineVersionLatest
	}

	return &DeviceOptions{
		EngineVersion: engineVersion,
		Logger:        NewLogger("Device"),
	}
}

type Option func(o *DeviceOptions)

func WithEngineVersion(engineVersion string) Option {
	return func(o *DeviceOptions) {
		o.EngineVersion = engineVersion
	}
}

func WithLocalRtpCapabilities(caps RtpCapabilities) Option {
	return func(o *DeviceOptions) {
		o.LocalRtpCapabilities = &caps
	}
}

func WithCname(cname string) Option {
	return func(o *DeviceOptions) {
		o.Cname = cname
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(o *DeviceOptions) {
		o.Logger = logger
	}
}
