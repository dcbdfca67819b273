package mediasoupclient

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/jiyeyuran/mediasoup-client-go/h264"
)

type DeviceTestingSuite struct {
	suite.Suite
	device *Device
}

func (suite *DeviceTestingSuite) SetupTest() {
	suite.device = NewDevice(
		WithLocalRtpCapabilities(generateRouterRtpCapabilities()),
		WithCname("test-cname"),
		WithLogger(logr.Discard()),
	)
}

func (suite *DeviceTestingSuite) TestNotLoaded() {
	var stateErr *InvalidStateError

	suite.False(suite.device.Loaded())

	_, err := suite.device.RtpCapabilities()
	suite.ErrorAs(err, &stateErr)

	_, err = suite.device.CanProduce(MediaKindAudio)
	suite.ErrorAs(err, &stateErr)

	_, err = suite.device.CanConsume(RtpParameters{})
	suite.ErrorAs(err, &stateErr)

	_, err = suite.device.SendingRtpParameters(MediaKindAudio, nil)
	suite.ErrorAs(err, &stateErr)

	_, err = suite.device.SendingRemoteRtpParameters(MediaKindAudio)
	suite.ErrorAs(err, &stateErr)

	_, err = suite.device.ExtendedRtpCapabilities()
	suite.ErrorAs(err, &stateErr)
}

func (suite *DeviceTestingSuite) TestLoad() {
	suite.Require().NoError(suite.device.Load(generateRouterRtpCapabilities()))
	suite.True(suite.device.Loaded())

	var stateErr *InvalidStateError
	suite.ErrorAs(suite.device.Load(generateRouterRtpCapabilities()), &stateErr)

	caps, err := suite.device.RtpCapabilities()
	suite.Require().NoError(err)
	suite.Equal([]string{"audio/opus", "video/VP8", "video/rtx", "video/H264", "video/rtx"}, mimeTypesOf(caps.Codecs))

	// Returned copies are not shared.
	caps.Codecs[0].MimeType = "audio/foo"
	caps, _ = suite.device.RtpCapabilities()
	suite.Equal("audio/opus", caps.Codecs[0].MimeType)

	extended, err := suite.device.ExtendedRtpCapabilities()
	suite.Require().NoError(err)
	suite.Len(extended.Codecs, 3)

	canProduce, err := suite.device.CanProduce(MediaKindVideo)
	suite.NoError(err)
	suite.True(canProduce)

	canConsume, err := suite.device.CanConsume(RtpParameters{
		Codecs: []*RtpCodecParameters{{MimeType: "audio/opus", PayloadType: 100, ClockRate: 48000, Channels: 2}},
	})
	suite.NoError(err)
	suite.True(canConsume)
}

func (suite *DeviceTestingSuite) TestLoadFailure() {
	caps := generateRouterRtpCapabilities()
	caps.Codecs[0].ClockRate = 0

	var capErr *InvalidCapabilityError
	suite.ErrorAs(suite.device.Load(caps), &capErr)
	suite.False(suite.device.Loaded())

	suite.NoError(suite.device.Load(generateRouterRtpCapabilities()))
}

func (suite *DeviceTestingSuite) TestLoadLogsH264Answer() {
	var lines []string

	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	remoteCaps := generateRouterRtpCapabilities()
	remoteCaps.Codecs[3].Parameters.ProfileLevelId = "42e00b"
	remoteCaps.Codecs[3].Parameters.LevelAsymmetryAllowed = 0

	device := NewDevice(WithLocalRtpCapabilities(generateRouterRtpCapabilities()), WithLogger(logger))
	suite.Require().NoError(device.Load(remoteCaps))

	extended, err := device.ExtendedRtpCapabilities()
	suite.Require().NoError(err)
	suite.Equal("42e00b", extended.Codecs[2].Parameters.ProfileLevelId)

	suite.Contains(strings.Join(lines, "\n"), "h264 profile-level-id changed by answer")

	suite.False(h264AnswerChanged(generateRouterRtpCapabilities().Codecs[3], &ExtendedCodec{
		Parameters: RtpCodecSpecificParameters{RtpParameter: h264.RtpParameter{ProfileLevelId: "42e01f"}},
	}))
	suite.False(h264AnswerChanged(generateRouterRtpCapabilities().Codecs[1], extended.Codecs[1]))
	suite.True(h264AnswerChanged(generateRouterRtpCapabilities().Codecs[3], extended.Codecs[2]))
}

func (suite *DeviceTestingSuite) TestLoadNative() {
	device := NewDevice(WithEngineVersion("80"), WithLogger(logr.Discard()))

	suite.Require().NoError(device.Load(generateRouterRtpCapabilities()))

	extended, err := device.ExtendedRtpCapabilities()
	suite.Require().NoError(err)
	suite.Len(extended.Codecs, 3)
	suite.EqualValues(111, extended.Codecs[0].LocalPayloadType)
	suite.EqualValues(100, extended.Codecs[0].RemotePayloadType)

	device = NewDevice(WithEngineVersion("not-a-version"), WithLogger(logr.Discard()))

	var capErr *InvalidCapabilityError
	suite.ErrorAs(device.Load(generateRouterRtpCapabilities()), &capErr)
}

func (suite *DeviceTestingSuite) TestSendingRtpParameters() {
	suite.Require().NoError(suite.device.Load(generateRouterRtpCapabilities()))

	params, err := suite.device.SendingRtpParameters(MediaKindVideo, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"video/VP8", "video/rtx"}, parameterMimeTypesOf(params.Codecs))
	suite.Equal("test-cname", params.Rtcp.Cname)
	suite.Len(params.Encodings, 1)

	params, err = suite.device.SendingRtpParameters(MediaKindVideo, &SendOptions{
		Codec: &RtpCodecCapability{MimeType: "video/H264", ClockRate: 90000, Parameters: RtpCodecSpecificParameters{
			RtpParameter: h264.RtpParameter{PacketizationMode: 1, ProfileLevelId: "42e01f"},
		}},
		CodecOptions: &ProducerCodecOptions{VideoGoogleStartBitrate: 1000},
		Encodings: []RtpEncodingParameters{
			{Rid: "r0", ScalabilityMode: "L1T3", MaxBitrate: 100000},
			{Rid: "r1", ScalabilityMode: "L1T3", MaxBitrate: 300000},
		},
	})
	suite.Require().NoError(err)
	suite.Equal([]string{"video/H264", "video/rtx"}, parameterMimeTypesOf(params.Codecs))
	suite.EqualValues(1000, params.Codecs[0].Parameters.XGoogleStartBitrate)
	suite.Len(params.Encodings, 2)

	var unsupportedErr *UnsupportedError

	_, err = suite.device.SendingRtpParameters(MediaKindVideo, &SendOptions{
		Codec: &RtpCodecCapability{MimeType: "video/VP9", ClockRate: 90000},
	})
	suite.ErrorAs(err, &unsupportedErr)

	_, err = suite.device.SendingRtpParameters(MediaKindAudio, &SendOptions{
		Codec: &RtpCodecCapability{Kind: MediaKindVideo, MimeType: "video/VP8", ClockRate: 90000},
	})
	suite.ErrorAs(err, &unsupportedErr)

	var capErr *InvalidCapabilityError

	_, err = suite.device.SendingRtpParameters(MediaKindVideo, &SendOptions{
		Encodings: []RtpEncodingParameters{{ScalabilityMode: "L3T3"}, {ScalabilityMode: "L1T3"}},
	})
	suite.ErrorAs(err, &capErr)

	_, err = suite.device.SendingRtpParameters(MediaKindVideo, &SendOptions{
		Encodings: []RtpEncodingParameters{{ScaleResolutionDownBy: 0.5}},
	})
	suite.ErrorAs(err, &capErr)
}

func (suite *DeviceTestingSuite) TestSendingRemoteRtpParameters() {
	suite.Require().NoError(suite.device.Load(generateRouterRtpCapabilities()))

	params, err := suite.device.SendingRemoteRtpParameters(MediaKindVideo)
	suite.Require().NoError(err)
	suite.Len(params.Codecs, 4)
	suite.Equal("test-cname", params.Rtcp.Cname)
}

func (suite *DeviceTestingSuite) TestConcurrentReaders() {
	suite.Require().NoError(suite.device.Load(generateRouterRtpCapabilities()))

	var g errgroup.Group

	for i := 0; i < 16; i++ {
		kind := MediaKindAudio
		if i%2 == 1 {
			kind = MediaKindVideo
		}
		g.Go(func() error {
			if _, err := suite.device.SendingRtpParameters(kind, nil); err != nil {
				return err
			}
			if _, err := suite.device.RtpCapabilities(); err != nil {
				return err
			}
			_, err := suite.device.CanProduce(kind)
			return err
		})
	}

	suite.NoError(g.Wait())
}

func TestNewDevice(t *testing.T) {
	t.Setenv("MEDIASOUP_CLIENT_ENGINE_VERSION", "")

	device := NewDevice()

	if device.options.EngineVersion != EngineVersionLatest {
		t.Fatalf("engine version = %q, want %q", device.options.EngineVersion, EngineVersionLatest)
	}
	if len(device.cname) != 8 {
		t.Fatalf("cname = %q, want 8 characters", device.cname)
	}
}

func TestDeviceTestingSuite(t *testing.T) {
	suite.Run(t, new(DeviceTestingSuite))
}
