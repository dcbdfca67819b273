package mediasoupclient

import (
	"regexp"
	"strconv"
)

var scalabilityModeRegex = regexp.MustCompile(`^[LS]([1-9]\d{0,1})T([1-9]\d{0,1})(_KEY)?`)

type ScalabilityMode struct {
	SpatialLayers  int  `json:"spatialLayers,omitempty"`
	TemporalLayers int  `json:"temporalLayers,omitempty"`
	Ksvc           bool `json:"ksvc,omitempty"`
}

// ParseScalabilityMode parses a webrtc-svc mode such as "L3T2_KEY". Only the
// leading mode is read, so "L1T3_KEY_SHIFT" is L1T3 with ksvc. Anything that
// does not parse is reported as a single spatial and temporal layer.
func ParseScalabilityMode(scalabilityMode string) ScalabilityMode {
	mode, ok := parseScalabilityMode(scalabilityMode)
	if !ok {
		return ScalabilityMode{SpatialLayers: 1, TemporalLayers: 1}
	}
	return mode
}

func parseScalabilityMode(scalabilityMode string) (ScalabilityMode, bool) {
	match := scalabilityModeRegex.FindStringSubmatch(scalabilityMode)
	if len(match) != 4 {
		return ScalabilityMode{}, false
	}
	spatialLayers, _ := strconv.Atoi(match[1])
	temporalLayers, _ := strconv.Atoi(match[2])

	return ScalabilityMode{
		SpatialLayers:  spatialLayers,
		TemporalLayers: temporalLayers,
		Ksvc:           len(match[3]) > 0,
	}, true
}

// validateEncodings checks the scalability modes of the given encodings.
// With simulcast each encoding must carry a single spatial layer.
func validateEncodings(encodings []RtpEncodingParameters) error {
	for i, encoding := range encodings {
		if len(encoding.ScalabilityMode) > 0 {
			mode, ok := parseScalabilityMode(encoding.ScalabilityMode)
			if !ok {
				return NewInvalidCapabilityError("invalid encodings[%d].scalabilityMode %q", i, encoding.ScalabilityMode)
			}
			if len(encodings) > 1 && mode.SpatialLayers > 1 {
				return NewInvalidCapabilityError("encodings[%d].scalabilityMode %q has %d spatial layers with simulcast",
					i, encoding.ScalabilityMode, mode.SpatialLayers)
			}
		}
		if encoding.ScaleResolutionDownBy != 0 && encoding.ScaleResolutionDownBy < 1 {
			return NewInvalidCapabilityError("invalid encodings[%d].scaleResolutionDownBy %v", i, encoding.ScaleResolutionDownBy)
		}
	}
	return nil
}
