package mediasoupclient

import (
	"encoding/json"
	"reflect"

	"github.com/imdario/mergo"
)

type ptrTransformers struct{}

// overwrites pointer type
func (ptrTransformers) Transformer(tp reflect.Type) func(dst, src reflect.Value) error {
	if tp.Kind() == reflect.Ptr {
		return func(dst, src reflect.Value) error {
			if !src.IsNil() && dst.CanSet() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

// clone deep copies from into to through their JSON representation.
func clone(from, to interface{}) error {
	data, err := json.Marshal(from)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, to)
}

// override merges the non-empty fields of src into dst.
func override(dst, src interface{}) error {
	return mergo.Merge(dst, src,
		mergo.WithOverride,
		mergo.WithTypeCheck,
		mergo.WithTransformers(ptrTransformers{}),
	)
}

func Bool(b bool) *bool {
	return &b
}

func Uint8(v uint8) *uint8 {
	return &v
}

func (p RtpCodecSpecificParameters) clone() RtpCodecSpecificParameters {
	if p.ProfileId != nil {
		p.ProfileId = Uint8(*p.ProfileId)
	}
	return p
}

func cloneRtcpFeedback(fbs []RtcpFeedback) []RtcpFeedback {
	return append([]RtcpFeedback{}, fbs...)
}

func filterRtcpFeedback(fbs []RtcpFeedback, keep func(RtcpFeedback) bool) []RtcpFeedback {
	filtered := []RtcpFeedback{}

	for _, fb := range fbs {
		if keep(fb) {
			filtered = append(filtered, fb)
		}
	}

	return filtered
}

// unionRtcpFeedback returns a followed by the entries of b missing from a.
func unionRtcpFeedback(a, b []RtcpFeedback) []RtcpFeedback {
	union := cloneRtcpFeedback(a)

	for _, fb := range b {
		found := false
		for _, existing := range union {
			if existing == fb {
				found = true
				break
			}
		}
		if !found {
			union = append(union, fb)
		}
	}

	return union
}
