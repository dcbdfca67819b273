package mediasoupclient

import (
	"fmt"
)

// InvalidCapabilityError is returned when a codec, header extension or
// parameter entry is missing a required field or has an out-of-range value.
type InvalidCapabilityError struct {
	message string
}

func NewInvalidCapabilityError(format string, args ...interface{}) error {
	return &InvalidCapabilityError{message: fmt.Sprintf(format, args...)}
}

func (e *InvalidCapabilityError) Error() string {
	return "InvalidCapabilityError: " + e.message
}

// UnsupportedKindError is returned when a media kind other than audio or
// video is given.
type UnsupportedKindError struct {
	Kind MediaKind
}

func NewUnsupportedKindError(kind MediaKind) error {
	return &UnsupportedKindError{Kind: kind}
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("UnsupportedKindError: invalid kind %q", e.Kind)
}

// NoCodecForKindError is returned when no negotiated codec exists for the
// requested media kind.
type NoCodecForKindError struct {
	Kind MediaKind
}

func NewNoCodecForKindError(kind MediaKind) error {
	return &NoCodecForKindError{Kind: kind}
}

func (e *NoCodecForKindError) Error() string {
	return fmt.Sprintf("NoCodecForKindError: no codec for kind %q", e.Kind)
}

// UnsupportedError indicating not support for something.
type UnsupportedError struct {
	message string
}

func NewUnsupportedError(format string, args ...interface{}) error {
	return &UnsupportedError{message: fmt.Sprintf(format, args...)}
}

func (e *UnsupportedError) Error() string {
	return "UnsupportedError: " + e.message
}

// InvalidStateError produced when calling a method in an invalid state.
type InvalidStateError struct {
	message string
}

func NewInvalidStateError(format string, args ...interface{}) error {
	return &InvalidStateError{message: fmt.Sprintf(format, args...)}
}

func (e *InvalidStateError) Error() string {
	return "InvalidStateError: " + e.message
}
