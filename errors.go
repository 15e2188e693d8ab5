package lzwbomb

import (
	"errors"
	"fmt"
)

var (
	// ErrCodeWidthOverflow is an error returned in strict mode when a code's
	// magnitude does not fit the declared width of its segment.
	//
	// This error is wrapped with the position and value of the offending
	// code, applications must use errors.Is rather than equality comparisons
	// to test the error values returned by the packer.
	ErrCodeWidthOverflow = errors.New("code does not fit the declared width")

	// ErrInvalidBitWidth is an error returned when a segment declares a bit
	// width the packer cannot represent: zero, more than 32 bits for code
	// segments, or more than 64 bits for repeated patterns.
	//
	// As with ErrCodeWidthOverflow, this error may be wrapped with specific
	// information about the problem and applications are expected to use
	// errors.Is for comparisons.
	ErrInvalidBitWidth = errors.New("invalid bit width")

	// ErrUnsupportedCodec is an error returned when looking up a compression
	// codec code which has no registered envelope implementation.
	ErrUnsupportedCodec = errors.New("unsupported compression codec")
)

func errCodeWidthOverflow(segment, index int, code uint32, width uint) error {
	return fmt.Errorf("segment %d: code %d of value %d exceeds %d bits: %w",
		segment, index, code, width, ErrCodeWidthOverflow)
}

func errInvalidCodeWidth(segment int, width uint) error {
	return fmt.Errorf("segment %d: code width must be in range [1,32] but is %d: %w",
		segment, width, ErrInvalidBitWidth)
}

func errInvalidPatternWidth(segment int, width uint) error {
	return fmt.Errorf("segment %d: pattern width must be in range [1,64] but is %d: %w",
		segment, width, ErrInvalidBitWidth)
}
