package lzwbomb

import (
	"math/bits"

	"github.com/segmentio/lzwbomb/internal/bitstream"
)

// Segment is one contiguous region of a codestream. Segments are appended to
// the stream in order, each one contributing its codes' bits back to back
// with no marker or alignment between segments.
//
// The interface is sealed; the two implementations are CodeSegment and
// RepeatSegment.
type Segment interface {
	// BitLen returns the number of bits the segment contributes to the
	// stream under the given overflow mode.
	BitLen(mode OverflowMode) uint

	appendBits(w *bitstream.Writer, mode OverflowMode, index int) error
}

// CodeSegment is a run of integer codes sharing one declared bit width.
//
// Codes are emitted most significant bit first, zero-extended on the left to
// Width bits. A code too large for Width is the adversarial case: how it is
// represented depends on the packer's overflow mode.
type CodeSegment struct {
	// Number of bits each code is declared to occupy, in range [1,32].
	Width uint
	// The codes, in stream order.
	Codes []uint32
}

func (s *CodeSegment) BitLen(mode OverflowMode) uint {
	if mode == OverflowNatural {
		n := uint(0)
		for _, code := range s.Codes {
			n += naturalWidth(code, s.Width)
		}
		return n
	}
	return s.Width * uint(len(s.Codes))
}

func (s *CodeSegment) appendBits(w *bitstream.Writer, mode OverflowMode, index int) error {
	if len(s.Codes) == 0 {
		return nil
	}
	if s.Width == 0 || s.Width > 32 {
		return errInvalidCodeWidth(index, s.Width)
	}
	for i, code := range s.Codes {
		switch mode {
		case OverflowTruncate:
			w.WriteBits(uint64(code), s.Width)
		case OverflowStrict:
			if uint(bits.Len32(code)) > s.Width {
				return errCodeWidthOverflow(index, i, code, s.Width)
			}
			w.WriteBits(uint64(code), s.Width)
		default:
			w.WriteCode(uint64(code), s.Width)
		}
	}
	return nil
}

// naturalWidth is the number of bits the reference generator emits for a
// code: the declared width, or the code's own length when it is longer.
func naturalWidth(code uint32, width uint) uint {
	if n := uint(bits.Len32(code)); n > width {
		return n
	}
	return width
}

// RepeatSegment appends Count copies of a raw bit pattern. Unlike a
// CodeSegment it carries no numeric meaning: the low Width bits of Bits are
// emitted verbatim each time, and overflow modes do not apply.
type RepeatSegment struct {
	// The pattern, held in the low Width bits. Higher bits are ignored.
	Bits uint64
	// Number of bits per copy, in range [1,64].
	Width uint
	// Number of copies. Zero or negative counts contribute nothing.
	Count int
}

func (s *RepeatSegment) BitLen(OverflowMode) uint {
	if s.Count <= 0 {
		return 0
	}
	return s.Width * uint(s.Count)
}

func (s *RepeatSegment) appendBits(w *bitstream.Writer, _ OverflowMode, index int) error {
	if s.Count <= 0 {
		return nil
	}
	if s.Width == 0 || s.Width > 64 {
		return errInvalidPatternWidth(index, s.Width)
	}
	w.WriteBitsRepeat(s.Bits, s.Width, uint(s.Count))
	return nil
}
