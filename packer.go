package lzwbomb

import (
	"fmt"
	"io"

	"github.com/segmentio/lzwbomb/internal/bitstream"
)

// PaddingPolicy selects how a packed stream is terminated at its byte
// boundary.
type PaddingPolicy int32

const (
	// PadReference reproduces the reference generator: the stream receives
	// 8 - (len % 8) zero bits, which appends a whole zero byte when the
	// stream is already byte aligned. Byte-exact fixture reproduction
	// requires this policy.
	PadReference PaddingPolicy = iota

	// PadAligned appends (8 - len%8) % 8 zero bits: a partial trailing byte
	// is completed, an aligned stream is left untouched.
	PadAligned
)

func (p PaddingPolicy) String() string {
	switch p {
	case PadReference:
		return "PAD_REFERENCE"
	case PadAligned:
		return "PAD_ALIGNED"
	default:
		return "PaddingPolicy(?)"
	}
}

// LookupPaddingPolicy returns the policy named by s, accepting the exact
// strings produced by String. It is used to decode manifests and CLI flags.
func LookupPaddingPolicy(s string) (PaddingPolicy, error) {
	for _, p := range []PaddingPolicy{PadReference, PadAligned} {
		if p.String() == s {
			return p, nil
		}
	}
	return PadReference, fmt.Errorf("unknown padding policy: %q", s)
}

// OverflowMode selects how the packer represents a code whose magnitude
// exceeds its segment's declared width.
type OverflowMode int32

const (
	// OverflowNatural emits the code's full binary representation when it is
	// longer than the declared width, silently widening the stream. This is
	// what the reference generator's number formatting does, and the default.
	OverflowNatural OverflowMode = iota

	// OverflowTruncate keeps exactly the low Width bits of every code.
	OverflowTruncate

	// OverflowStrict fails with ErrCodeWidthOverflow instead of encoding an
	// out-of-range code.
	OverflowStrict
)

func (m OverflowMode) String() string {
	switch m {
	case OverflowNatural:
		return "OVERFLOW_NATURAL"
	case OverflowTruncate:
		return "OVERFLOW_TRUNCATE"
	case OverflowStrict:
		return "OVERFLOW_STRICT"
	default:
		return "OverflowMode(?)"
	}
}

// LookupOverflowMode returns the mode named by s, accepting the exact strings
// produced by String.
func LookupOverflowMode(s string) (OverflowMode, error) {
	for _, m := range []OverflowMode{OverflowNatural, OverflowTruncate, OverflowStrict} {
		if m.String() == s {
			return m, nil
		}
	}
	return OverflowNatural, fmt.Errorf("unknown overflow mode: %q", s)
}

// Packer assembles segments into a packed byte buffer.
//
// The zero value packs with reference semantics: PadReference and
// OverflowNatural, which produce the reference fixture streams bit for bit.
// Pack is deterministic; a Packer may be reused but must not be shared
// between goroutines.
type Packer struct {
	Padding  PaddingPolicy
	Overflow OverflowMode

	writer bitstream.Writer
}

// Pack appends the packed representation of segments to dst and returns the
// resulting buffer. dst may be nil; when its capacity is too small a new
// buffer is allocated.
func (p *Packer) Pack(dst []byte, segments []Segment) ([]byte, error) {
	size := uint(0)
	for _, s := range segments {
		size += s.BitLen(p.Overflow)
	}
	if n := int(size+15) / 8; cap(dst) < n {
		dst = make([]byte, 0, n)
	}

	w := &p.writer
	w.Reset(dst[:0])

	for i, s := range segments {
		if err := s.appendBits(w, p.Overflow, i); err != nil {
			return w.Bytes(), err
		}
	}

	if p.Padding == PadReference && w.Len()%8 == 0 {
		w.WriteBits(0, 8)
	}
	w.Flush()
	return w.Bytes(), nil
}

// A WidthRun tells Unpack how many codes of a given width to read back from
// a packed buffer.
type WidthRun struct {
	Width uint
	Count int
}

// Unpack reads fixed width codes back out of a packed buffer with a
// conforming most-significant-bit-first reader, following the given width
// sequence. It is the verification half of Pack: for in-range codes packed
// under PadAligned or PadReference, unpacking with the matching runs returns
// the original code sequence.
//
// Unpack performs no dictionary work; it is a bit reader, not an LZW
// decoder.
func Unpack(data []byte, runs []WidthRun) ([]uint32, error) {
	size := 0
	for _, run := range runs {
		if run.Count > 0 {
			size += run.Count
		}
	}
	codes := make([]uint32, 0, size)

	r := new(bitstream.Reader)
	r.Reset(data)

	for i, run := range runs {
		if run.Count <= 0 {
			continue
		}
		if run.Width == 0 || run.Width > 32 {
			return codes, errInvalidCodeWidth(i, run.Width)
		}
		for j := 0; j < run.Count; j++ {
			v, err := r.ReadBits(run.Width)
			if err == io.EOF {
				return codes, fmt.Errorf("run %d: code %d of %d truncated after %d codes: %w",
					i, j, run.Count, len(codes), io.ErrUnexpectedEOF)
			}
			if err != nil {
				return codes, err
			}
			codes = append(codes, uint32(v))
		}
	}
	return codes, nil
}
