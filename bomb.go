package lzwbomb

// LimitFor1GiB sizes the flood segment of the reference bomb fixture: the
// 12 bits all-ones pattern is repeated LimitFor1GiB - 4096 times, inflating
// the stream toward the point where a decoder that grows its dictionary one
// entry per code has produced about 1 GiB of output.
const LimitFor1GiB = 277775

const (
	// Literal bytes occupy codes 0-255; 256 is the clear code of an LZW
	// stream with 8 bit literals, and the first multi-byte dictionary slots
	// start right above it.
	clearCode = 1 << 8

	maxWidth    = 12
	maxCode     = 1<<maxWidth - 1 // 4095
	floodedCode = maxCode         // 0xFFF, the 12 bits all-ones pattern
)

// Bomb returns the segments of the reference decompression bomb.
//
// The stream walks every code width from 9 to 12 bits through the full range
// of codes each width introduces, so a decoder that grows its dictionary in
// lockstep keeps defining the entry the next code refers to. One low value,
// 0xFF, is spliced into the second slot of the 9 bits region: a single byte
// masquerading among codes that are otherwise all above 255. The final
// segment repeats the all-ones 12 bits pattern until the expanded output
// approaches 1 GiB.
func Bomb() []Segment {
	return BombSized(LimitFor1GiB)
}

// BombSized is Bomb with the flood repetition count derived from limit
// instead of LimitFor1GiB, for producing smaller streams with the same
// shape. The flood repeats limit - 4096 times; limits of 4096 or less
// produce no flood at all.
func BombSized(limit int) []Segment {
	ladder := codeLadder()
	ladder[0].(*CodeSegment).Codes[1] = 0xFF
	return append(ladder, &RepeatSegment{
		Bits:  floodedCode,
		Width: maxWidth,
		Count: limit - (maxCode + 1),
	})
}

// WidthLadder returns the well-formed counterpart of the bomb: every code
// width transition from 9 to 12 bits over each width's full natural range,
// with no injected value and no flood. Useful for differential testing of a
// decoder's width switching against a stream that stays in range.
func WidthLadder() []Segment {
	return codeLadder()
}

// EarlyEOD returns a stream that ends in the middle of a code: two full
// codes at the given width followed by a nonzero partial code one bit short
// of a third. Decoders must report an unexpected end of data rather than
// read past the buffer or silently succeed.
func EarlyEOD(width uint) []Segment {
	return []Segment{
		&CodeSegment{Width: width, Codes: []uint32{clearCode, clearCode + 2}},
		&RepeatSegment{Bits: 1, Width: width - 1, Count: 1},
	}
}

// AllClear returns the 9 bits clear code repeated count times, probing
// decoders that reset their dictionary on every code.
func AllClear(count int) []Segment {
	return []Segment{
		&RepeatSegment{Bits: clearCode, Width: 9, Count: count},
	}
}

// codeLadder builds the four in-range segments covering widths 9 to 12:
// width w carries codes 1<<(w-1) to (1<<w)-1, the range a growing dictionary
// assigns while that width is active.
func codeLadder() []Segment {
	segments := make([]Segment, 0, 4)
	for width := uint(9); width <= maxWidth; width++ {
		segments = append(segments, codeRange(width, 1<<(width-1), 1<<width-1))
	}
	return segments
}

// codeRange returns a segment holding every code from lo to hi inclusive.
func codeRange(width uint, lo, hi uint32) *CodeSegment {
	codes := make([]uint32, 0, hi-lo+1)
	for code := lo; code <= hi; code++ {
		codes = append(codes, code)
	}
	return &CodeSegment{Width: width, Codes: codes}
}
