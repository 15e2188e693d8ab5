// Package bitstream implements the bit-level buffers used to assemble and
// inspect variable-width codestreams.
//
// Bits are ordered most significant first: the first bit written becomes the
// highest bit of the first output byte, which is the order LZW-style decoders
// consume their input in.
//
//	byte  0               1
//	     +---------------+---------------+
//	     |7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0| ...
//	     +---------------+---------------+
//	bit   0 1 2 3 4 5 6 7 8 9 ...
package bitstream

import (
	"io"
	"math/bits"
)

// writeChunk is the largest number of bits pushed into the accumulator in one
// step; it keeps nbits+writeChunk well below 64 so shifts never overflow.
const writeChunk = 32

// Writer is an append-only bit buffer. The zero value is ready to use; Reset
// lets callers recycle an existing backing buffer.
type Writer struct {
	data  []byte
	acc   uint64 // low nbits hold pending bits in stream order, upper bits zero
	nbits uint   // 0 <= nbits < 8 between calls
}

// Reset discards buffered bits and arranges for output to be appended to buf.
func (w *Writer) Reset(buf []byte) {
	w.data = buf[:0]
	w.acc = 0
	w.nbits = 0
}

// Len returns the number of bits written since the last reset.
func (w *Writer) Len() uint {
	return 8*uint(len(w.data)) + w.nbits
}

// WriteBits appends the width low bits of value, most significant first.
// Bits of value above width are ignored. Width must be at most 64.
func (w *Writer) WriteBits(value uint64, width uint) {
	if width > 64 {
		panic("bitstream: write wider than 64 bits")
	}
	if width < 64 {
		value &= (uint64(1) << width) - 1
	}
	for width > writeChunk {
		width -= writeChunk
		w.push(value>>width, writeChunk)
	}
	w.push(value, width)
}

// push appends at most writeChunk bits; bits of value above width are masked
// off so they cannot bleed into the accumulator.
func (w *Writer) push(value uint64, width uint) {
	w.acc = w.acc<<width | value&(uint64(1)<<width-1)
	w.nbits += width
	for w.nbits >= 8 {
		w.nbits -= 8
		w.data = append(w.data, byte(w.acc>>w.nbits))
	}
	w.acc &= (uint64(1) << w.nbits) - 1
}

// WriteCode appends value using width bits, or the value's own bit length
// when it does not fit. The widened code shifts everything written after it,
// which is the silent-overflow shape adversarial streams rely on; callers
// that want hard failures instead must range-check before writing.
func (w *Writer) WriteCode(value uint64, width uint) {
	if n := uint(bits.Len64(value)); n > width {
		width = n
	}
	w.WriteBits(value, width)
}

// WriteBitsRepeat appends count copies of the width-bits pattern held in the
// low bits of value.
//
// Repeating a pattern makes the stream periodic once it hits a byte boundary,
// so after an alignment phase the remaining copies are appended as whole
// precomputed blocks instead of one code at a time. The reference stream
// repeats a 12 bits pattern a few hundred thousand times; appending it
// bit by bit is the difference between microseconds and seconds.
func (w *Writer) WriteBitsRepeat(value uint64, width, count uint) {
	if width > 64 {
		panic("bitstream: write wider than 64 bits")
	}
	if width == 0 || count == 0 {
		return
	}
	for count > 0 && w.nbits != 0 {
		w.WriteBits(value, width)
		count--
	}
	if count == 0 {
		return
	}

	// lcm(width, 8) bits form one period of the aligned repetition.
	g := gcd8(width)
	codesPerBlock := 8 / g
	if blocks := count / codesPerBlock; blocks > 0 {
		var bw Writer
		bw.Reset(make([]byte, 0, width/g))
		for i := uint(0); i < codesPerBlock; i++ {
			bw.WriteBits(value, width)
		}
		for ; blocks > 0; blocks-- {
			w.data = append(w.data, bw.data...)
		}
		count %= codesPerBlock
	}
	for ; count > 0; count-- {
		w.WriteBits(value, width)
	}
}

// Flush zero-pads the stream to the next byte boundary. It is a no-op when
// the stream is already aligned.
func (w *Writer) Flush() {
	if w.nbits != 0 {
		w.data = append(w.data, byte(w.acc<<(8-w.nbits)))
		w.acc = 0
		w.nbits = 0
	}
}

// Bytes returns the packed buffer. The caller must Flush first if the stream
// may end off a byte boundary; pending bits are not included.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Reader consumes fixed-width codes from a packed buffer, most significant
// bit first, mirroring Writer's output order.
type Reader struct {
	data []byte
	off  uint // absolute bit offset of the next unread bit
}

// Reset makes the reader consume data from its first bit.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.off = 0
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() uint {
	return 8*uint(len(r.data)) - r.off
}

// ReadBits reads the next width bits and returns them right-aligned. It
// returns io.EOF without consuming anything when fewer than width bits
// remain; a partial trailing code is left unread for the caller to inspect
// through Remaining.
func (r *Reader) ReadBits(width uint) (uint64, error) {
	if width > 64 {
		panic("bitstream: read wider than 64 bits")
	}
	if r.Remaining() < width {
		return 0, io.EOF
	}
	value := uint64(0)
	for n := width; n > 0; {
		i, j := r.off/8, r.off%8
		c := 8 - j
		if c > n {
			c = n
		}
		value = value<<c | uint64(r.data[i]>>(8-j-c))&(uint64(1)<<c-1)
		r.off += c
		n -= c
	}
	return value, nil
}

func gcd8(width uint) uint {
	a, b := width, uint(8)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
