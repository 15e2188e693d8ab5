package lzwbomb_test

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/segmentio/lzwbomb"
)

// Anchors pinning the reference bomb fixture byte for byte. The stream holds
// 3327412 bits, padded with 4 zero bits to 415927 bytes.
const (
	bombSize = 415927
	bombSHA1 = "e636f2d0f4385c3587aee861e87f8ca16f1ca8de"
)

func TestBomb(t *testing.T) {
	packer := new(lzwbomb.Packer)
	packed, err := packer.Pack(nil, lzwbomb.Bomb())
	if err != nil {
		t.Fatal(err)
	}

	if len(packed) != bombSize {
		t.Errorf("packed size = %d bytes, want %d", len(packed), bombSize)
	}
	if sum := sha1.Sum(packed); hex.EncodeToString(sum[:]) != bombSHA1 {
		t.Errorf("packed stream sha1 = %x, want %s", sum, bombSHA1)
	}

	prefix := []byte{
		0x80, 0x3F, 0xE0, 0x50, 0x38, 0x24, 0x16, 0x0D,
		0x07, 0x84, 0x42, 0x61, 0x50, 0xB8, 0x64, 0x36,
	}
	if !bytes.Equal(packed[:len(prefix)], prefix) {
		t.Errorf("stream prefix mismatch:\nwant = % x\ngot  = % x", prefix, packed[:len(prefix)])
	}
	suffix := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xF0}
	if tail := packed[len(packed)-len(suffix):]; !bytes.Equal(tail, suffix) {
		t.Errorf("stream suffix mismatch:\nwant = % x\ngot  = % x", suffix, tail)
	}

	// Rebuild the whole stream one bit at a time with a writer that shares no
	// code with the packer, and require an exact byte match.
	naive := new(bitAppender)
	for width := uint(9); width <= 12; width++ {
		for code := uint64(1) << (width - 1); code < 1<<width; code++ {
			if width == 9 && code == 257 {
				naive.write(0xFF, width)
			} else {
				naive.write(code, width)
			}
		}
	}
	for i := 0; i < lzwbomb.LimitFor1GiB-4096; i++ {
		naive.write(0xFFF, 12)
	}
	diffBytes(t, "bomb", naive.bytes(), packed)
}

func TestBombSegmentOffsets(t *testing.T) {
	want := []uint{0, 2304, 7424, 18688, 43264, 3327412}
	offsets := []uint{0}
	total := uint(0)
	for _, s := range lzwbomb.Bomb() {
		total += s.BitLen(lzwbomb.OverflowNatural)
		offsets = append(offsets, total)
	}
	if len(offsets) != len(want) {
		t.Fatalf("segment count = %d, want %d", len(offsets)-1, len(want)-1)
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("segment %d starts at bit %d, want %d", i, offsets[i], want[i])
		}
	}
}

func TestBombSized(t *testing.T) {
	packer := new(lzwbomb.Packer)

	// At the reference limit the sized constructor is the bomb.
	want, err := packer.Pack(nil, lzwbomb.Bomb())
	if err != nil {
		t.Fatal(err)
	}
	got, err := packer.Pack(nil, lzwbomb.BombSized(lzwbomb.LimitFor1GiB))
	if err != nil {
		t.Fatal(err)
	}
	diffBytes(t, "full limit", want, got)

	// Limits at or below the top of the 12 bit code space leave the ladder
	// with no flood at all.
	for _, limit := range []int{0, 1000, 4096} {
		segments := lzwbomb.BombSized(limit)
		total := uint(0)
		for _, s := range segments {
			total += s.BitLen(lzwbomb.OverflowNatural)
		}
		if total != 43264 {
			t.Errorf("limit %d: stream holds %d bits, want the 43264 bit ladder", limit, total)
		}
	}

	// Each unit of limit past 4096 adds one 12 bit flood code.
	segments := lzwbomb.BombSized(4097)
	if flood := segments[len(segments)-1].BitLen(lzwbomb.OverflowNatural); flood != 12 {
		t.Errorf("limit 4097: flood holds %d bits, want 12", flood)
	}
}

func TestWidthLadder(t *testing.T) {
	segments := lzwbomb.WidthLadder()

	aligned := lzwbomb.Packer{Padding: lzwbomb.PadAligned}
	packed, err := aligned.Pack(nil, segments)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 5408 {
		t.Errorf("aligned ladder = %d bytes, want 5408", len(packed))
	}

	// The ladder lands exactly on a byte boundary, which is where the two
	// padding policies diverge.
	reference := new(lzwbomb.Packer)
	padded, err := reference.Pack(nil, segments)
	if err != nil {
		t.Fatal(err)
	}
	if len(padded) != 5409 {
		t.Errorf("reference ladder = %d bytes, want 5409", len(padded))
	}
	if padded[len(padded)-1] != 0 {
		t.Errorf("reference ladder ends with %#02x, want a zero pad byte", padded[len(padded)-1])
	}
	if !bytes.Equal(padded[:5408], packed) {
		t.Error("the policies disagree before the pad byte")
	}

	// Every code reads back in sequence.
	codes, err := lzwbomb.Unpack(packed, []lzwbomb.WidthRun{
		{Width: 9, Count: 256},
		{Width: 10, Count: 512},
		{Width: 11, Count: 1024},
		{Width: 12, Count: 2048},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(codes) != 3840 {
		t.Fatalf("unpacked %d codes, want 3840", len(codes))
	}
	next := uint32(256)
	for i, code := range codes {
		if code != next {
			t.Fatalf("code %d = %d, want %d", i, code, next)
		}
		next++
	}
}

func TestEarlyEOD(t *testing.T) {
	segments := lzwbomb.EarlyEOD(9)
	total := uint(0)
	for _, s := range segments {
		total += s.BitLen(lzwbomb.OverflowNatural)
	}
	if total != 26 {
		t.Errorf("stream holds %d bits, want 26", total)
	}

	packer := new(lzwbomb.Packer)
	packed, err := packer.Pack(nil, segments)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x80, 0x40, 0x80, 0x40}; !bytes.Equal(packed, want) {
		t.Errorf("packed stream mismatch:\nwant = %08b\ngot  = %08b", want, packed)
	}

	// The two whole codes read back as written.
	codes, err := lzwbomb.Unpack(packed, []lzwbomb.WidthRun{{Width: 9, Count: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if !equalCodes(codes, []uint32{256, 258}) {
		t.Errorf("unpacked codes = %d, want [256 258]", codes)
	}

	// The partial third code is not recoverable: padding completes it, so a
	// reader that trusts the byte length sees the 8 bit value 1 shifted into
	// the 9 bit value 2 instead of failing.
	codes, err = lzwbomb.Unpack(packed, []lzwbomb.WidthRun{{Width: 9, Count: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if !equalCodes(codes, []uint32{256, 258, 2}) {
		t.Errorf("unpacked codes = %d, want [256 258 2]", codes)
	}
}

func TestAllClear(t *testing.T) {
	segments := lzwbomb.AllClear(512)

	aligned := lzwbomb.Packer{Padding: lzwbomb.PadAligned}
	packed, err := aligned.Pack(nil, segments)
	if err != nil {
		t.Fatal(err)
	}
	// Eight 9 bit clear codes span exactly nine bytes, so the stream is that
	// pattern repeated.
	period := []byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01, 0x00}
	diffBytes(t, "all clear", bytes.Repeat(period, 64), packed)

	reference := new(lzwbomb.Packer)
	padded, err := reference.Pack(nil, segments)
	if err != nil {
		t.Fatal(err)
	}
	if len(padded) != 577 || padded[576] != 0 {
		t.Errorf("reference policy = %d bytes ending %#02x, want 577 ending 0x00", len(padded), padded[len(padded)-1])
	}
}

func BenchmarkPackBomb(b *testing.B) {
	packer := new(lzwbomb.Packer)
	segments := lzwbomb.Bomb()
	buffer := []byte(nil)
	b.SetBytes(bombSize)

	for i := 0; i < b.N; i++ {
		var err error
		buffer, err = packer.Pack(buffer, segments)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// bitAppender is a deliberately naive bit writer used to cross-check the
// packer: it stores one byte per bit and assembles the stream at the end,
// sharing no code with internal/bitstream.
type bitAppender struct{ bits []byte }

func (a *bitAppender) write(value uint64, width uint) {
	for i := int(width) - 1; i >= 0; i-- {
		a.bits = append(a.bits, byte(value>>uint(i))&1)
	}
}

func (a *bitAppender) bytes() []byte {
	for pad := 8 - len(a.bits)%8; pad > 0; pad-- {
		a.bits = append(a.bits, 0)
	}
	data := make([]byte, 0, len(a.bits)/8)
	for i := 0; i < len(a.bits); i += 8 {
		b := byte(0)
		for _, bit := range a.bits[i : i+8] {
			b = b<<1 | bit
		}
		data = append(data, b)
	}
	return data
}

// diffBytes reports where two byte streams diverge, hexdumping a window
// around the first mismatch so large fixtures stay readable.
func diffBytes(t *testing.T, scenario string, want, got []byte) {
	t.Helper()
	if bytes.Equal(want, got) {
		return
	}
	i := 0
	for i < len(want) && i < len(got) && want[i] == got[i] {
		i++
	}
	lo := i &^ 15
	if lo >= 64 {
		lo -= 64
	}
	hi := lo + 256
	wantDump := hex.Dump(want[lo:minInt(hi, len(want))])
	gotDump := hex.Dump(got[lo:minInt(hi, len(got))])
	edits := myers.ComputeEdits(span.URIFromPath(scenario), wantDump, gotDump)
	t.Errorf("%s: streams diverge at byte %d (got %d bytes, want %d), window from byte %d:\n%s",
		scenario, i, len(got), len(want), lo,
		gotextdiff.ToUnified("want", "got", wantDump, edits))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
