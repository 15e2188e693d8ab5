// Package format declares the constants naming the on-disk representations
// shared by the lzwbomb packages: the compression envelopes fixtures may be
// wrapped in, and the kinds of fixtures the built-in catalog produces.
package format

import "fmt"

// CompressionCodec identifies the compression envelope applied to a packed
// fixture before it is written to a corpus.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Gzip         CompressionCodec = 1
	Snappy       CompressionCodec = 2
	Brotli       CompressionCodec = 3
	Zstd         CompressionCodec = 4
	Lz4          CompressionCodec = 5
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Gzip:
		return "GZIP"
	case Snappy:
		return "SNAPPY"
	case Brotli:
		return "BROTLI"
	case Zstd:
		return "ZSTD"
	case Lz4:
		return "LZ4"
	default:
		return "CompressionCodec(?)"
	}
}

// LookupCompressionCodec returns the codec named by s, accepting the exact
// strings produced by String. It is used to decode manifests and CLI flags.
func LookupCompressionCodec(s string) (CompressionCodec, error) {
	for _, c := range []CompressionCodec{Uncompressed, Gzip, Snappy, Brotli, Zstd, Lz4} {
		if c.String() == s {
			return c, nil
		}
	}
	return Uncompressed, fmt.Errorf("unknown compression codec: %q", s)
}

// FixtureKind identifies one of the built-in fixture constructions.
type FixtureKind int32

const (
	KindBomb        FixtureKind = 0
	KindWidthLadder FixtureKind = 1
	KindEarlyEOD    FixtureKind = 2
	KindAllClear    FixtureKind = 3
)

func (k FixtureKind) String() string {
	switch k {
	case KindBomb:
		return "BOMB"
	case KindWidthLadder:
		return "WIDTH_LADDER"
	case KindEarlyEOD:
		return "EARLY_EOD"
	case KindAllClear:
		return "ALL_CLEAR"
	default:
		return "FixtureKind(?)"
	}
}

// LookupFixtureKind returns the fixture kind named by s, accepting the exact
// strings produced by String.
func LookupFixtureKind(s string) (FixtureKind, error) {
	for _, k := range []FixtureKind{KindBomb, KindWidthLadder, KindEarlyEOD, KindAllClear} {
		if k.String() == s {
			return k, nil
		}
	}
	return KindBomb, fmt.Errorf("unknown fixture kind: %q", s)
}
