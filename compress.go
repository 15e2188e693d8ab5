package lzwbomb

import (
	"fmt"

	"github.com/segmentio/lzwbomb/compress"
	"github.com/segmentio/lzwbomb/compress/brotli"
	"github.com/segmentio/lzwbomb/compress/gzip"
	"github.com/segmentio/lzwbomb/compress/lz4"
	"github.com/segmentio/lzwbomb/compress/snappy"
	"github.com/segmentio/lzwbomb/compress/uncompressed"
	"github.com/segmentio/lzwbomb/compress/zstd"
	"github.com/segmentio/lzwbomb/format"
)

var (
	// Uncompressed is an envelope codec which writes fixtures as-is.
	Uncompressed uncompressed.Codec

	// Gzip is the GZIP envelope codec.
	Gzip = gzip.Codec{
		Level: gzip.DefaultCompression,
	}

	// Snappy is the SNAPPY envelope codec, using the raw block format.
	Snappy snappy.Codec

	// Brotli is the BROTLI envelope codec.
	Brotli = brotli.Codec{
		Quality: brotli.DefaultQuality,
		LGWin:   brotli.DefaultLGWin,
	}

	// Zstd is the ZSTD envelope codec.
	Zstd = zstd.Codec{
		Level: zstd.DefaultLevel,
	}

	// Lz4 is the LZ4 envelope codec, using the lz4 frame format.
	Lz4 = lz4.Codec{
		Level: lz4.DefaultLevel,
	}

	compressionCodecs = [...]compress.Codec{
		format.Uncompressed: &Uncompressed,
		format.Gzip:         &Gzip,
		format.Snappy:       &Snappy,
		format.Brotli:       &Brotli,
		format.Zstd:         &Zstd,
		format.Lz4:          &Lz4,
	}
)

// LookupCompressionCodec returns the envelope codec associated with the given
// compression codec code.
//
// The function never returns nil. If the code does not map to a registered
// envelope, an invalid codec is returned whose Encode and Decode methods fail
// with ErrUnsupportedCodec.
func LookupCompressionCodec(codec format.CompressionCodec) compress.Codec {
	if codec >= 0 && int(codec) < len(compressionCodecs) {
		if c := compressionCodecs[codec]; c != nil {
			return c
		}
	}
	return &unsupportedCodec{codec: codec}
}

type unsupportedCodec struct {
	codec format.CompressionCodec
}

func (u *unsupportedCodec) String() string {
	return "UNSUPPORTED"
}

func (u *unsupportedCodec) CompressionCodec() format.CompressionCodec {
	return u.codec
}

func (u *unsupportedCodec) Encode(dst, src []byte) ([]byte, error) {
	return dst[:0], u.error()
}

func (u *unsupportedCodec) Decode(dst, src []byte) ([]byte, error) {
	return dst[:0], u.error()
}

func (u *unsupportedCodec) error() error {
	return fmt.Errorf("%s (%d): %w", u.codec, int32(u.codec), ErrUnsupportedCodec)
}
