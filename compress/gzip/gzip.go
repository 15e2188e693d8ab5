// Package gzip implements the GZIP fixture envelope.
package gzip

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/lzwbomb/compress"
	"github.com/segmentio/lzwbomb/format"
)

const (
	NoCompression      = gzip.NoCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
	DefaultCompression = gzip.DefaultCompression
	HuffmanOnly        = gzip.HuffmanOnly
)

type Codec struct {
	// Level is the compression level passed to the gzip writers. The zero
	// value is NoCompression, which writes valid streams of stored blocks.
	Level int

	compressor   compress.Compressor
	decompressor compress.Decompressor
}

func (c *Codec) String() string {
	return "GZIP"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Gzip
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		return gzip.NewWriterLevel(w, c.Level)
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return reader{z}, nil
	})
}

// Gzip readers consume the stream header as soon as they are reset, so
// resetting from a nil source is backed by a well-formed empty stream to keep
// pooled readers reusable.
var emptyGzip = [...]byte{
	0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x03,
	0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

type reader struct{ *gzip.Reader }

func (r reader) Reset(rr io.Reader) error {
	if rr == nil {
		rr = bytes.NewReader(emptyGzip[:])
	}
	return r.Reader.Reset(rr)
}
