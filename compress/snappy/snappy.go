// Package snappy implements the SNAPPY fixture envelope.
package snappy

import (
	"github.com/klauspost/compress/snappy"
	"github.com/segmentio/lzwbomb/format"
)

type Codec struct {
}

// The snappy envelope uses the raw block format, not the framed stream
// format: a fixture is one snappy block with no framing headers or checksums
// around it.

func (c *Codec) String() string {
	return "SNAPPY"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Snappy
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst[:cap(dst)], src), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst[:cap(dst)], src)
}
