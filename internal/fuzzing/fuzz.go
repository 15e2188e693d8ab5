//go:build go1.18
// +build go1.18

// Package fuzzing derives structured packer inputs from the raw byte slices
// the fuzzing engine hands out.
package fuzzing

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/rand"
)

// MakeRandCodes derives count codes from data, each masked to width bits.
// The same data always produces the same codes, so failing inputs stay
// reproducible from the corpus.
func MakeRandCodes(data []byte, count int, width uint) []uint32 {
	if count < 1 {
		return nil
	}
	src := rand.New(newByteSource(data))
	mask := uint32(1)<<width - 1
	codes := make([]uint32, count)
	for i := range codes {
		codes[i] = uint32(src.Int63()) & mask
	}
	return codes
}

// byteSource adapts a fuzz input into a rand.Source: random values are drawn
// from the data and become zeros once it runs out.
type byteSource struct {
	*bytes.Reader
}

func newByteSource(data []byte) *byteSource {
	return &byteSource{
		Reader: bytes.NewReader(data),
	}
}

func (s *byteSource) Uint64() uint64 {
	var bytes [8]byte
	if _, err := s.Read(bytes[:]); err != nil && !errors.Is(err, io.EOF) {
		panic("byteSource: failed to read bytes")
	}
	return binary.BigEndian.Uint64(bytes[:])
}

func (s *byteSource) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

func (s *byteSource) Seed(seed int64) {}
