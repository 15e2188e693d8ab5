package lzwbomb

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/lzwbomb/compress"
	"github.com/segmentio/lzwbomb/format"
	"github.com/segmentio/lzwbomb/internal/debug"
)

// Generator packs fixtures and files them into a corpus under a manifest.
//
// The packer's zero value gives reference semantics and a nil codec writes
// raw streams, so
//
//	g := &lzwbomb.Generator{Corpus: corpus, Manifest: manifest}
//	entry, err := g.Generate(lzwbomb.Fixture{Kind: format.KindBomb, Name: "lzw_malicious"})
//
// files the byte-exact reference fixture. Generators reuse their scratch
// buffers across calls and must not be shared between goroutines.
type Generator struct {
	Packer   Packer
	Codec    compress.Codec
	Corpus   *Corpus
	Manifest *Manifest

	packed  []byte
	encoded []byte
}

// Generate builds the fixture, applies the envelope codec if any, writes the
// result into the corpus and appends an entry to the manifest. The recorded
// entry is returned.
func (g *Generator) Generate(f Fixture) (ManifestEntry, error) {
	var err error
	g.packed, err = g.Packer.Pack(g.packed, f.Segments())
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("packing %s: %w", f.Name, err)
	}
	debug.Format("packed %s: %d bytes", f.Name, len(g.packed))

	data := g.packed
	codec := format.Uncompressed
	if g.Codec != nil && g.Codec.CompressionCodec() != format.Uncompressed {
		codec = g.Codec.CompressionCodec()
		g.encoded, err = g.Codec.Encode(g.encoded, g.packed)
		if err != nil {
			return ManifestEntry{}, fmt.Errorf("encoding %s with %s: %w", f.Name, g.Codec, err)
		}
		data = g.encoded
		debug.Format("encoded %s with %s: %d bytes", f.Name, g.Codec, len(data))
	}

	sum, err := g.Corpus.Add(data)
	if err != nil {
		return ManifestEntry{}, err
	}

	entry := ManifestEntry{
		ID:        uuid.New(),
		Name:      f.Name,
		Kind:      f.Kind.String(),
		Codec:     codec.String(),
		Padding:   g.Packer.Padding.String(),
		Overflow:  g.Packer.Overflow.String(),
		Size:      int64(len(data)),
		SHA1:      sum,
		CreatedAt: time.Now().UTC(),
	}
	switch f.Kind {
	case format.KindBomb:
		entry.Limit = f.limit()
	case format.KindEarlyEOD:
		entry.Width = f.width()
	case format.KindAllClear:
		entry.Count = f.count()
	}
	if g.Manifest != nil {
		g.Manifest.Add(entry)
	}
	return entry, nil
}

// VerifyEntry rebuilds a manifest entry from its recorded parameters and
// checks the result against both the recorded hash and the bytes on disk.
// It proves generation is deterministic end to end, and that the corpus file
// has not been corrupted, renamed, or regenerated with different settings.
func VerifyEntry(c *Corpus, e ManifestEntry) error {
	f, err := e.Fixture()
	if err != nil {
		return fmt.Errorf("fixture %s: %w", e.Name, err)
	}
	p, err := e.Packer()
	if err != nil {
		return fmt.Errorf("fixture %s: %w", e.Name, err)
	}
	data, err := p.Pack(nil, f.Segments())
	if err != nil {
		return fmt.Errorf("fixture %s: %w", e.Name, err)
	}

	cc, err := format.LookupCompressionCodec(e.Codec)
	if err != nil {
		return fmt.Errorf("fixture %s: %w", e.Name, err)
	}
	if cc != format.Uncompressed {
		data, err = LookupCompressionCodec(cc).Encode(nil, data)
		if err != nil {
			return fmt.Errorf("fixture %s: %w", e.Name, err)
		}
	}

	if sum := contentHash(data); sum != e.SHA1 {
		return fmt.Errorf("fixture %s: rebuilt stream hashes to %s, manifest records %s",
			e.Name, sum, e.SHA1)
	}
	disk, err := c.Open(e.SHA1)
	if err != nil {
		return fmt.Errorf("fixture %s: %w", e.Name, err)
	}
	if !bytes.Equal(disk, data) {
		return fmt.Errorf("fixture %s: corpus file %s does not match its rebuilt stream",
			e.Name, c.Path(e.SHA1))
	}
	return nil
}
