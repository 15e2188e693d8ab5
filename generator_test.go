package lzwbomb_test

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/lzwbomb"
	"github.com/segmentio/lzwbomb/format"
	"github.com/segmentio/lzwbomb/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		corpus, err := lzwbomb.OpenCorpus(dir)
		require.NoError(t, err)
		manifest := new(lzwbomb.Manifest)

		g := &lzwbomb.Generator{Corpus: corpus, Manifest: manifest}
		entry, err := g.Generate(lzwbomb.Fixture{Kind: format.KindBomb, Name: "bomb", Limit: 5000})
		require.NoError(t, err)

		assert.Equal(t, "bomb", entry.Name)
		assert.Equal(t, "BOMB", entry.Kind)
		assert.Equal(t, "UNCOMPRESSED", entry.Codec)
		assert.Equal(t, "PAD_REFERENCE", entry.Padding)
		assert.Equal(t, "OVERFLOW_NATURAL", entry.Overflow)
		assert.Equal(t, 5000, entry.Limit)
		// The sized bomb lands on a byte boundary, so the reference pad byte
		// shows up in the size.
		assert.Equal(t, int64(6765), entry.Size)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())

		data, err := corpus.Open(entry.SHA1)
		require.NoError(t, err)
		assert.Len(t, data, 6765)

		require.Len(t, manifest.Entries, 1)
		assert.NoError(t, lzwbomb.VerifyEntry(corpus, manifest.Entries[0]))

		// Generating the same fixture again files the same content under the
		// same hash, with a fresh identity.
		again, err := g.Generate(lzwbomb.Fixture{Kind: format.KindBomb, Name: "bomb", Limit: 5000})
		require.NoError(t, err)
		assert.Equal(t, entry.SHA1, again.SHA1)
		assert.NotEqual(t, entry.ID, again.ID)
	})
}

func TestGeneratorEnvelope(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		corpus, err := lzwbomb.OpenCorpus(dir)
		require.NoError(t, err)

		g := &lzwbomb.Generator{Codec: &lzwbomb.Gzip, Corpus: corpus}
		entry, err := g.Generate(lzwbomb.Fixture{Kind: format.KindAllClear, Name: "all_clear"})
		require.NoError(t, err)
		assert.Equal(t, "GZIP", entry.Codec)

		// The corpus holds the envelope; unwrapping it returns the packed
		// stream.
		data, err := corpus.Open(entry.SHA1)
		require.NoError(t, err)
		raw, err := lzwbomb.Gzip.Decode(nil, data)
		require.NoError(t, err)

		packer := new(lzwbomb.Packer)
		want, err := packer.Pack(nil, lzwbomb.AllClear(512))
		require.NoError(t, err)
		assert.Equal(t, want, raw)

		assert.NoError(t, lzwbomb.VerifyEntry(corpus, entry))
	})
}

func TestGenerateCatalog(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		corpus, err := lzwbomb.OpenCorpus(dir)
		require.NoError(t, err)
		manifest := new(lzwbomb.Manifest)

		g := &lzwbomb.Generator{Corpus: corpus, Manifest: manifest}
		for _, f := range lzwbomb.Catalog() {
			if _, err := g.Generate(f); err != nil {
				t.Fatalf("%s: %v", f.Name, err)
			}
		}
		require.Len(t, manifest.Entries, 4)
		require.NoError(t, manifest.Write(dir))

		// The catalog's bomb entry is the reference fixture.
		entry, ok := manifest.Lookup(bombSHA1)
		require.True(t, ok, "the catalog did not produce the reference bomb stream")
		assert.Equal(t, "lzw_malicious", entry.Name)
		assert.Equal(t, int64(bombSize), entry.Size)

		read, err := lzwbomb.ReadManifest(dir)
		require.NoError(t, err)
		require.Len(t, read.Entries, 4)
		for _, e := range read.Entries {
			assert.NoError(t, lzwbomb.VerifyEntry(corpus, e), e.Name)
		}

		files := 0
		err = corpus.Walk(func(sum string, data []byte) error {
			e, ok := read.Lookup(sum)
			require.True(t, ok, "corpus file %s has no manifest entry", sum)
			assert.Equal(t, e.Size, int64(len(data)), e.Name)
			files++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 4, files)
	})
}

func TestVerifyEntryFailures(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		corpus, err := lzwbomb.OpenCorpus(dir)
		require.NoError(t, err)

		g := &lzwbomb.Generator{Corpus: corpus}
		entry, err := g.Generate(lzwbomb.Fixture{Kind: format.KindEarlyEOD, Name: "early_eod"})
		require.NoError(t, err)
		require.NoError(t, lzwbomb.VerifyEntry(corpus, entry))

		// Tampered parameters no longer hash to the recorded value.
		tampered := entry
		tampered.Width = 10
		err = lzwbomb.VerifyEntry(corpus, tampered)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hashes to")

		// Unknown enum strings fail before anything is rebuilt.
		unknown := entry
		unknown.Kind = "TIME_BOMB"
		assert.Error(t, lzwbomb.VerifyEntry(corpus, unknown))

		// A corrupted corpus file is caught by the byte comparison.
		require.NoError(t, os.WriteFile(corpus.Path(entry.SHA1), []byte("corrupt"), 0644))
		err = lzwbomb.VerifyEntry(corpus, entry)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})
}
