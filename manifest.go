package lzwbomb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"github.com/segmentio/lzwbomb/format"
)

// ManifestName is the name of the manifest file inside a corpus directory.
const ManifestName = "manifest.json"

// A ManifestEntry records one generated fixture: its identity, where it sits
// in the corpus, and the parameters needed to rebuild it byte for byte.
//
// Enumerated fields hold the string forms produced by their String methods so
// the manifest stays readable and diffable; the Fixture and Packer methods
// turn an entry back into the values it was generated from.
type ManifestEntry struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Codec     string    `json:"codec"`
	Padding   string    `json:"padding"`
	Overflow  string    `json:"overflow"`
	Limit     int       `json:"limit,omitempty"`
	Width     uint      `json:"width,omitempty"`
	Count     int       `json:"count,omitempty"`
	Size      int64     `json:"size"`
	SHA1      string    `json:"sha1"`
	CreatedAt time.Time `json:"createdAt"`
}

// Fixture rebuilds the fixture description the entry was generated from.
func (e *ManifestEntry) Fixture() (Fixture, error) {
	kind, err := format.LookupFixtureKind(e.Kind)
	if err != nil {
		return Fixture{}, err
	}
	return Fixture{
		Kind:  kind,
		Name:  e.Name,
		Limit: e.Limit,
		Width: e.Width,
		Count: e.Count,
	}, nil
}

// Packer rebuilds the packer configuration the entry was generated with.
func (e *ManifestEntry) Packer() (Packer, error) {
	padding, err := LookupPaddingPolicy(e.Padding)
	if err != nil {
		return Packer{}, err
	}
	overflow, err := LookupOverflowMode(e.Overflow)
	if err != nil {
		return Packer{}, err
	}
	return Packer{Padding: padding, Overflow: overflow}, nil
}

// A Manifest lists the fixtures generated into a corpus.
type Manifest struct {
	Entries []ManifestEntry `json:"entries"`
}

// Add appends an entry to the manifest.
func (m *Manifest) Add(e ManifestEntry) {
	m.Entries = append(m.Entries, e)
}

// Lookup returns the first entry recorded with the given content hash.
func (m *Manifest) Lookup(sum string) (ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.SHA1 == sum {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// ReadManifest loads the manifest of a corpus directory. A missing manifest
// file is an empty manifest, not an error.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return new(Manifest), nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m := new(Manifest)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return m, nil
}

// Write stores the manifest in a corpus directory.
func (m *Manifest) Write(dir string) error {
	path := filepath.Join(dir, ManifestName)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
