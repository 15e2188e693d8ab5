package lzwbomb

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Corpus is a directory of fixtures addressed by content: each file is named
// by the hex SHA-1 of its bytes, the layout persistent fuzzing corpora use.
// Identical fixtures share one file, which makes Add idempotent and lets
// corpora from different runs be merged by copying files.
type Corpus struct {
	dir string
}

// OpenCorpus returns the corpus rooted at dir, creating the directory when it
// does not exist yet.
func OpenCorpus(dir string) (*Corpus, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("opening corpus %s: %w", dir, err)
	}
	return &Corpus{dir: dir}, nil
}

// Dir returns the corpus root directory.
func (c *Corpus) Dir() string { return c.dir }

// Add writes data into the corpus and returns its content hash, which is also
// the file name. Content already present is not rewritten.
func (c *Corpus) Add(data []byte) (string, error) {
	name := contentHash(data)
	path := filepath.Join(c.dir, name)
	if _, err := os.Stat(path); err == nil {
		return name, nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing corpus file %s: %w", path, err)
	}
	return name, nil
}

// Path returns the file path a content hash resolves to. It does not check
// that the file exists.
func (c *Corpus) Path(sum string) string {
	return filepath.Join(c.dir, sum)
}

// Open reads back the fixture with the given content hash.
func (c *Corpus) Open(sum string) ([]byte, error) {
	path := c.Path(sum)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	return data, nil
}

// Walk calls fn for every fixture in the corpus in file name order. Files
// whose name is not a well-formed content hash, such as the manifest, are
// skipped. Walking stops at the first error returned by fn.
func (c *Corpus) Walk(fn func(sum string, data []byte) error) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading corpus %s: %w", c.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isContentHash(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading corpus file %s: %w", e.Name(), err)
		}
		if err := fn(e.Name(), data); err != nil {
			return err
		}
	}
	return nil
}

func contentHash(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func isContentHash(name string) bool {
	if len(name) != 2*sha1.Size {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}
