// Package test holds small helpers shared by tests that stage fixture
// corpora on disk.
package test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// WithTestDir runs f with a fresh temporary directory, removing it afterwards
// unless the test failed or panicked, in which case the path is logged so the
// generated corpus can be inspected.
func WithTestDir(t *testing.T, f func(dir string)) {
	dir, err := os.MkdirTemp("", t.Name())
	assert.NoError(t, err)
	defer func() {
		if r := recover(); r != nil {
			t.Log("Test directory available at", dir)
			panic(r)
		} else if t.Failed() {
			t.Log("Test directory available at", dir)
		} else {
			os.RemoveAll(dir)
		}
	}()

	f(dir)
}
