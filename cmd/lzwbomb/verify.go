package main

import (
	"fmt"

	"github.com/segmentio/lzwbomb"
	"github.com/segmentio/lzwbomb/internal/debug"
)

type verifyFlags struct {
	_     struct{} `help:"Rebuild every manifest entry of a corpus and check the stored bytes still match"`
	Debug bool     `flag:"--debug" help:"Display debugging logs" default:"false"`
}

func verifyCommand(flags verifyFlags, dir string) {
	debug.Toggle(flags.Debug)

	manifest, err := lzwbomb.ReadManifest(dir)
	if err != nil {
		perrorf("%s", err)
		return
	}
	if len(manifest.Entries) == 0 {
		perrorf("no manifest entries in %s", dir)
		return
	}
	corpus, err := lzwbomb.OpenCorpus(dir)
	if err != nil {
		perrorf("%s", err)
		return
	}

	failed := 0
	for _, e := range manifest.Entries {
		if err := lzwbomb.VerifyEntry(corpus, e); err != nil {
			perrorf("%s", err)
			failed++
			continue
		}
		pdebugf("rebuilt %s from %s", e.Name, e.Kind)
		fmt.Printf("ok  %s  %s\n", e.Name, e.SHA1)
	}
	if failed != 0 {
		perrorf("%d of %d fixtures failed verification", failed, len(manifest.Entries))
	}
}
