package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/segmentio/lzwbomb"
	"github.com/segmentio/lzwbomb/compress"
	"github.com/segmentio/lzwbomb/format"
	"github.com/segmentio/lzwbomb/internal/debug"
)

type generateFlags struct {
	_          struct{} `help:"Generate fixtures into a corpus directory"`
	Kind       string   `flag:"--kind" help:"Fixture kind to generate: BOMB, WIDTH_LADDER, EARLY_EOD or ALL_CLEAR; the whole catalog when omitted" default:"-"`
	Limit      int      `flag:"--limit" help:"Flood sizing of BOMB fixtures, 0 means the 1 GiB reference limit" default:"0"`
	Width      int      `flag:"--width" help:"Code width of EARLY_EOD fixtures, 0 means 9" default:"0"`
	Count      int      `flag:"--count" help:"Clear code repetitions of ALL_CLEAR fixtures, 0 means 512" default:"0"`
	Codec      string   `flag:"--codec" help:"Compression envelope: UNCOMPRESSED, GZIP, SNAPPY, BROTLI, ZSTD or LZ4" default:"UNCOMPRESSED"`
	Padding    string   `flag:"--padding" help:"Padding policy: PAD_REFERENCE or PAD_ALIGNED" default:"PAD_REFERENCE"`
	Overflow   string   `flag:"--overflow" help:"Overflow mode: OVERFLOW_NATURAL, OVERFLOW_TRUNCATE or OVERFLOW_STRICT" default:"OVERFLOW_NATURAL"`
	Debug      bool     `flag:"--debug" help:"Display debugging logs" default:"false"`
	CPUProfile string   `flag:"--cpu-profile" help:"Record a pprof CPU profile to the given file" default:"-"`
}

func generateCommand(flags generateFlags, dir string) {
	debug.Toggle(flags.Debug)

	if flags.CPUProfile != "" {
		f, err := os.Create(flags.CPUProfile)
		if err != nil {
			perrorf("could not create CPU profile: %s", err)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				perrorf("could not close CPU profile: %s", err)
			}
		}()
		if err := pprof.StartCPUProfile(f); err != nil {
			perrorf("could not start CPU profile: %s", err)
			return
		}
		debug.Format("started CPU profile to %s", flags.CPUProfile)
		defer pprof.StopCPUProfile()
	}

	fixtures := lzwbomb.Catalog()
	if flags.Kind != "" {
		kind, err := format.LookupFixtureKind(flags.Kind)
		if err != nil {
			perrorf("%s", err)
			return
		}
		f, ok := lzwbomb.LookupFixture(kind)
		if !ok {
			perrorf("no catalog fixture of kind %s", kind)
			return
		}
		fixtures = []lzwbomb.Fixture{f}
	}
	for i := range fixtures {
		fixtures[i].Limit = flags.Limit
		fixtures[i].Width = uint(flags.Width)
		fixtures[i].Count = flags.Count
	}

	packer, codec, err := packerConfig(flags.Padding, flags.Overflow, flags.Codec)
	if err != nil {
		perrorf("%s", err)
		return
	}

	corpus, err := lzwbomb.OpenCorpus(dir)
	if err != nil {
		perrorf("%s", err)
		return
	}
	manifest, err := lzwbomb.ReadManifest(corpus.Dir())
	if err != nil {
		perrorf("%s", err)
		return
	}

	g := &lzwbomb.Generator{Packer: packer, Codec: codec, Corpus: corpus, Manifest: manifest}
	for _, f := range fixtures {
		entry, err := g.Generate(f)
		if err != nil {
			perrorf("could not generate %s: %s", f.Name, err)
			return
		}
		pdebugf("generated %s with %s padding and %s overflow", entry.Name, entry.Padding, entry.Overflow)
		fmt.Printf("%s  %s\n", entry.SHA1, corpus.Path(entry.SHA1))
	}
	if err := manifest.Write(corpus.Dir()); err != nil {
		perrorf("could not write manifest: %s", err)
	}
}

func packerConfig(padding, overflow, codec string) (lzwbomb.Packer, compress.Codec, error) {
	p, err := lzwbomb.LookupPaddingPolicy(padding)
	if err != nil {
		return lzwbomb.Packer{}, nil, err
	}
	m, err := lzwbomb.LookupOverflowMode(overflow)
	if err != nil {
		return lzwbomb.Packer{}, nil, err
	}
	cc, err := format.LookupCompressionCodec(codec)
	if err != nil {
		return lzwbomb.Packer{}, nil, err
	}
	return lzwbomb.Packer{Padding: p, Overflow: m}, lzwbomb.LookupCompressionCodec(cc), nil
}
