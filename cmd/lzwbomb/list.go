package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/lzwbomb"
	"github.com/segmentio/lzwbomb/internal/debug"
)

type listFlags struct {
	_     struct{} `help:"List the built-in fixture catalog, or the manifests of corpus directories"`
	Debug bool     `flag:"--debug" help:"Display debugging logs" default:"false"`
}

func listCommand(flags listFlags, dirs ...string) {
	debug.Toggle(flags.Debug)

	if len(dirs) == 0 {
		listCatalog()
		return
	}
	for _, dir := range dirs {
		if err := listManifest(dir); err != nil {
			perrorf("%s", err)
			return
		}
	}
}

func listCatalog() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Name", "Segments", "Bits"})
	for _, f := range lzwbomb.Catalog() {
		segments := f.Segments()
		bits := uint(0)
		for _, s := range segments {
			bits += s.BitLen(lzwbomb.OverflowNatural)
		}
		table.Append([]string{
			f.Kind.String(),
			f.Name,
			strconv.Itoa(len(segments)),
			strconv.FormatUint(uint64(bits), 10),
		})
	}
	table.Render()
}

func listManifest(dir string) error {
	manifest, err := lzwbomb.ReadManifest(dir)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Kind", "Codec", "Size", "SHA1"})
	for _, e := range manifest.Entries {
		table.Append([]string{
			e.Name,
			e.Kind,
			e.Codec,
			strconv.FormatInt(e.Size, 10),
			e.SHA1,
		})
	}
	table.Render()
	return nil
}
