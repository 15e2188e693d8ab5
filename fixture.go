package lzwbomb

import "github.com/segmentio/lzwbomb/format"

// A Fixture is the declarative description of one generated stream: the kind
// selects the construction and the parameter fields size it, with zero values
// selecting the reference parameters. The description is what corpus
// manifests record, so any fixture can be rebuilt byte for byte from its
// manifest entry.
type Fixture struct {
	Kind format.FixtureKind
	Name string

	// Limit sizes the bomb's flood segment, as in BombSized. Zero means
	// LimitFor1GiB.
	Limit int
	// Width is the code width of an early-EOD stream. Zero means 9.
	Width uint
	// Count is the number of clear codes in an all-clear stream. Zero means
	// 512.
	Count int
}

// Segments builds the fixture's segment sequence.
func (f Fixture) Segments() []Segment {
	switch f.Kind {
	case format.KindWidthLadder:
		return WidthLadder()
	case format.KindEarlyEOD:
		return EarlyEOD(f.width())
	case format.KindAllClear:
		return AllClear(f.count())
	default:
		return BombSized(f.limit())
	}
}

func (f Fixture) limit() int {
	if f.Limit != 0 {
		return f.Limit
	}
	return LimitFor1GiB
}

func (f Fixture) width() uint {
	if f.Width != 0 {
		return f.Width
	}
	return 9
}

func (f Fixture) count() int {
	if f.Count != 0 {
		return f.Count
	}
	return 512
}

// Catalog returns the built-in fixtures in generation order, each with its
// reference parameters. The bomb entry is the reference construction; the
// others probe decoder edge cases around it.
func Catalog() []Fixture {
	return []Fixture{
		{Kind: format.KindBomb, Name: "lzw_malicious"},
		{Kind: format.KindWidthLadder, Name: "lzw_width_ladder"},
		{Kind: format.KindEarlyEOD, Name: "lzw_early_eod"},
		{Kind: format.KindAllClear, Name: "lzw_all_clear"},
	}
}

// LookupFixture returns the catalog entry of the given kind.
func LookupFixture(kind format.FixtureKind) (Fixture, bool) {
	for _, f := range Catalog() {
		if f.Kind == kind {
			return f, true
		}
	}
	return Fixture{}, false
}
