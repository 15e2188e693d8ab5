/*
Package lzwbomb deterministically constructs the adversarial bitstreams used
to test variable-width codestream decoders: fixed-width binary codes packed
most significant bit first, back to back, zero-padded to a byte boundary.

Packing

Streams are described as segments. A CodeSegment holds integer codes sharing
one declared width, a RepeatSegment repeats a raw bit pattern, and Packer
assembles any sequence of them into bytes. The zero value of Packer
reproduces the reference fixture generator bit for bit, including its two
sharp edges: a stream that is already byte aligned still receives a full
byte of padding, and a code too large for its declared width is emitted at
its natural length, shifting everything after it. Both behaviors can be
selected away through PaddingPolicy and OverflowMode.

Fixtures

Bomb returns the segments of the reference decompression bomb: every code
width from 9 to 12 bits walked through the full range a growing dictionary
assigns, one 0xFF byte value spliced in, and the all-ones 12 bit pattern
repeated until a dictionary-growing decoder has produced about 1 GiB.
WidthLadder, EarlyEOD and AllClear build well-formed and truncated
counterparts. Generator files packed fixtures into a content-addressed
Corpus under a JSON Manifest, optionally wrapped in a compression envelope.

Tooling

The program at ./cmd/lzwbomb generates, lists and verifies fixture corpora
from the command line.
*/
package lzwbomb
