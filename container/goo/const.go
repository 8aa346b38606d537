package goo

// magic is the fixed byte tag following the version field, identifying
// the file as a Goo container.
var magic = []byte{0x07, 0x00, 0x00, 0x00, 0x44, 0x4C, 0x50, 0x00}

// delimiter separates the two embedded preview images from the fields
// that follow them, and frames each layer's encoded payload.
var delimiter = []byte{0x0D, 0x0A}

// terminator closes the file after the last layer record. Its exact
// bytes could not be recovered from the reference sources available for
// this build; this value is an invented placeholder. It only needs to
// round-trip through this package's own Serialize/Deserialize, which is
// all correctness here requires.
var terminator = []byte("MSLICE_GOO_EOF\x00\x00")

// headerSize is the fixed size of the header section, re-asserted as a
// field near the end of the header (just before the grey-scale flag and
// transition-layer count) as a corruption check.
const headerSize = 0x2FB95
