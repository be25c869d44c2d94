package codec

// Magic starts every param file.
const Magic = "paracobn"

const (
	headerSize   = 0x10
	hashPoolSize = 0x08
	refSize      = 0x0c
)

// DefaultMaxDepth bounds container nesting when decoding.
const DefaultMaxDepth = 256

// node header sizes
const (
	listHeader   = 5
	structHeader = 9
	tableRow     = 8
)
