package compress

// ZstdCodec reads and writes Zstandard frames.
//
// Two implementations exist behind build tags, mirroring the two zstd
// libraries in use: valyala/gozstd (cgo, fastest) and klauspost/compress/zstd
// (pure Go). Both produce standard frames, so files written by one build are
// readable by the other.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstandard codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
