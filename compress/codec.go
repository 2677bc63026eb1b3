package compress

import (
	"bytes"
	"fmt"

	"github.com/arloliu/markercfg/errs"
	"github.com/arloliu/markercfg/format"
)

// Compressor compresses a whole buffer into a self-describing frame.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a whole frame back into the original bytes.
//
// The input must be a complete frame produced by the matching Compressor (or
// any writer of the same format). Corrupt or truncated frames return an
// error; no partial output is returned.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression format.
type Codec interface {
	Compressor
	Decompressor
}

// Magic prefixes of the supported frame formats.
var (
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
	magicGzip = []byte{0x1f, 0x8b}
	// Stream identifier chunk header shared by S2 and Snappy framed streams.
	magicS2 = []byte{0xff, 0x06, 0x00, 0x00}
)

// Detect sniffs the leading bytes of data and reports the compression format,
// or CompressionNone when no known magic matches.
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, magicZstd):
		return format.CompressionZstd
	case bytes.HasPrefix(data, magicLZ4):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, magicGzip):
		return format.CompressionGzip
	case bytes.HasPrefix(data, magicS2):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// ForType returns the codec implementing the given compression type.
func ForType(typ format.CompressionType) (Codec, error) {
	switch typ {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompression, typ)
	}
}
