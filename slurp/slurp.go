// Package slurp reads whole files into owned byte buffers.
//
// It is the I/O leaf of the config pipeline: no JSON awareness, no retries.
// The file length is determined by seeking to the end, the whole file is read
// in one operation, and any short read is fatal. The returned buffer is owned
// by the caller.
package slurp

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/markercfg/compress"
	"github.com/arloliu/markercfg/errs"
	"github.com/arloliu/markercfg/format"
)

// Option configures a Read call.
type Option func(*config)

type config struct {
	sentinel   bool
	maxSize    int64
	decompress bool
}

// WithSentinel appends a single NUL byte after the file contents, for callers
// handing the buffer to NUL-terminated consumers. The sentinel is appended
// after decompression when WithDecompression is also set.
func WithSentinel() Option {
	return func(c *config) { c.sentinel = true }
}

// WithMaxSize rejects files larger than n bytes with errs.ErrTooLarge before
// any buffer is allocated. n <= 0 disables the guard.
func WithMaxSize(n int64) Option {
	return func(c *config) { c.maxSize = n }
}

// WithDecompression sniffs the leading magic bytes and transparently
// decompresses zstd, s2, lz4 and gzip files. Files with no recognized magic
// are returned as-is.
func WithDecompression() Option {
	return func(c *config) { c.decompress = true }
}

// Read loads the file at path into a newly allocated buffer.
//
// The error path never returns a partially filled buffer: on any failure the
// result is (nil, error). A close failure after a successful read is still an
// error and the buffer is dropped.
func Read(path string, opts ...Option) ([]byte, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	buf, err := readFile(path, cfg.maxSize)
	if err != nil {
		return nil, err
	}

	if cfg.decompress {
		if typ := compress.Detect(buf); typ != format.CompressionNone {
			codec, err := compress.ForType(typ)
			if err != nil {
				return nil, err
			}
			if buf, err = codec.Decompress(buf); err != nil {
				return nil, fmt.Errorf("decompress %s (%s): %w", path, typ, err)
			}
		}
	}

	if cfg.sentinel {
		buf = append(buf, 0)
	}

	return buf, nil
}

func readFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("seek %s: %w", path, err)
	}
	if maxSize > 0 && size > maxSize {
		f.Close()

		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", errs.ErrTooLarge, path, size, maxSize)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()

		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		// a short read means the file changed underneath us; not recoverable
		f.Close()

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}

	return buf, nil
}
