package slurp

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/markercfg/compress"
	"github.com/arloliu/markercfg/errs"
	"github.com/arloliu/markercfg/format"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestRead(t *testing.T) {
	content := []byte(`{"num_angles":2,"num_markers":3}`)
	path := writeFile(t, "marker.json", content)

	buf, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, content, buf)
}

func TestReadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.json", nil)

	buf, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, buf)
}

func TestReadMissingFile(t *testing.T) {
	buf, err := Read(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, buf)
}

func TestReadSentinel(t *testing.T) {
	content := []byte(`{}`)
	path := writeFile(t, "marker.json", content)

	buf, err := Read(path, WithSentinel())
	require.NoError(t, err)
	require.Len(t, buf, len(content)+1)
	assert.Equal(t, content, buf[:len(content)])
	assert.Equal(t, byte(0), buf[len(content)])
}

func TestReadMaxSize(t *testing.T) {
	content := []byte(`{"num_angles":2,"num_markers":3}`)
	path := writeFile(t, "marker.json", content)

	buf, err := Read(path, WithMaxSize(8))
	require.ErrorIs(t, err, errs.ErrTooLarge)
	assert.Nil(t, buf)

	buf, err = Read(path, WithMaxSize(int64(len(content))))
	require.NoError(t, err)
	assert.Equal(t, content, buf)
}

func TestReadDecompression(t *testing.T) {
	content := []byte(`{"num_angles":2,"num_markers":3,"angles":[0,90]}`)

	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := compress.ForType(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(content)
			require.NoError(t, err)
			path := writeFile(t, "marker.json.bin", compressed)

			buf, err := Read(path, WithDecompression())
			require.NoError(t, err)
			assert.Equal(t, content, buf)
		})
	}
}

func TestReadDecompressionPlainFile(t *testing.T) {
	// no magic bytes: returned as-is even with decompression enabled
	content := []byte(`{"num_angles":1,"num_markers":1}`)
	path := writeFile(t, "marker.json", content)

	buf, err := Read(path, WithDecompression())
	require.NoError(t, err)
	assert.Equal(t, content, buf)
}

func TestReadDecompressionSentinelOrder(t *testing.T) {
	content := []byte(`{"num_angles":1,"num_markers":1}`)
	codec, err := compress.ForType(format.CompressionGzip)
	require.NoError(t, err)
	compressed, err := codec.Compress(content)
	require.NoError(t, err)
	path := writeFile(t, "marker.json.gz", compressed)

	buf, err := Read(path, WithDecompression(), WithSentinel())
	require.NoError(t, err)
	require.Len(t, buf, len(content)+1)
	assert.Equal(t, content, buf[:len(content)])
	assert.Equal(t, byte(0), buf[len(content)])
}
