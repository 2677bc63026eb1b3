package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/markercfg/errs"
	"github.com/arloliu/markercfg/format"
)

var sampleDoc = []byte(`{"num_angles":2,"num_markers":3,"angles":[0,90],` +
	`"marker_color":[1,2,3],"marker_start":[[0,1,2,3,4,5],[6,7,8,9,10,11]]}`)

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  format.CompressionType
	}{
		{"zstd", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
		{"gzip", format.CompressionGzip},
		{"noop", format.CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := ForType(tt.typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(sampleDoc)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, sampleDoc, decompressed)
		})
	}
}

func TestDetect(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := ForType(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(sampleDoc)
			require.NoError(t, err)
			assert.Equal(t, typ, Detect(compressed))
		})
	}
}

func TestDetectPlain(t *testing.T) {
	assert.Equal(t, format.CompressionNone, Detect(sampleDoc))
	assert.Equal(t, format.CompressionNone, Detect(nil))
	assert.Equal(t, format.CompressionNone, Detect([]byte{0x28}))
}

func TestForTypeUnknown(t *testing.T) {
	codec, err := ForType(format.CompressionType(0xff))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
	assert.Nil(t, codec)
}

func TestDecompressCorrupt(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionGzip,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := ForType(typ)
			require.NoError(t, err)

			garbage := bytes.Repeat([]byte{0xde, 0xad}, 16)
			_, err = codec.Decompress(garbage)
			assert.Error(t, err)
		})
	}
}

func TestCompressEmpty(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		codec, err := ForType(typ)
		require.NoError(t, err)

		out, err := codec.Compress(nil)
		require.NoError(t, err)
		assert.Nil(t, out)
	}
}
