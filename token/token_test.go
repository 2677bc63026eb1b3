package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/markercfg/errs"
)

func TestParseSimpleObject(t *testing.T) {
	data := []byte(`{"a":1}`)
	toks, err := Parse(data, 16)
	require.NoError(t, err)
	require.Len(t, toks, 3)

	assert.Equal(t, Token{Type: Object, Start: 0, End: 7, Size: 1}, toks[0])
	assert.Equal(t, Token{Type: String, Start: 2, End: 3, Size: 1}, toks[1])
	assert.Equal(t, Token{Type: Primitive, Start: 5, End: 6, Size: 0}, toks[2])
	assert.Equal(t, "a", string(toks[1].Text(data)))
	assert.Equal(t, "1", string(toks[2].Text(data)))
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		count int
		root  Type
		size  int
	}{
		{"empty object", `{}`, 1, Object, 0},
		{"empty array", `[]`, 1, Array, 0},
		{"flat array", `[1, 2, 3]`, 4, Array, 3},
		{"object counts keys", `{"a":1,"b":[2,3]}`, 7, Object, 2},
		{"nested arrays", `[[1,2],[3,4]]`, 7, Array, 2},
		{"mixed primitives", `[true, false, null, -12]`, 5, Array, 4},
		{"nested object value", `{"a":{"b":1}}`, 5, Object, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Parse([]byte(tt.doc), 64)
			require.NoError(t, err)
			require.Len(t, toks, tt.count)
			assert.Equal(t, tt.root, toks[0].Type)
			assert.Equal(t, tt.size, toks[0].Size)
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	data := []byte(`{"k\"ey":"aéb\n"}`)
	toks, err := Parse(data, 16)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, `k\"ey`, string(toks[1].Text(data)))
	assert.Equal(t, `aéb\n`, string(toks[2].Text(data)))
}

func TestParseKeyOrderIndependent(t *testing.T) {
	// same document, keys reordered: token count and root size must agree
	a, err := Parse([]byte(`{"x":1,"y":[1,2]}`), 16)
	require.NoError(t, err)
	b, err := Parse([]byte(`{"y":[1,2],"x":1}`), 16)
	require.NoError(t, err)
	assert.Equal(t, len(a), len(b))
	assert.Equal(t, a[0].Size, b[0].Size)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unclosed object", `{"a":1`, errs.ErrPartial},
		{"unclosed array", `[1,2`, errs.ErrPartial},
		{"unterminated string", `{"a`, errs.ErrPartial},
		{"truncated escape", `{"a\u00`, errs.ErrPartial},
		{"unterminated primitive", `{"a":12`, errs.ErrPartial},
		{"mismatched bracket", `[1,2}`, errs.ErrSyntax},
		{"unmatched close", `}`, errs.ErrSyntax},
		{"stray character", `hello`, errs.ErrSyntax},
		{"bad escape", `{"a":"\x"}`, errs.ErrSyntax},
		{"bad unicode escape", `{"a":"\u00zz"}`, errs.ErrSyntax},
		{"primitive as key", `{1:2}`, errs.ErrSyntax},
		{"container as key", `{{}:1}`, errs.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Parse([]byte(tt.doc), 64)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, toks)
		})
	}
}

func TestParseTokenBudget(t *testing.T) {
	doc := []byte(`{"angles":[0,90,180,270]}`)

	// needs 1 object + 1 key + 1 array + 4 elements = 7 tokens
	toks, err := Parse(doc, 7)
	require.NoError(t, err)
	require.Len(t, toks, 7)

	toks, err = Parse(doc, 6)
	require.ErrorIs(t, err, errs.ErrTokenBudgetExceeded)
	assert.Nil(t, toks)
}

func TestSubtree(t *testing.T) {
	data := []byte(`{"num_angles":2,"marker_start":[[0,1],[2,3]],"tail":9}`)
	toks, err := Parse(data, 64)
	require.NoError(t, err)

	// whole document
	assert.Equal(t, len(toks), Subtree(toks, 0))

	// walk top-level keys using Subtree and collect their names
	var keys []string
	i := 1
	for k := 0; k < toks[0].Size; k++ {
		keys = append(keys, string(toks[i].Text(data)))
		i = i + 1 + Subtree(toks, i+1)
	}
	assert.Equal(t, []string{"num_angles", "marker_start", "tail"}, keys)
	assert.Equal(t, len(toks), i)
}

func TestSubtreeScalar(t *testing.T) {
	toks, err := Parse([]byte(`[1,"a",{}]`), 16)
	require.NoError(t, err)
	assert.Equal(t, 1, Subtree(toks, 1))
	assert.Equal(t, 1, Subtree(toks, 2))
	assert.Equal(t, 1, Subtree(toks, 3))
	assert.Equal(t, 0, Subtree(toks, len(toks)))
}

func TestParseDeepNesting(t *testing.T) {
	doc := []byte(`[[[[[[[[1]]]]]]]]`)
	toks, err := Parse(doc, 16)
	require.NoError(t, err)
	require.Len(t, toks, 9)
	assert.Equal(t, len(toks), Subtree(toks, 0))
}
