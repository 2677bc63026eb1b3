// Package token provides a bounded JSON tokenizer producing typed, positioned
// spans over a caller-owned byte buffer.
//
// The tokenizer does not build a document tree and does not copy input bytes.
// Each Token records its kind, its byte span within the source buffer, and,
// for containers, the number of immediate children. Consumers walk the flat
// token sequence; Subtree reports how many tokens a value occupies so nested
// values can be skipped without manual index bookkeeping.
//
// The token budget passed to Parse is a hard cap: documents requiring more
// tokens fail with errs.ErrTokenBudgetExceeded rather than being truncated.
package token

// Type classifies a JSON token.
type Type uint8

const (
	Undefined Type = iota
	Object
	Array
	String
	Primitive
)

func (t Type) String() string {
	switch t {
	case Object:
		return "Object"
	case Array:
		return "Array"
	case String:
		return "String"
	case Primitive:
		return "Primitive"
	default:
		return "Undefined"
	}
}

// Token is a typed span over the source buffer.
//
// Start and End are byte offsets with End exclusive. For String tokens the
// span excludes the surrounding quotes. Size is the number of keys for an
// Object, the number of elements for an Array, and for a String used as an
// object key the number of values bound to it (1 in well-formed input);
// otherwise 0.
type Token struct {
	Type  Type
	Start int
	End   int
	Size  int
}

// Text returns the raw bytes the token spans within data.
func (t Token) Text(data []byte) []byte {
	return data[t.Start:t.End]
}

// Subtree reports the number of tokens occupied by the value starting at
// index i, including the token at i itself. For scalars this is 1; for
// containers it covers every descendant token, so `i + Subtree(toks, i)` is
// the index of the next sibling value.
func Subtree(toks []Token, i int) int {
	if i < 0 || i >= len(toks) {
		return 0
	}
	switch toks[i].Type {
	case Object:
		n := 1
		for k := 0; k < toks[i].Size; k++ {
			n++ // key
			n += Subtree(toks, i+n)
		}
		return n
	case Array:
		n := 1
		for e := 0; e < toks[i].Size; e++ {
			n += Subtree(toks, i+n)
		}
		return n
	default:
		return 1
	}
}
