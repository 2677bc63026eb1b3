package token

import (
	"fmt"

	"github.com/arloliu/markercfg/errs"
)

// Parse tokenizes data into at most maxTokens tokens.
//
// Tokens are emitted in document order: each container token is followed by
// the tokens of its descendants. Parse validates enough structure to make the
// token sequence safe to walk (matched brackets, terminated strings, legal
// escapes); it is not a full JSON validator.
//
// Errors:
//   - errs.ErrTokenBudgetExceeded: the document needs more than maxTokens tokens
//   - errs.ErrSyntax: malformed input (stray characters, mismatched brackets)
//   - errs.ErrPartial: input ends inside an unterminated value
func Parse(data []byte, maxTokens int) ([]Token, error) {
	p := parser{
		data:  data,
		max:   maxTokens,
		super: -1,
		toks:  make([]Token, 0, min(maxTokens, 128)),
	}
	if err := p.run(); err != nil {
		return nil, err
	}

	return p.toks, nil
}

type parser struct {
	data  []byte
	pos   int
	max   int
	super int // index of the enclosing container or key token, -1 at top level
	toks  []Token
}

func (p *parser) run() error {
	for ; p.pos < len(p.data); p.pos++ {
		c := p.data[p.pos]
		switch c {
		case '{', '[':
			if err := p.openContainer(c); err != nil {
				return err
			}
		case '}', ']':
			if err := p.closeContainer(c); err != nil {
				return err
			}
		case '"':
			if err := p.scanString(); err != nil {
				return err
			}
			if p.super != -1 {
				p.toks[p.super].Size++
			}
		case ' ', '\t', '\r', '\n':
			// skip whitespace
		case ':':
			p.super = len(p.toks) - 1
		case ',':
			if p.super != -1 && p.toks[p.super].Type != Object && p.toks[p.super].Type != Array {
				// value finished; hand control back to the enclosing container
				for i := len(p.toks) - 1; i >= 0; i-- {
					t := &p.toks[i]
					if (t.Type == Object || t.Type == Array) && t.Start != -1 && t.End == -1 {
						p.super = i
						break
					}
				}
			}
		default:
			if c == '-' || (c >= '0' && c <= '9') || c == 't' || c == 'f' || c == 'n' {
				if err := p.scanPrimitive(); err != nil {
					return err
				}
				if p.super != -1 {
					p.toks[p.super].Size++
				}

				continue
			}

			return fmt.Errorf("%w: unexpected %q at offset %d", errs.ErrSyntax, c, p.pos)
		}
	}

	for i := len(p.toks) - 1; i >= 0; i-- {
		if p.toks[i].Start != -1 && p.toks[i].End == -1 {
			return fmt.Errorf("%w: unclosed container starting at offset %d", errs.ErrPartial, p.toks[i].Start)
		}
	}

	return nil
}

func (p *parser) alloc() (int, error) {
	if len(p.toks) >= p.max {
		return -1, fmt.Errorf("%w: document requires more than %d tokens", errs.ErrTokenBudgetExceeded, p.max)
	}
	p.toks = append(p.toks, Token{Start: -1, End: -1})

	return len(p.toks) - 1, nil
}

func (p *parser) openContainer(c byte) error {
	if p.super != -1 && p.toks[p.super].Type == Object {
		return fmt.Errorf("%w: container cannot be an object key at offset %d", errs.ErrSyntax, p.pos)
	}

	i, err := p.alloc()
	if err != nil {
		return err
	}
	if p.super != -1 {
		p.toks[p.super].Size++
	}

	tok := &p.toks[i]
	tok.Start = p.pos
	if c == '{' {
		tok.Type = Object
	} else {
		tok.Type = Array
	}
	p.super = i

	return nil
}

func (p *parser) closeContainer(c byte) error {
	want := Object
	if c == ']' {
		want = Array
	}

	i := len(p.toks) - 1
	for ; i >= 0; i-- {
		t := &p.toks[i]
		if t.Start != -1 && t.End == -1 {
			if t.Type != want {
				return fmt.Errorf("%w: mismatched %q at offset %d", errs.ErrSyntax, c, p.pos)
			}
			t.End = p.pos + 1

			break
		}
	}
	if i == -1 {
		return fmt.Errorf("%w: unmatched %q at offset %d", errs.ErrSyntax, c, p.pos)
	}

	p.super = -1
	for i--; i >= 0; i-- {
		if p.toks[i].Start != -1 && p.toks[i].End == -1 {
			p.super = i

			break
		}
	}

	return nil
}

// scanString consumes a quoted string. On return p.pos is at the closing
// quote; the token span excludes both quotes.
func (p *parser) scanString() error {
	start := p.pos
	for p.pos++; p.pos < len(p.data); p.pos++ {
		c := p.data[p.pos]
		if c == '"' {
			i, err := p.alloc()
			if err != nil {
				return err
			}
			p.toks[i] = Token{Type: String, Start: start + 1, End: p.pos}

			return nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.data) {
				break
			}
			switch p.data[p.pos] {
			case '"', '/', '\\', 'b', 'f', 'r', 'n', 't':
			case 'u':
				for k := 0; k < 4; k++ {
					p.pos++
					if p.pos >= len(p.data) {
						return fmt.Errorf("%w: truncated unicode escape at offset %d", errs.ErrPartial, start)
					}
					if !isHex(p.data[p.pos]) {
						return fmt.Errorf("%w: invalid unicode escape at offset %d", errs.ErrSyntax, p.pos)
					}
				}
			default:
				return fmt.Errorf("%w: invalid escape %q at offset %d", errs.ErrSyntax, p.data[p.pos], p.pos)
			}
		}
	}

	return fmt.Errorf("%w: unterminated string starting at offset %d", errs.ErrPartial, start)
}

// scanPrimitive consumes a number, boolean or null. On return p.pos is at the
// last byte of the primitive so the main loop lands on the delimiter next.
func (p *parser) scanPrimitive() error {
	if p.super != -1 {
		t := p.toks[p.super]
		if t.Type == Object || (t.Type == String && t.Size != 0) {
			return fmt.Errorf("%w: primitive cannot be an object key at offset %d", errs.ErrSyntax, p.pos)
		}
	}

	start := p.pos
	for ; p.pos < len(p.data); p.pos++ {
		switch p.data[p.pos] {
		case '\t', '\r', '\n', ' ', ',', ']', '}', ':':
			i, err := p.alloc()
			if err != nil {
				return err
			}
			p.toks[i] = Token{Type: Primitive, Start: start, End: p.pos}
			p.pos--

			return nil
		}
		if p.data[p.pos] < 32 || p.data[p.pos] >= 127 {
			return fmt.Errorf("%w: invalid byte %#x in primitive at offset %d", errs.ErrSyntax, p.data[p.pos], p.pos)
		}
	}

	return fmt.Errorf("%w: unterminated primitive starting at offset %d", errs.ErrPartial, start)
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
