package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	errs "combgame/internal/errors"
)

const (
	// maxLiteral bounds integers and nim heaps written in notation.
	maxLiteral = 1 << 10
	// maxNesting bounds how deeply braces may nest in notation.
	maxNesting = 1 << 10

	// maxRender bounds the output of String for very large trees.
	maxRender = 4096

	namedRange = 16
)

// names maps the fingerprints of well-known canonical forms to how they are
// written.
var names = buildNames()

func buildNames() map[uint64]string {
	m := make(map[uint64]string)
	for n := -namedRange; n <= namedRange; n++ {
		m[Integer(n).fp] = strconv.Itoa(n)
	}
	m[star.fp] = "*"
	for n := uint(2); n <= namedRange; n++ {
		m[NimHeap(n).fp] = "*" + strconv.FormatUint(uint64(n), 10)
	}
	m[up.fp] = "^"
	m[down.fp] = "v"
	return m
}

// String writes g in brace notation, using names for integers, nimbers, ^
// and v wherever the structure matches their canonical form.
func (g *Game) String() string {
	r := &renderer{}
	r.game(g)
	return r.sb.String()
}

// renderer stops writing for good once maxRender bytes are out.
type renderer struct {
	sb   strings.Builder
	full bool
}

func (r *renderer) write(s string) {
	if r.full {
		return
	}
	if r.sb.Len()+len(s) > maxRender {
		r.sb.WriteString("…")
		r.full = true
		return
	}
	r.sb.WriteString(s)
}

func (r *renderer) game(g *Game) {
	if r.full {
		return
	}
	if name, ok := names[g.fp]; ok {
		r.write(name)
		return
	}
	r.write("{")
	r.options(g.left)
	r.write("|")
	r.options(g.right)
	r.write("}")
}

func (r *renderer) options(opts []*Game) {
	for i, o := range opts {
		if r.full {
			return
		}
		if i > 0 {
			r.write(", ")
		}
		r.game(o)
	}
}

// Parse reads a game written as 0, a signed integer, *, *n, ^, v or
// {a, b | c, d} with any of these nested inside the braces.
func Parse(s string) (*Game, error) {
	p := &parser{src: []rune(s)}
	g, err := p.game()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.errorf("trailing input %q", string(p.src[p.pos:]))
	}
	return g, nil
}

type parser struct {
	src   []rune
	pos   int
	depth int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.done() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: at %d: %s", errs.ErrInvalidNotation, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) game() (*Game, error) {
	p.skipSpace()
	if p.done() {
		return nil, p.errorf("unexpected end of input")
	}
	switch r := p.peek(); {
	case r == '{':
		p.pos++
		return p.braces()
	case r == '*':
		p.pos++
		if !unicode.IsDigit(p.peek()) {
			return star, nil
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		return NimHeap(uint(n)), nil
	case r == '^':
		p.pos++
		return up, nil
	case r == 'v':
		p.pos++
		return down, nil
	case r == '-':
		p.pos++
		if !unicode.IsDigit(p.peek()) {
			return nil, p.errorf("expected digits after '-'")
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		return Integer(-n), nil
	case unicode.IsDigit(r):
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		return Integer(n), nil
	default:
		return nil, p.errorf("unexpected %q", r)
	}
}

func (p *parser) number() (int, error) {
	start := p.pos
	for unicode.IsDigit(p.peek()) {
		p.pos++
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil || n > maxLiteral {
		return 0, p.errorf("number %q out of range", string(p.src[start:p.pos]))
	}
	return n, nil
}

func (p *parser) braces() (*Game, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.errorf("braces nested deeper than %d", maxNesting)
	}
	left, err := p.options('|')
	if err != nil {
		return nil, err
	}
	right, err := p.options('}')
	if err != nil {
		return nil, err
	}
	return Mk(left, right), nil
}

// options reads a comma separated list up to and including end.
func (p *parser) options(end rune) ([]*Game, error) {
	var opts []*Game
	p.skipSpace()
	if p.peek() == end {
		p.pos++
		return opts, nil
	}
	for {
		g, err := p.game()
		if err != nil {
			return nil, err
		}
		opts = append(opts, g)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case end:
			p.pos++
			return opts, nil
		default:
			if p.done() {
				return nil, p.errorf("expected %q", end)
			}
			return nil, p.errorf("unexpected %q, expected ',' or %q", p.peek(), end)
		}
	}
}
