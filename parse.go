package stoich

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Formula = { Unit [ count ] }
// Unit = element | '(' Formula ')'
// element = 'A'..'Z' [ 'a'..'z' ]
// count = digit { digit }

// group is one level of parentheses being parsed.
type group struct {
	comp Composition
	// col is the position of the ( that opened the group, or 0 for the
	// outermost level.
	col int
}

// pending is the most recent unit whose count has not been decided yet. It is
// either a single element or a closed group.
type pending struct {
	elem  string
	group Composition
	col   int
}

func (p *pending) ok() bool {
	return p.elem != "" || p.group != nil
}

// parser holds the state of a single formula parse.
type parser struct {
	stack []group
	last  pending
}

func (p *parser) top() Composition {
	return p.stack[len(p.stack)-1].comp
}

// resolve finalizes the pending unit with count n, adding it into the
// innermost open group.
func (p *parser) resolve(n int, tok lexToken) error {
	dst := p.top()
	if p.last.elem != "" {
		if err := addcount(dst, p.last.elem, n, 1, tok); err != nil {
			return err
		}
	} else {
		for sym, k := range p.last.group {
			if err := addcount(dst, sym, k, n, tok); err != nil {
				return err
			}
		}
	}
	p.last = pending{}
	return nil
}

// flush resolves any pending unit with the default count of one.
func (p *parser) flush() error {
	if !p.last.ok() {
		return nil
	}
	return p.resolve(1, lexToken{text: "1", kind: tokenCount, pos: p.last.col})
}

// addcount adds k*mult atoms of sym to c.
func addcount(c Composition, sym string, k, mult int, tok lexToken) error {
	if mult != 0 && k > math.MaxInt/mult {
		return &CountError{Col: tok.pos, Count: tok.text, Reason: "overflows the atom count"}
	}
	k *= mult
	if c[sym] > math.MaxInt-k {
		return &CountError{Col: tok.pos, Count: tok.text, Reason: "overflows the atom count"}
	}
	c[sym] += k
	return nil
}

// Parse parses a chemical formula such as Mg3(PO4)2 into the number of atoms
// of each element it contains. Parentheses may nest to any depth. Counts of
// the same element are summed wherever they occur. If the formula is invalid,
// the result is nil and the error is an InputError.
func Parse(src io.RuneScanner) (Composition, error) {
	scan := lex(src)
	p := parser{stack: []group{{comp: Composition{}}}}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenElem:
			if err := p.flush(); err != nil {
				return nil, err
			}
			p.last = pending{elem: tok.text, col: tok.pos}
		case tokenCount:
			if !p.last.ok() {
				return nil, &CountError{Col: tok.pos, Count: tok.text, Reason: "follows no element or group"}
			}
			n, err := strconv.Atoi(tok.text)
			if err != nil {
				return nil, &CountError{Col: tok.pos, Count: tok.text, Reason: "is too large"}
			}
			if n == 0 {
				return nil, &CountError{Col: tok.pos, Count: tok.text, Reason: "is zero"}
			}
			if err := p.resolve(n, tok); err != nil {
				return nil, err
			}
		case tokenOpen:
			if err := p.flush(); err != nil {
				return nil, err
			}
			p.stack = append(p.stack, group{comp: Composition{}, col: tok.pos})
		case tokenClose:
			if err := p.flush(); err != nil {
				return nil, err
			}
			if len(p.stack) == 1 {
				return nil, &BracketError{Col: tok.pos}
			}
			g := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			if len(g.comp) == 0 {
				return nil, &EmptyFormulaError{Col: tok.pos, End: ")"}
			}
			p.last = pending{group: g.comp, col: g.col}
		case tokenEOF:
			if err := p.flush(); err != nil {
				return nil, err
			}
			if len(p.stack) > 1 {
				return nil, &BracketError{Col: p.stack[len(p.stack)-1].col, Open: true}
			}
			r := p.top()
			if len(r) == 0 {
				return nil, &EmptyFormulaError{Col: tok.pos}
			}
			return r, nil
		default:
			panic("stoich: unexpected token " + tok.String())
		}
	}
}

// ParseString is a shortcut to parse a formula from a string.
func ParseString(formula string) (Composition, error) {
	return Parse(strings.NewReader(formula))
}
