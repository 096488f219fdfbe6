package stoich

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenElem is an element symbol, e.g. Ca.
	tokenElem
	// tokenCount is a run of decimal digits.
	tokenCount
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenElem:
		return "Elem"
	case tokenCount:
		return "Count"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, the result is
// an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	r, err := l.readRune()
	tok := lexToken{pos: l.rune}
	if err != nil {
		if errors.Is(err, io.EOF) {
			tok.kind = tokenEOF
			tok.pos++
			l.eof = true
			return tok, nil
		}
		return tok, err
	}
	switch {
	case 'A' <= r && r <= 'Z':
		l.buf.WriteRune(r)
		if err := l.scanLower(); err != nil {
			return tok, err
		}
		tok.text = l.buf.String()
		tok.kind = tokenElem
	case '0' <= r && r <= '9':
		l.buf.WriteRune(r)
		if err := l.scanDigits(); err != nil {
			return tok, err
		}
		tok.text = l.buf.String()
		tok.kind = tokenCount
	case r == '(':
		tok.text = "("
		tok.kind = tokenOpen
	case r == ')':
		tok.text = ")"
		tok.kind = tokenClose
	default:
		// Write the rune so that it shows up in the error message.
		l.buf.WriteRune(r)
		return tok, l.error(tok.pos)
	}
	return tok, nil
}

// scanLower consumes at most one lowercase letter following an uppercase one.
func (l *lexer) scanLower() error {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if 'a' <= r && r <= 'z' {
		l.buf.WriteRune(r)
		return nil
	}
	l.unreadRune()
	return nil
}

func (l *lexer) scanDigits() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r < '0' || '9' < r {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) error(col int) error {
	return &LexError{
		Text: l.buf.String(),
		Col:  col,
	}
}
