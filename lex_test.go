package stoich

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		{"", []lexToken{{kind: tokenEOF, pos: 1}}, 0},
		// elements
		{"H", []lexToken{{text: "H", kind: tokenElem, pos: 1}, {kind: tokenEOF, pos: 2}}, 0},
		{"He", []lexToken{{text: "He", kind: tokenElem, pos: 1}, {kind: tokenEOF, pos: 3}}, 0},
		{"HeH", []lexToken{{text: "He", kind: tokenElem, pos: 1}, {text: "H", kind: tokenElem, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"HHe", []lexToken{{text: "H", kind: tokenElem, pos: 1}, {text: "He", kind: tokenElem, pos: 2}, {kind: tokenEOF, pos: 4}}, 0},
		{"Xy", []lexToken{{text: "Xy", kind: tokenElem, pos: 1}, {kind: tokenEOF, pos: 3}}, 0},
		// counts
		{"H2O", []lexToken{{text: "H", kind: tokenElem, pos: 1}, {text: "2", kind: tokenCount, pos: 2}, {text: "O", kind: tokenElem, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"C12", []lexToken{{text: "C", kind: tokenElem, pos: 1}, {text: "12", kind: tokenCount, pos: 2}, {kind: tokenEOF, pos: 4}}, 0},
		{"2", []lexToken{{text: "2", kind: tokenCount, pos: 1}, {kind: tokenEOF, pos: 2}}, 0},
		{"007", []lexToken{{text: "007", kind: tokenCount, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		// brackets
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"Ca(OH)2", []lexToken{
			{text: "Ca", kind: tokenElem, pos: 1},
			{text: "(", kind: tokenOpen, pos: 3},
			{text: "O", kind: tokenElem, pos: 4},
			{text: "H", kind: tokenElem, pos: 5},
			{text: ")", kind: tokenClose, pos: 6},
			{text: "2", kind: tokenCount, pos: 7},
			{kind: tokenEOF, pos: 8},
		}, 0},
		// erroneous symbols
		{"h", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 2}}, 1},
		{"H$", []lexToken{{text: "H", kind: tokenElem, pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 1},
		{" H", []lexToken{{pos: 1}, {text: "H", kind: tokenElem, pos: 2}, {kind: tokenEOF, pos: 3}}, 1},
		{"Heh", []lexToken{{text: "He", kind: tokenElem, pos: 1}, {pos: 3}, {kind: tokenEOF, pos: 4}}, 1},
		{"[]", []lexToken{{pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 2},
		{"H·O", []lexToken{{text: "H", kind: tokenElem, pos: 1}, {pos: 2}, {text: "O", kind: tokenElem, pos: 3}, {kind: tokenEOF, pos: 4}}, 1},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.next(); err != io.EOF; got, err = scan.next() {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexErrorText(t *testing.T) {
	scan := lex(strings.NewReader("H$"))
	scan.next()
	_, err := scan.next()
	lerr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %#v", err)
	}
	if lerr.Text != "$" || lerr.Col != 2 {
		t.Errorf("want $ at 2, got %q at %d", lerr.Text, lerr.Col)
	}
	if want := `2: invalid character "$"`; lerr.Error() != want {
		t.Errorf("want message %q, got %q", want, lerr.Error())
	}
}
