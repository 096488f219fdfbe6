package stoich

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedEquation is the error that every *EquationError unwraps to.
var ErrMalformedEquation = errors.New("malformed equation")

// Arrows contains the separators accepted between the reactants and products
// of an equation, longest first.
var Arrows = []string{"->", "=>", "→", "="}

// EquationError indicates an equation whose text cannot be split into
// reactants and products. It implements InputError.
type EquationError struct {
	// Col is the rune position of the problem.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *EquationError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *EquationError) Pos() int {
	return err.Col
}

func (err *EquationError) Unwrap() error {
	return ErrMalformedEquation
}

// Equation is an unbalanced chemical equation.
type Equation struct {
	Reactants []string
	Products  []string
}

// ParseEquation splits an equation such as "H2 + O2 -> H2O" into its reactant
// and product formulas. Exactly one arrow must appear, and species on each
// side are separated by +. Spaces around species are ignored. The formulas
// themselves are not parsed until the equation is balanced.
func ParseEquation(s string) (Equation, error) {
	at, arrow := -1, ""
	for i := 0; i < len(s); {
		var a string
		for _, x := range Arrows {
			if strings.HasPrefix(s[i:], x) {
				a = x
				break
			}
		}
		if a == "" {
			_, sz := utf8.DecodeRuneInString(s[i:])
			i += sz
			continue
		}
		if at >= 0 {
			return Equation{}, &EquationError{Col: runecol(s, i), Msg: "second arrow " + strconv.Quote(a)}
		}
		at, arrow = i, a
		i += len(a)
	}
	if at < 0 {
		return Equation{}, &EquationError{Col: utf8.RuneCountInString(s) + 1, Msg: "no arrow between reactants and products"}
	}
	r, err := splitSpecies(s, 0, at)
	if err != nil {
		return Equation{}, err
	}
	p, err := splitSpecies(s, at+len(arrow), len(s))
	if err != nil {
		return Equation{}, err
	}
	return Equation{Reactants: r, Products: p}, nil
}

// splitSpecies splits s[start:end] on + into trimmed, nonempty formulas.
func splitSpecies(s string, start, end int) ([]string, error) {
	var r []string
	for i := start; ; {
		j := strings.IndexByte(s[i:end], '+')
		if j < 0 {
			j = end
		} else {
			j += i
		}
		f := strings.TrimSpace(s[i:j])
		if f == "" {
			return nil, &EquationError{Col: runecol(s, j), Msg: "missing species"}
		}
		r = append(r, f)
		if j == end {
			return r, nil
		}
		i = j + 1
	}
}

// runecol converts a byte offset into s to a 1-based rune column.
func runecol(s string, off int) int {
	return utf8.RuneCountInString(s[:off]) + 1
}

// Balance balances e. See the Balance function.
func (e Equation) Balance() (*Balanced, error) {
	r, p, err := Balance(e.Reactants, e.Products)
	if err != nil {
		return nil, err
	}
	return &Balanced{Equation: e, ReactantCoeffs: r, ProductCoeffs: p}, nil
}

// Balanced is an equation along with its stoichiometric coefficients.
type Balanced struct {
	Equation
	ReactantCoeffs []int
	ProductCoeffs  []int
}

// String formats b as e.g. "2 H2 + 1 O2 -> 2 H2O". Every coefficient is
// written, including ones.
func (b *Balanced) String() string {
	var s strings.Builder
	side := func(fs []string, cs []int) {
		for i, f := range fs {
			if i > 0 {
				s.WriteString(" + ")
			}
			s.WriteString(strconv.Itoa(cs[i]))
			s.WriteByte(' ')
			s.WriteString(f)
		}
	}
	side(b.Reactants, b.ReactantCoeffs)
	s.WriteString(" -> ")
	side(b.Products, b.ProductCoeffs)
	return s.String()
}

// Check verifies that b conserves every element. It returns an
// *UnbalanceableError naming the first element that is not conserved.
func (b *Balanced) Check() error {
	if len(b.ReactantCoeffs) != len(b.Reactants) || len(b.ProductCoeffs) != len(b.Products) {
		return &UnbalanceableError{Species: len(b.Reactants) + len(b.Products), Reason: "coefficient count does not match species count"}
	}
	total := make(map[string]int)
	var order []string
	add := func(fs []string, cs []int, sign int, side Side) error {
		for i, f := range fs {
			c, err := ParseString(f)
			if err != nil {
				return &FormulaError{Side: side, Index: i, Formula: f, Err: err}
			}
			for _, sym := range c.Elements() {
				if _, ok := total[sym]; !ok {
					order = append(order, sym)
				}
				total[sym] += sign * cs[i] * c[sym]
			}
		}
		return nil
	}
	if err := add(b.Reactants, b.ReactantCoeffs, 1, Reactant); err != nil {
		return err
	}
	if err := add(b.Products, b.ProductCoeffs, -1, Product); err != nil {
		return err
	}
	for _, sym := range order {
		if d := total[sym]; d != 0 {
			return &UnbalanceableError{Species: len(b.Reactants) + len(b.Products), Reason: sym + " is not conserved (off by " + strconv.Itoa(d) + ")"}
		}
	}
	return nil
}
