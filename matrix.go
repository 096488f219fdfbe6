package stoich

import (
	"math/big"
	"strconv"
	"strings"
)

// Matrix is an atom conservation matrix over the rationals. Each row belongs
// to one element and each column to one species, reactants first. Reactant
// entries are the element's count in that species; product entries are the
// negated count. A vector x with Matrix·x = 0 is a set of coefficients that
// conserves every element.
type Matrix struct {
	elems   []string
	nreact  int
	ncols   int
	a       [][]*big.Rat
	reduced bool
}

// BuildMatrix parses each reactant and product formula and builds their
// conservation matrix. Rows are ordered by the first species that contains
// each element, reactants before products, and in Hill order within a
// species. If a formula fails to parse, the error is a *FormulaError
// identifying it.
func BuildMatrix(reactants, products []string) (*Matrix, error) {
	species := make([]Composition, 0, len(reactants)+len(products))
	var elems []string
	index := make(map[string]int)
	for i, f := range append(reactants[:len(reactants):len(reactants)], products...) {
		c, err := ParseString(f)
		if err != nil {
			side, k := Reactant, i
			if i >= len(reactants) {
				side, k = Product, i-len(reactants)
			}
			return nil, &FormulaError{Side: side, Index: k, Formula: f, Err: err}
		}
		for _, sym := range c.Elements() {
			if _, ok := index[sym]; !ok {
				index[sym] = len(elems)
				elems = append(elems, sym)
			}
		}
		species = append(species, c)
	}
	m := Matrix{
		elems:  elems,
		nreact: len(reactants),
		ncols:  len(species),
		a:      make([][]*big.Rat, len(elems)),
	}
	for i, sym := range elems {
		row := make([]*big.Rat, len(species))
		for j, c := range species {
			k := int64(c[sym])
			if j >= m.nreact {
				k = -k
			}
			row[j] = new(big.Rat).SetInt64(k)
		}
		m.a[i] = row
	}
	return &m, nil
}

// Rows returns the number of rows, which is the number of distinct elements.
func (m *Matrix) Rows() int {
	return len(m.a)
}

// Cols returns the number of columns, which is the number of species.
func (m *Matrix) Cols() int {
	return m.ncols
}

// Elements returns the element symbol of each row. After Reduce, each label
// follows its row through swaps, but the row is a combination of several
// elements' rows.
func (m *Matrix) Elements() []string {
	return append([]string(nil), m.elems...)
}

// Reactants returns the number of reactant columns. The remaining columns are
// products.
func (m *Matrix) Reactants() int {
	return m.nreact
}

// At returns a copy of the entry at row i and column j. Panics if either is out
// of range.
func (m *Matrix) At(i, j int) *big.Rat {
	return new(big.Rat).Set(m.a[i][j])
}

// Reduced reports whether m is in reduced row echelon form as produced by
// Reduce.
func (m *Matrix) Reduced() bool {
	return m.reduced
}

// Reduce returns the reduced row echelon form of m using Gauss-Jordan
// elimination with exact rational arithmetic. The pivot for each column is the
// first row at or below the current pivot row with a nonzero entry in that
// column. Columns with no such row are skipped. m is not modified.
func (m *Matrix) Reduce() *Matrix {
	r := m.clone()
	if r.reduced {
		return r
	}
	rows, cols := r.Rows(), r.Cols()
	a := r.a
	var t big.Rat
	for row, col := 0, 0; row < rows && col < cols; col++ {
		pivot := -1
		for i := row; i < rows; i++ {
			if a[i][col].Sign() != 0 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			continue
		}
		a[row], a[pivot] = a[pivot], a[row]
		r.elems[row], r.elems[pivot] = r.elems[pivot], r.elems[row]

		// Scale the pivot row so the pivot is exactly 1.
		inv := new(big.Rat).Inv(a[row][col])
		for j := col; j < cols; j++ {
			a[row][j].Mul(a[row][j], inv)
		}

		for i := 0; i < rows; i++ {
			if i == row || a[i][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(a[i][col])
			for j := col; j < cols; j++ {
				t.Mul(f, a[row][j])
				a[i][j].Sub(a[i][j], &t)
			}
		}
		row++
	}
	r.reduced = true
	return r
}

// pivots returns the pivot column of each row of a reduced matrix, or -1 for
// rows that are all zero.
func (m *Matrix) pivots() []int {
	p := make([]int, len(m.a))
	for i, row := range m.a {
		p[i] = -1
		for j, v := range row {
			if v.Sign() != 0 {
				p[i] = j
				break
			}
		}
	}
	return p
}

// Rank returns the rank of m.
func (m *Matrix) Rank() int {
	if !m.reduced {
		m = m.Reduce()
	}
	n := 0
	for _, p := range m.pivots() {
		if p >= 0 {
			n++
		}
	}
	return n
}

// NullVector returns a nonzero vector x such that m·x = 0. It requires the null
// space of m to be exactly one dimensional, i.e. that the equation has a
// unique balance up to scale. Otherwise, the error is an *UnbalanceableError.
// If m is not reduced, NullVector reduces a copy of it first.
//
// The free variable is set to 1, and the other entries are found by back
// substitution from the last pivot row upward. Entries are not necessarily
// integers or positive; see Normalize.
func (m *Matrix) NullVector() ([]*big.Rat, error) {
	if !m.reduced {
		m = m.Reduce()
	}
	cols := m.Cols()
	pivots := m.pivots()
	isPivot := make([]bool, cols)
	rank := 0
	for _, p := range pivots {
		if p >= 0 {
			isPivot[p] = true
			rank++
		}
	}
	free := -1
	switch cols - rank {
	case 0:
		return nil, &UnbalanceableError{Rank: rank, Species: cols, Reason: "only the trivial solution conserves every element"}
	case 1:
		for j, ok := range isPivot {
			if !ok {
				free = j
				break
			}
		}
	default:
		return nil, &UnbalanceableError{Rank: rank, Species: cols, Reason: strconv.Itoa(cols-rank) + " independent balances exist"}
	}

	x := make([]*big.Rat, cols)
	for j := range x {
		x[j] = new(big.Rat)
	}
	x[free].SetInt64(1)
	var s, t big.Rat
	for i := len(m.a) - 1; i >= 0; i-- {
		p := pivots[i]
		if p < 0 {
			continue
		}
		s.SetInt64(0)
		for j := p + 1; j < cols; j++ {
			t.Mul(m.a[i][j], x[j])
			s.Add(&s, &t)
		}
		x[p].Neg(&s)
	}
	return x, nil
}

// String formats m with one bracketed row per line, each labeled with its
// element.
func (m *Matrix) String() string {
	var b strings.Builder
	for i, row := range m.a {
		b.WriteString(m.elems[i])
		b.WriteString(" [")
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.RatString())
		}
		b.WriteString("]\n")
	}
	return b.String()
}

func (m *Matrix) clone() *Matrix {
	r := Matrix{
		elems:   append([]string(nil), m.elems...),
		nreact:  m.nreact,
		ncols:   m.ncols,
		a:       make([][]*big.Rat, len(m.a)),
		reduced: m.reduced,
	}
	for i, row := range m.a {
		r.a[i] = make([]*big.Rat, len(row))
		for j, v := range row {
			r.a[i][j] = new(big.Rat).Set(v)
		}
	}
	return &r
}
