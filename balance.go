package stoich

import (
	"errors"
	"strconv"
)

// ErrUnbalanceable is the error that every *UnbalanceableError unwraps to.
var ErrUnbalanceable = errors.New("unbalanceable equation")

// UnbalanceableError indicates an equation that has no unique balance with
// positive coefficients.
type UnbalanceableError struct {
	// Rank is the rank of the conservation matrix, if it was computed.
	Rank int
	// Species is the number of reactants and products.
	Species int
	// Reason describes why the equation cannot be balanced.
	Reason string
}

func (err *UnbalanceableError) Error() string {
	return "unbalanceable equation: " + err.Reason
}

func (err *UnbalanceableError) Unwrap() error {
	return ErrUnbalanceable
}

// Side identifies the side of an equation a species is on.
type Side int8

const (
	Reactant Side = iota
	Product
)

func (s Side) String() string {
	switch s {
	case Reactant:
		return "reactant"
	case Product:
		return "product"
	}
	return "Side(" + strconv.Itoa(int(s)) + ")"
}

// FormulaError attributes an error to one formula in an equation.
type FormulaError struct {
	// Side and Index locate the formula within the equation. Index counts from
	// zero within its side.
	Side  Side
	Index int
	// Formula is the formula text.
	Formula string
	// Err is the error from parsing the formula.
	Err error
}

func (err *FormulaError) Error() string {
	return err.Side.String() + " " + strconv.Itoa(err.Index+1) + " " + strconv.Quote(err.Formula) + ": " + err.Err.Error()
}

func (err *FormulaError) Unwrap() error {
	return err.Err
}

// Balance finds the smallest positive integer coefficients for the reactants
// and products that conserve every element. The results are aligned with
// the inputs. If a formula is invalid, the error is a *FormulaError. If there
// is no unique positive balance, the error is an *UnbalanceableError.
func Balance(reactants, products []string) (r, p []int, err error) {
	switch {
	case len(reactants) == 0:
		return nil, nil, &UnbalanceableError{Species: len(products), Reason: "no reactants"}
	case len(products) == 0:
		return nil, nil, &UnbalanceableError{Species: len(reactants), Reason: "no products"}
	}
	m, err := BuildMatrix(reactants, products)
	if err != nil {
		return nil, nil, err
	}
	x, err := m.Reduce().NullVector()
	if err != nil {
		return nil, nil, err
	}
	c, err := Normalize(x)
	if err != nil {
		var u *UnbalanceableError
		if errors.As(err, &u) {
			u.Rank = m.Rank()
		}
		return nil, nil, err
	}
	coeffs := make([]int, len(c))
	for i, n := range c {
		if !n.IsInt64() || int64(int(n.Int64())) != n.Int64() {
			return nil, nil, &UnbalanceableError{Species: len(c), Reason: "coefficient " + n.String() + " is too large"}
		}
		coeffs[i] = int(n.Int64())
	}
	return coeffs[:len(reactants):len(reactants)], coeffs[len(reactants):], nil
}
