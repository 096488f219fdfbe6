package stoich

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// ErrUnknownElement is the error that every *UnknownElementError unwraps to.
var ErrUnknownElement = errors.New("unknown element")

// UnknownElementError is an error from a lookup for an element that is missing
// from a weight table.
type UnknownElementError struct {
	// Symbol is the element that was missing.
	Symbol string
}

func (err *UnknownElementError) Error() string {
	return "unknown element: " + strconv.Quote(err.Symbol)
}

func (err *UnknownElementError) Unwrap() error {
	return ErrUnknownElement
}

// WeightError indicates an atomic weight that is not a positive finite
// number, or an element symbol that is not one uppercase letter optionally
// followed by one lowercase letter.
type WeightError struct {
	Symbol string
	Weight float64
}

func (err *WeightError) Error() string {
	if !validSymbol(err.Symbol) {
		return "invalid element symbol " + strconv.Quote(err.Symbol)
	}
	return "invalid atomic weight for " + err.Symbol + ": " + strconv.FormatFloat(err.Weight, 'g', -1, 64)
}

func validSymbol(sym string) bool {
	switch len(sym) {
	case 1:
		return 'A' <= sym[0] && sym[0] <= 'Z'
	case 2:
		return 'A' <= sym[0] && sym[0] <= 'Z' && 'a' <= sym[1] && sym[1] <= 'z'
	}
	return false
}

// Table is a table of atomic weights in grams per mole used to compute molar
// masses. A Table is not modified after it is created, so it is safe to use
// concurrently.
type Table struct {
	weights map[string]*big.Float
	prec    uint
	digits  int
}

// TableOption is an option used when creating a table.
type TableOption interface {
	tableOption()
}

type (
	weightopt struct {
		sym string
		w   float64
	}
	weightsopt map[string]float64
	precopt    uint
	digitsopt  int
)

func (weightopt) tableOption()  {}
func (weightsopt) tableOption() {}
func (precopt) tableOption()    {}
func (digitsopt) tableOption()  {}

// SetWeight sets the atomic weight of one element in the table.
func SetWeight(sym string, w float64) TableOption {
	return weightopt{sym, w}
}

// SetWeights sets the atomic weights of any number of elements in the table.
func SetWeights(weights map[string]float64) TableOption {
	return weightsopt(weights)
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) TableOption {
	return precopt(prec)
}

// Digits rounds percent compositions to n decimal places. A negative n, the
// default, disables rounding.
func Digits(n int) TableOption {
	return digitsopt(n)
}

// NewTable creates a table from a map of element symbols to atomic weights.
// If no precision is given, the default is 64. The weights map is copied.
func NewTable(weights map[string]float64, opts ...TableOption) (*Table, error) {
	t := Table{prec: 64, digits: -1}
	return t.Clone(append([]TableOption{weightsopt(weights)}, opts...)...)
}

// Clone creates a copy of a table and applies options to it. If any weight is
// invalid, the result is nil and the error is a *WeightError.
func (t *Table) Clone(opts ...TableOption) (*Table, error) {
	n := Table{
		weights: make(map[string]*big.Float, len(t.weights)),
		prec:    t.prec,
		digits:  t.digits,
	}
	// Apply the last precision first so that every weight is set with it.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	for sym, w := range t.weights {
		n.weights[sym] = new(big.Float).SetPrec(n.prec).Set(w)
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case weightopt:
			if err := n.set(opt.sym, opt.w); err != nil {
				return nil, err
			}
		case weightsopt:
			for sym, w := range opt {
				if err := n.set(sym, w); err != nil {
					return nil, err
				}
			}
		case digitsopt:
			n.digits = int(opt)
		case precopt:
			// Already done. Do nothing.
		default:
			panic("stoich: unknown option type")
		}
	}
	return &n, nil
}

func (t *Table) set(sym string, w float64) error {
	if !validSymbol(sym) || w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return &WeightError{Symbol: sym, Weight: w}
	}
	t.weights[sym] = new(big.Float).SetPrec(t.prec).SetFloat64(w)
	return nil
}

// Prec returns the precision to which masses are computed.
func (t *Table) Prec() uint {
	return t.prec
}

// Weight returns a copy of the atomic weight of an element, or nil if the
// element is not in the table.
func (t *Table) Weight(sym string) *big.Float {
	w := t.weights[sym]
	if w == nil {
		return nil
	}
	return new(big.Float).Copy(w)
}

// Mass returns the molar mass of a composition in grams per mole. If an
// element is missing from the table, the error is an *UnknownElementError.
func (t *Table) Mass(c Composition) (*big.Float, error) {
	r := new(big.Float).SetPrec(t.prec)
	var x big.Float
	x.SetPrec(t.prec)
	for _, sym := range c.Elements() {
		w := t.weights[sym]
		if w == nil {
			return nil, &UnknownElementError{Symbol: sym}
		}
		x.SetInt64(int64(c[sym]))
		x.Mul(&x, w)
		r.Add(r, &x)
	}
	return r, nil
}

// MolarMass parses a formula and returns its molar mass in grams per mole.
func (t *Table) MolarMass(formula string) (*big.Float, error) {
	c, err := ParseString(formula)
	if err != nil {
		return nil, err
	}
	return t.Mass(c)
}

// PercentComposition parses a formula and returns the percentage of its molar
// mass contributed by each element. The percentages sum to 100 up to rounding.
func (t *Table) PercentComposition(formula string) (map[string]*big.Float, error) {
	c, err := ParseString(formula)
	if err != nil {
		return nil, err
	}
	total, err := t.Mass(c)
	if err != nil {
		return nil, err
	}
	hundred := new(big.Float).SetPrec(t.prec).SetInt64(100)
	r := make(map[string]*big.Float, len(c))
	for sym, k := range c {
		x := new(big.Float).SetPrec(t.prec).SetInt64(int64(k))
		x.Mul(x, t.weights[sym])
		x.Mul(x, hundred)
		x.Quo(x, total)
		if t.digits >= 0 {
			Round(x, x, t.digits)
		}
		r[sym] = x
	}
	return r, nil
}

// Round sets z to x rounded half away from zero to the given number of decimal
// places and returns z. Panics if digits is negative.
func Round(z, x *big.Float, digits int) *big.Float {
	if digits < 0 {
		panic("stoich: negative digits " + strconv.Itoa(digits))
	}
	prec := x.Prec()
	if prec == 0 {
		prec = 64
	}
	ten := new(big.Float).SetPrec(prec).SetInt64(10)
	n := new(big.Float).SetPrec(prec).SetInt64(int64(digits))
	scale := new(big.Float).SetPrec(prec)
	scale.Set(bigfloat.Pow(new(big.Float).SetPrec(prec), ten, n))
	// The power is an integer; snap away any error from the series.
	k, _ := scale.Add(scale, big.NewFloat(0.5)).Int(nil)
	scale.SetInt(k)
	y := new(big.Float).SetPrec(prec).Mul(x, scale)
	half := big.NewFloat(0.5)
	if y.Signbit() {
		y.Sub(y, half)
	} else {
		y.Add(y, half)
	}
	i, _ := y.Int(nil)
	y.SetInt(i)
	return z.SetPrec(prec).Quo(y, scale)
}
