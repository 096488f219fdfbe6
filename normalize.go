package stoich

import (
	"math/big"
	"strconv"
)

// Normalize scales a null space vector to the smallest positive integers with
// the same ratios. Denominators are cleared by their least common multiple,
// the sign is flipped if every entry is negative, and the result is divided by
// the greatest common divisor of its entries.
//
// If any entry is zero, or the entries have mixed signs, then no positive
// balance exists for the given split of reactants and products, and the error
// is an *UnbalanceableError.
func Normalize(v []*big.Rat) ([]*big.Int, error) {
	if len(v) == 0 {
		return nil, &UnbalanceableError{Reason: "no species"}
	}
	lcm := big.NewInt(1)
	var g big.Int
	for _, x := range v {
		d := x.Denom()
		if d.Cmp(lcm) == 0 || d.IsInt64() && d.Int64() == 1 {
			continue
		}
		// lcm = lcm * d / gcd(lcm, d)
		g.GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, &g))
	}

	r := make([]*big.Int, len(v))
	var pos, neg bool
	for i, x := range v {
		n := new(big.Int).Mul(x.Num(), lcm)
		n.Quo(n, x.Denom())
		switch n.Sign() {
		case 0:
			return nil, &UnbalanceableError{Species: len(v), Reason: "species " + strconv.Itoa(i) + " has a zero coefficient in every balance"}
		case 1:
			pos = true
		case -1:
			neg = true
		}
		r[i] = n
	}
	if pos && neg {
		return nil, &UnbalanceableError{Species: len(v), Reason: "no balance has all positive coefficients"}
	}
	if neg {
		for _, n := range r {
			n.Neg(n)
		}
	}

	g.Set(r[0])
	for _, n := range r[1:] {
		g.GCD(nil, nil, &g, n)
	}
	if g.Cmp(big.NewInt(1)) != 0 {
		for _, n := range r {
			n.Quo(n, &g)
		}
	}
	return r, nil
}
