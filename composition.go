package stoich

import (
	"sort"
	"strconv"
	"strings"
)

// Composition maps element symbols to the number of atoms of that element in
// one formula unit. Every count in a Composition returned by Parse is at least
// one; absent elements have count zero.
type Composition map[string]int

// Count returns the number of atoms of the given element.
func (c Composition) Count(sym string) int {
	return c[sym]
}

// Atoms returns the total number of atoms.
func (c Composition) Atoms() int {
	n := 0
	for _, k := range c {
		n += k
	}
	return n
}

// Elements returns the element symbols in c in Hill order: carbon first,
// hydrogen second, then the rest alphabetically. If there is no carbon, all
// symbols including hydrogen are alphabetical.
func (c Composition) Elements() []string {
	r := make([]string, 0, len(c))
	for k := range c {
		r = append(r, k)
	}
	_, carbon := c["C"]
	sort.Slice(r, func(i, j int) bool {
		if carbon {
			if a, b := hillrank(r[i]), hillrank(r[j]); a != b {
				return a < b
			}
		}
		return r[i] < r[j]
	})
	return r
}

func hillrank(sym string) int {
	switch sym {
	case "C":
		return 0
	case "H":
		return 1
	}
	return 2
}

// Clone returns a copy of c.
func (c Composition) Clone() Composition {
	r := make(Composition, len(c))
	for k, v := range c {
		r[k] = v
	}
	return r
}

// Equal reports whether c and d have the same counts for every element.
func (c Composition) Equal(d Composition) bool {
	if len(c) != len(d) {
		return false
	}
	for k, v := range c {
		if d[k] != v {
			return false
		}
	}
	return true
}

// String formats c as a Hill formula, e.g. CH4 or CaH2O2. Counts of one are
// omitted.
func (c Composition) String() string {
	var b strings.Builder
	for _, sym := range c.Elements() {
		b.WriteString(sym)
		if k := c[sym]; k != 1 {
			b.WriteString(strconv.Itoa(k))
		}
	}
	return b.String()
}
