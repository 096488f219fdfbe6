// Package stoich parses chemical formulas and balances chemical equations.
//
// A formula like "Mg3(PO4)2" parses into the number of atoms of each element
// it contains. Parenthesized groups may nest and take a multiplier. Compositions
// combine with a table of atomic weights to give molar masses and percent
// compositions.
//
// Balancing builds a matrix with one row per element and one column per
// species and finds its null space with exact rational arithmetic, so "H2 + O2
// -> H2O" becomes "2 H2 + 1 O2 -> 2 H2O" without any floating point rounding.
// Equations with more than one independent balance are rejected rather than
// having one picked arbitrarily.
//
package stoich
