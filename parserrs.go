package stoich

import (
	"errors"
	"strconv"
)

// ErrMalformedFormula is the error that every formula input error unwraps to.
var ErrMalformedFormula = errors.New("malformed formula")

// LexError indicates a rune that cannot appear in a formula. It implements
// InputError.
type LexError struct {
	// Text is the invalid rune.
	Text string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrMalformedFormula
}

// BracketError is an error indicating an unmatched parenthesis. It implements
// InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Open is true if the unmatched parenthesis is an opening one.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open bracket ( with no close bracket")
	}
	return errpos(err.Col, "close bracket ) with no open bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrMalformedFormula
}

// CountError is an error indicating a count that cannot be applied: one with
// no element or group before it, a zero count, or a count too large to
// represent. It implements InputError.
type CountError struct {
	// Col is the position of the count.
	Col int
	// Count is the text of the count.
	Count string
	// Reason describes the problem.
	Reason string
}

func (err *CountError) Error() string {
	return errpos(err.Col, "count "+err.Count+" "+err.Reason)
}

func (err *CountError) Pos() int {
	return err.Col
}

func (err *CountError) Unwrap() error {
	return ErrMalformedFormula
}

// EmptyFormulaError is an error indicating a formula or parenthesized group
// that contains no elements. It implements InputError.
type EmptyFormulaError struct {
	// Col is the position of the token that ended the empty formula.
	Col int
	// End is the token that ended the empty formula, or the empty string if it
	// was the end of input.
	End string
}

func (err *EmptyFormulaError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no elements in formula")
	}
	return errpos(err.Col, "no elements up to "+strconv.Quote(err.End))
}

func (err *EmptyFormulaError) Pos() int {
	return err.Col
}

func (err *EmptyFormulaError) Unwrap() error {
	return ErrMalformedFormula
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CountError)(nil)
	_ InputError = (*EmptyFormulaError)(nil)
	_ InputError = (*EquationError)(nil)
)
