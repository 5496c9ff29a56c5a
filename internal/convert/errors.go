package convert

import (
	"errors"
	"fmt"
)

// Kind identifies which validation step rejected the input.
type Kind string

const (
	EmptyInput       Kind = "EmptyInput"
	InsufficientRows Kind = "InsufficientRows"
	ColumnMismatch   Kind = "ColumnMismatch"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrEmptyInput       = &Error{Kind: EmptyInput}
	ErrInsufficientRows = &Error{Kind: InsufficientRows}
	ErrColumnMismatch   = &Error{Kind: ColumnMismatch}
)

// Error is returned for every conversion failure.
type Error struct {
	Kind Kind

	// Row, Got and Want are set for ColumnMismatch only.
	// Row is 1-based with the header counted as row 1.
	Row  int
	Got  int
	Want int
}

func (e *Error) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "csv input is empty"
	case InsufficientRows:
		return "csv must contain a header row and at least one data row"
	case ColumnMismatch:
		return fmt.Sprintf("row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
	default:
		return "csv conversion failed"
	}
}

// Is reports whether target is a conversion error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind carried by err, or "" when err is not a
// conversion error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
