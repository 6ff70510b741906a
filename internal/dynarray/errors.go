package dynarray

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a requested capacity is not positive.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNullArgument is returned when a required sequence or store is nil.
	ErrNullArgument = errors.New("null argument")

	// ErrIndexOutOfRange is returned when an index falls outside its valid bound.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// IndexError describes a rejected index.
//
// errors.Is(err, ErrIndexOutOfRange) reports true for every IndexError.
type IndexError struct {
	// Op is the operation that rejected the index ("get", "set", "insert").
	Op string

	// Index is the rejected index.
	Index int

	// Length is the array length at the time of the call.
	Length int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.bound())
}

// Is matches ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// bound is the exclusive upper bound for the operation.
func (e *IndexError) bound() int {
	if e.Op == opInsert {
		return e.Length + 1
	}
	return e.Length
}
