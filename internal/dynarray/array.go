package dynarray

import (
	"context"
	"iter"
	"slices"
)

const (
	// DefaultCapacity is the capacity of an array created with New.
	DefaultCapacity = 8

	// GrowthFactor is the multiplier applied to capacity when more room is needed.
	GrowthFactor = 2
)

const (
	opGet    = "get"
	opSet    = "set"
	opInsert = "insert"
)

// Array is a contiguous, index-addressable sequence that grows on demand.
//
// The zero value is not usable; construct arrays with New, NewWithCapacity,
// NewFromSeq, NewFromSlice or NewFromStore.
type Array[T comparable] struct {
	buf    []T      // backing buffer; capacity is len(buf)
	length int      // live elements occupy buf[:length]
	dirty  bool     // mutated since construction or last successful save
	store  Store[T] // optional, not owned
}

// New creates an empty array with DefaultCapacity.
func New[T comparable]() *Array[T] {
	return &Array[T]{buf: make([]T, DefaultCapacity)}
}

// NewWithCapacity creates an empty array with the given capacity.
// Returns ErrInvalidArgument if capacity is not positive.
func NewWithCapacity[T comparable](capacity int) (*Array[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	return &Array[T]{buf: make([]T, capacity)}, nil
}

// NewFromSeq creates an array holding a copy of every element of seq.
// Capacity equals the element count; an empty sequence allocates nothing.
// Returns ErrNullArgument if seq is nil.
func NewFromSeq[T comparable](seq iter.Seq[T]) (*Array[T], error) {
	if seq == nil {
		return nil, ErrNullArgument
	}
	return fromItems(slices.Collect(seq)), nil
}

// NewFromSlice creates an array holding a copy of items.
// Returns ErrNullArgument if items is nil; an empty non-nil slice is accepted.
func NewFromSlice[T comparable](items []T) (*Array[T], error) {
	if items == nil {
		return nil, ErrNullArgument
	}
	return fromItems(items), nil
}

// NewFromStore creates an array from the contents of s and attaches s for Save.
//
// Returns ErrNullArgument if s is nil. An error from s.LoadAll is returned
// unmodified and no array is produced.
func NewFromStore[T comparable](ctx context.Context, s Store[T]) (*Array[T], error) {
	if s == nil {
		return nil, ErrNullArgument
	}
	items, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	a := fromItems(items)
	a.store = s
	return a, nil
}

// fromItems copies items into a buffer sized exactly to fit them.
func fromItems[T comparable](items []T) *Array[T] {
	a := &Array[T]{length: len(items)}
	if len(items) > 0 {
		a.buf = make([]T, len(items))
		copy(a.buf, items)
	}
	return a
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.length
}

// Cap returns the size of the backing buffer.
func (a *Array[T]) Cap() int {
	return len(a.buf)
}

// Dirty reports whether the array was mutated since construction or the
// last successful Save.
func (a *Array[T]) Dirty() bool {
	return a.dirty
}

// HasStore reports whether a store is attached.
func (a *Array[T]) HasStore() bool {
	return a.store != nil
}

// Get returns the element at index i.
func (a *Array[T]) Get(i int) (T, error) {
	if err := a.checkElementIndex(opGet, i); err != nil {
		var zero T
		return zero, err
	}
	return a.buf[i], nil
}

// Set replaces the element at index i.
func (a *Array[T]) Set(i int, v T) error {
	if err := a.checkElementIndex(opSet, i); err != nil {
		return err
	}
	a.buf[i] = v
	a.dirty = true
	return nil
}

// Append adds v after the last element.
func (a *Array[T]) Append(v T) {
	a.grow(a.length + 1)
	a.buf[a.length] = v
	a.length++
	a.dirty = true
}

// AppendAll adds every element of seq, in order, after the last element.
// The sequence is iterated exactly once. Returns ErrNullArgument if seq is nil.
func (a *Array[T]) AppendAll(seq iter.Seq[T]) error {
	if seq == nil {
		return ErrNullArgument
	}
	a.appendItems(slices.Collect(seq))
	return nil
}

// AppendSlice adds a copy of items after the last element.
// Returns ErrNullArgument if items is nil.
func (a *Array[T]) AppendSlice(items []T) error {
	if items == nil {
		return ErrNullArgument
	}
	a.appendItems(items)
	return nil
}

func (a *Array[T]) appendItems(items []T) {
	if len(items) == 0 {
		return
	}
	a.grow(a.length + len(items))
	copy(a.buf[a.length:], items)
	a.length += len(items)
	a.dirty = true
}

// Insert places v at index i, shifting elements at [i, Len()) one position
// right. Inserting at Len() appends.
func (a *Array[T]) Insert(i int, v T) error {
	if err := a.checkPositionIndex(opInsert, i); err != nil {
		return err
	}
	a.grow(a.length + 1)
	copy(a.buf[i+1:a.length+1], a.buf[i:a.length])
	a.buf[i] = v
	a.length++
	a.dirty = true
	return nil
}

// Remove deletes the first element equal to v and reports whether one was
// found. The array is untouched when v is absent.
func (a *Array[T]) Remove(v T) bool {
	i := a.IndexOf(v)
	if i < 0 {
		return false
	}
	copy(a.buf[i:a.length-1], a.buf[i+1:a.length])
	a.length--
	var zero T
	a.buf[a.length] = zero
	a.dirty = true
	return true
}

// IndexOf returns the position of the first element equal to v, or -1.
func (a *Array[T]) IndexOf(v T) int {
	for i := 0; i < a.length; i++ {
		if a.buf[i] == v {
			return i
		}
	}
	return -1
}

// Contains reports whether any element equals v.
func (a *Array[T]) Contains(v T) bool {
	return a.IndexOf(v) >= 0
}

// Slice returns a copy of the live elements.
func (a *Array[T]) Slice() []T {
	out := make([]T, a.length)
	copy(out, a.buf[:a.length])
	return out
}

// All returns an iterator over index/element pairs in index order.
// The iteration bound is Len() at the time ranging starts.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := a.length
		for i := 0; i < n; i++ {
			if !yield(i, a.buf[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over elements in index order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Save writes the live elements to the attached store.
//
// Save is a no-op when the array is clean or has no store. An error from
// SaveAll is returned unmodified and the array stays dirty.
func (a *Array[T]) Save(ctx context.Context) error {
	if !a.dirty || a.store == nil {
		return nil
	}
	if err := a.store.SaveAll(ctx, a.Slice()); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// grow ensures the buffer holds at least required elements.
func (a *Array[T]) grow(required int) {
	if required <= len(a.buf) {
		return
	}
	newCap := max(len(a.buf)*GrowthFactor, required)
	buf := make([]T, newCap)
	copy(buf, a.buf[:a.length])
	a.buf = buf
}

// checkElementIndex validates i against [0, length) for reads and writes.
func (a *Array[T]) checkElementIndex(op string, i int) error {
	if i < 0 || i >= a.length {
		return &IndexError{Op: op, Index: i, Length: a.length}
	}
	return nil
}

// checkPositionIndex validates i against [0, length] for insertion.
func (a *Array[T]) checkPositionIndex(op string, i int) error {
	if i < 0 || i > a.length {
		return &IndexError{Op: op, Index: i, Length: a.length}
	}
	return nil
}
