// Package collections holds small generic containers.
package collections

import (
	"fmt"
	"maps"
	"slices"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len is the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// Members returns all values in the set as a slice, in no particular order
func (s Set[T]) Members() []T {
	return slices.Collect(maps.Keys(s))
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}
