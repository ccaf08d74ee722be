// Package dispatch sequences effects: a bounded LIFO of pending effects and
// the weighted catalog that refills it.
package dispatch

import (
	"errors"
	"fmt"

	"flicker/internal/effect"
)

// DefaultCapacity is the number of effects in one randomized program.
const DefaultCapacity = 50

// ErrStackOverflow is returned by Push when the stack is full. The pushed
// effect is dropped; the stack is otherwise unchanged.
var ErrStackOverflow = errors.New("dispatch stack overflow")

// Stack is a fixed-capacity LIFO of effect identifiers.
// A Stack is NOT safe for concurrent use.
type Stack struct {
	items     []effect.Kind
	depth     int
	overflows int
}

// NewStack creates an empty stack. Capacities below 1 are raised to 1.
func NewStack(capacity int) *Stack {
	if capacity < 1 {
		capacity = 1
	}
	return &Stack{items: make([]effect.Kind, capacity)}
}

// Push places k on top. On a full stack the top stays at capacity-1, k is
// dropped and ErrStackOverflow is returned.
func (s *Stack) Push(k effect.Kind) error {
	if s.depth >= len(s.items) {
		s.depth = len(s.items)
		s.overflows++
		return fmt.Errorf("%w: capacity %d, dropped %s", ErrStackOverflow, len(s.items), k)
	}
	s.items[s.depth] = k
	s.depth++
	return nil
}

// Pop removes and returns the top effect. An empty stack yields
// (effect.None, false) and stays empty.
func (s *Stack) Pop() (effect.Kind, bool) {
	if s.depth <= 0 {
		s.depth = 0
		return effect.None, false
	}
	s.depth--
	k := s.items[s.depth]
	s.items[s.depth] = effect.None
	return k, true
}

// Peek returns the top effect without removing it.
func (s *Stack) Peek() (effect.Kind, bool) {
	if s.depth == 0 {
		return effect.None, false
	}
	return s.items[s.depth-1], true
}

func (s *Stack) Depth() int     { return s.depth }
func (s *Stack) Capacity() int  { return len(s.items) }
func (s *Stack) Empty() bool    { return s.depth == 0 }
func (s *Stack) Overflows() int { return s.overflows }

// Clear drops every pending effect.
func (s *Stack) Clear() {
	for i := 0; i < s.depth; i++ {
		s.items[i] = effect.None
	}
	s.depth = 0
}
