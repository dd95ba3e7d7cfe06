// Package worklist provides the explicit LIFO stack used in place of native
// recursion by the record traversal.
package worklist

import "errors"

// ErrBudgetExceeded is returned by Pop once more items were popped than the
// stack's budget allows.
var ErrBudgetExceeded = errors.New("worklist: budget exceeded")

// Stack is a LIFO of pending items. The zero value is ready to use and has no
// budget.
type Stack[T any] struct {
	items  []T
	budget int
	popped int
}

// New returns a Stack seeded with items. budget bounds the total number of
// pops (0 = unlimited).
func New[T any](budget int, items ...T) *Stack[T] {
	s := &Stack[T]{budget: budget}
	s.items = append(s.items, items...)
	return s
}

func (s *Stack[T]) Push(items ...T) { s.items = append(s.items, items...) }

func (s *Stack[T]) Len() int { return len(s.items) }

// Popped returns how many items have been popped so far.
func (s *Stack[T]) Popped() int { return s.popped }

// Pop removes and returns the most recently pushed item. ok is false when the
// stack is empty. Once the budget is spent Pop returns the item it refused to
// pop together with ErrBudgetExceeded and leaves the stack unchanged.
func (s *Stack[T]) Pop() (item T, ok bool, err error) {
	n := len(s.items)
	if n == 0 {
		return item, false, nil
	}
	if s.budget > 0 && s.popped >= s.budget {
		return s.items[n-1], false, ErrBudgetExceeded
	}
	item = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	s.popped++
	return item, true, nil
}
