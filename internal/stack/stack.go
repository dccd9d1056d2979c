// Package stack provides a small generic LIFO used to track container
// nesting during scanning.
package stack

// Stack is a slice-backed LIFO. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

// NewWithCapacity pre-sizes the backing slice when the approximate
// depth is known, avoiding growth during scanning.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	top := len(s.items) - 1
	item := s.items[top]
	s.items = s.items[:top]
	return item, true
}

// PeekRef returns a pointer to the top element so callers can update
// it in place, or nil when the stack is empty.
func (s *Stack[T]) PeekRef() *T {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Size() int {
	return len(s.items)
}
