package set

// Set is a collection of unique comparable values.
type Set[T comparable] struct {
	items map[T]struct{}
}

// New creates an empty Set sized for n items.
func New[T comparable](n int) *Set[T] {
	return &Set[T]{
		items: make(map[T]struct{}, n),
	}
}

// Insert adds item and reports whether it was absent before.
func (s *Set[T]) Insert(item T) bool {
	if _, ok := s.items[item]; ok {
		return false
	}
	s.items[item] = struct{}{}
	return true
}
