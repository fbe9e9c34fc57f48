package usecases

// identified is anything a Store can key.
type identified interface {
	ShapeID() string
}

// Store is an id-keyed collection that remembers insertion order. Values are
// held by value; Replace swaps the whole entry so no caller ever mutates a
// stored shape in place.
type Store[T identified] struct {
	byID  map[string]T
	order []string
}

func NewStore[T identified]() *Store[T] {
	return &Store[T]{byID: make(map[string]T)}
}

// Add appends v. An existing entry with the same ID is replaced in place.
func (s *Store[T]) Add(v T) {
	id := v.ShapeID()
	if _, ok := s.byID[id]; !ok {
		s.order = append(s.order, id)
	}
	s.byID[id] = v
}

// Replace swaps the entry with v's ID. Unknown IDs are ignored.
func (s *Store[T]) Replace(v T) bool {
	id := v.ShapeID()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	s.byID[id] = v
	return true
}

func (s *Store[T]) Get(id string) (T, bool) {
	v, ok := s.byID[id]
	return v, ok
}

func (s *Store[T]) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Remove deletes id and reports whether it was present.
func (s *Store[T]) Remove(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store[T]) Len() int { return len(s.order) }

// All returns a copy of the entries in insertion order.
func (s *Store[T]) All() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store[T]) Clear() {
	s.byID = make(map[string]T)
	s.order = nil
}
