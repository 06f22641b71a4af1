package repository

import "sync"

// orderedStore is a mutex-guarded map that remembers first-insertion order.
// Replacing a value keeps its original position.
type orderedStore[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

func newOrderedStore[K comparable, V any]() *orderedStore[K, V] {
	return &orderedStore[K, V]{items: make(map[K]V)}
}

func (s *orderedStore[K, V]) put(key K, value V) (previous V, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, replaced = s.items[key]
	if !replaced {
		s.order = append(s.order, key)
	}
	s.items[key] = value
	return previous, replaced
}

func (s *orderedStore[K, V]) get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// update applies fn to the stored value in place. It reports false when key is absent.
func (s *orderedStore[K, V]) update(key K, fn func(*V)) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return v, false
	}
	fn(&v)
	s.items[key] = v
	return v, true
}

func (s *orderedStore[K, V]) remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *orderedStore[K, V]) values(keep func(V) bool) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.order))
	for _, k := range s.order {
		v := s.items[k]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *orderedStore[K, V]) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
