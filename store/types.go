// Package store is a small example of composing hashmap.Map: a
// string-keyed store of arbitrary values, the same shape the teacher's
// store package put over its own hashmap.Map.
package store

import (
	"github.com/gramework/containers/hashmap"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/internal/nocopy"
)

// Store holds arbitrary values under string keys.
type Store struct {
	m      *hashmap.Map[string, interface{}]
	nocopy nocopy.Guard
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		m: hashmap.New[string, interface{}](
			hook.WithHash[string](hook.HashString),
			hook.WithCompare[string](hook.CompareOrdered[string]),
		),
	}
}

// Put sets key to v, replacing any existing value.
func (s *Store) Put(key string, v interface{}) {
	s.m.Put(key, v)
}

// Get returns the value stored for key, if any.
func (s *Store) Get(key string) (v interface{}, ok bool) {
	p, ok := s.m.Get(key)
	if !ok {
		return nil, false
	}
	return *p, true
}

// Delete removes key, reporting whether it was present.
func (s *Store) Delete(key string) bool {
	return s.m.Delete(key)
}

// Len reports the number of stored keys.
func (s *Store) Len() int { return s.m.Len() }
