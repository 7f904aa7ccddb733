// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package layered

import (
	"golang.org/x/exp/maps"
)

// Store is a key/value map organized as a chain of layers. Reads walk from
// the newest layer towards the root, writes always go to the newest layer.
// A new layer is opened by Push and either merged into its parent by Commit
// or dropped by Pop, which makes nested snapshots cheap to take and to
// discard.
//
// A Store is not safe for concurrent use.
type Store[K comparable, V any] struct {
	top *layer[K, V]
}

type layer[K comparable, V any] struct {
	parent  *layer[K, V]
	entries map[K]entry[V]
}

// entry is a stored value or a tombstone hiding the values of lower layers.
type entry[V any] struct {
	value   V
	deleted bool
}

func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{top: newLayer[K, V](nil)}
}

func newLayer[K comparable, V any](parent *layer[K, V]) *layer[K, V] {
	return &layer[K, V]{parent: parent, entries: map[K]entry[V]{}}
}

// Get returns the value visible for the given key and whether it exists.
func (s *Store[K, V]) Get(key K) (V, bool) {
	for cur := s.top; cur != nil; cur = cur.parent {
		if e, found := cur.entries[key]; found {
			if e.deleted {
				break
			}
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// GetOrDefault returns the value visible for the given key or the given
// default if there is none.
func (s *Store[K, V]) GetOrDefault(key K, def V) V {
	if value, found := s.Get(key); found {
		return value
	}
	return def
}

// Set records the value in the newest layer.
func (s *Store[K, V]) Set(key K, value V) {
	s.top.entries[key] = entry[V]{value: value}
}

// Delete hides the key in the newest layer.
func (s *Store[K, V]) Delete(key K) {
	if s.top.parent == nil {
		delete(s.top.entries, key)
		return
	}
	s.top.entries[key] = entry[V]{deleted: true}
}

// Push opens a new layer on top of the current one.
func (s *Store[K, V]) Push() {
	s.top = newLayer(s.top)
}

// Commit merges the newest layer into its parent. The merged layer is
// closed afterwards. Committing the root layer panics.
func (s *Store[K, V]) Commit() {
	parent := s.top.parent
	if parent == nil {
		panic("unable to commit root layer")
	}
	for key, e := range s.top.entries {
		if e.deleted && parent.parent == nil {
			delete(parent.entries, key)
			continue
		}
		parent.entries[key] = e
	}
	s.top = parent
}

// Pop drops the newest layer including all of its modifications. Popping
// the root layer panics.
func (s *Store[K, V]) Pop() {
	if s.top.parent == nil {
		panic("unable to pop root layer")
	}
	s.top = s.top.parent
}

// Depth returns the number of layers above the root layer.
func (s *Store[K, V]) Depth() int {
	res := 0
	for cur := s.top.parent; cur != nil; cur = cur.parent {
		res++
	}
	return res
}

// Keys returns the keys of all currently visible entries in unspecified
// order.
func (s *Store[K, V]) Keys() []K {
	seen := map[K]struct{}{}
	visible := map[K]struct{}{}
	for cur := s.top; cur != nil; cur = cur.parent {
		for key, e := range cur.entries {
			if _, found := seen[key]; found {
				continue
			}
			seen[key] = struct{}{}
			if !e.deleted {
				visible[key] = struct{}{}
			}
		}
	}
	return maps.Keys(visible)
}
