// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package value defines the canonical value universe exchanged between
// contracts and written to storage, together with the conversions from and
// to host-language types.
//
// The canonical universe consists of
//   - nil (absent),
//   - bool,
//   - *big.Int (all integer widths),
//   - []byte,
//   - string,
//   - common.Address,
//   - []any lists of canonical values, and
//   - *Map, ordered maps from strings to canonical values.
package value

import (
	"bytes"
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
)

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is a map from strings to canonical values preserving the insertion
// order of its keys.
type Map struct {
	keys   []string
	values map[string]any
}

func NewMap(entries ...Entry) *Map {
	res := &Map{values: make(map[string]any, len(entries))}
	for _, e := range entries {
		res.Set(e.Key, e.Value)
	}
	return res
}

// Set adds or replaces an entry. New keys are appended to the key order.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, found := m.values[key]; !found {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (any, bool) {
	value, found := m.values[key]
	return value, found
}

func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []Entry {
	res := make([]Entry, 0, len(m.keys))
	for _, key := range m.keys {
		res = append(res, Entry{Key: key, Value: m.values[key]})
	}
	return res
}

// IsCanonical reports whether x is a member of the canonical universe.
func IsCanonical(x any) bool {
	switch v := x.(type) {
	case nil, bool, []byte, string, common.Address:
		return true
	case *big.Int:
		return v != nil
	case []any:
		for _, cur := range v {
			if !IsCanonical(cur) {
				return false
			}
		}
		return true
	case *Map:
		if v == nil {
			return false
		}
		for _, key := range v.keys {
			if !IsCanonical(v.values[key]) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal compares two canonical values. Maps are equal if they hold the same
// entries regardless of their key order.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case *big.Int:
		y, ok := b.(*big.Int)
		return ok && x.Cmp(y) == 0
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case string:
		y, ok := b.(string)
		return ok && x == y
	case common.Address:
		y, ok := b.(common.Address)
		return ok && x == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, key := range x.keys {
			other, found := y.values[key]
			if !found || !Equal(x.values[key], other) {
				return false
			}
		}
		return true
	}
	return false
}
