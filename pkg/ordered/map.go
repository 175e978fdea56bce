// Package ordered provides an insertion-ordered string-keyed mapping.
//
// Configuration groups are rendered into PHP statements in the order they
// were declared, and that order is part of the rendered block checksum, so
// every configuration value that reaches the settings renderer travels in a
// *Map rather than a Go map.
//
// Values stored in a Map are one of: nil, bool, int64, float64, string,
// []any or *Map.
package ordered

import (
	"strings"
)

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is an insertion-ordered mapping from string keys to values.
// The zero value is not usable; create maps with New.
type Map struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty Map.
func New() *Map {
	return &Map{index: make(map[string]int)}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining entries.
func (m *Map) Delete(key string) {
	i, ok := m.index[key]
	if !ok {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Key] = j
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Lookup resolves a dotted path such as "drupal.settings".
// A key that itself contains dots is matched before descending, so
// "drupal.settings.config.system.logging" finds a "system.logging" key.
func (m *Map) Lookup(path string) (any, bool) {
	if m == nil || path == "" {
		return nil, false
	}
	if v, ok := m.Get(path); ok {
		return v, true
	}
	parts := strings.Split(path, ".")
	for i := 1; i < len(parts); i++ {
		head := strings.Join(parts[:i], ".")
		v, ok := m.Get(head)
		if !ok {
			continue
		}
		child, ok := v.(*Map)
		if !ok {
			continue
		}
		if found, ok := child.Lookup(strings.Join(parts[i:], ".")); ok {
			return found, true
		}
	}
	return nil, false
}

// SetPath stores value under a dotted path, creating intermediate maps.
// An intermediate value that is not a map is replaced.
func (m *Map) SetPath(path string, value any) {
	parts := strings.Split(path, ".")
	cur := m
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.Get(p)
		child, isMap := next.(*Map)
		if !ok || !isMap {
			child = New()
			cur.Set(p, child)
		}
		cur = child
	}
	cur.Set(parts[len(parts)-1], value)
}

// Merge deep-merges src into m. Nested maps are merged key by key; any other
// value in src replaces the one in m. Keys new to m are appended in src order.
func (m *Map) Merge(src *Map) {
	if src == nil {
		return
	}
	for _, e := range src.entries {
		srcMap, srcIsMap := e.Value.(*Map)
		if existing, ok := m.Get(e.Key); ok && srcIsMap {
			if dstMap, dstIsMap := existing.(*Map); dstIsMap {
				dstMap.Merge(srcMap)
				continue
			}
		}
		m.Set(e.Key, cloneValue(e.Value))
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := New()
	for _, e := range m.entries {
		out.Set(e.Key, cloneValue(e.Value))
	}
	return out
}

// ToPlain converts m into nested Go maps and slices. Order is lost.
func (m *Map) ToPlain() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, e := range m.entries {
		out[e.Key] = toPlain(e.Value)
	}
	return out
}

// Walk calls fn for every value of m, depth first, and replaces the value
// with the one fn returns. Maps and sequences are descended into rather than
// passed to fn.
func (m *Map) Walk(fn func(v any) any) {
	for i := range m.entries {
		m.entries[i].Value = walkValue(m.entries[i].Value, fn)
	}
}

func walkValue(v any, fn func(any) any) any {
	switch t := v.(type) {
	case *Map:
		t.Walk(fn)
		return t
	case []any:
		for i := range t {
			t[i] = walkValue(t[i], fn)
		}
		return t
	default:
		return fn(v)
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToPlain()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}
