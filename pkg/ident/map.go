package ident

// entry pairs a value with the original-cased key it was stored under, so
// GetOriginalKey and Range can recover the programmer's own spelling.
type entry[V any] struct {
	key   string
	value V
}

// Map is a case-insensitive string-keyed map that preserves the original
// casing of each key. Lookups are normalized through Normalize; the casing
// last used in Set wins for GetOriginalKey/Range/Keys.
type Map[V any] struct {
	entries map[string]entry[V]
}

// NewMap creates an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V])}
}

// NewMapWithCapacity creates an empty Map pre-sized for capacity entries.
func NewMapWithCapacity[V any](capacity int) *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V], capacity)}
}

// Set stores value under key, normalizing for lookup. A later Set with the
// same key in any casing overwrites both the value and the stored casing.
func (m *Map[V]) Set(key string, value V) {
	m.entries[Normalize(key)] = entry[V]{key: key, value: value}
}

// SetIfAbsent stores value under key only if key is not already present.
// Returns true if the value was stored, false if key already existed.
func (m *Map[V]) SetIfAbsent(key string, value V) bool {
	norm := Normalize(key)
	if _, ok := m.entries[norm]; ok {
		return false
	}
	m.entries[norm] = entry[V]{key: key, value: value}
	return true
}

// Get retrieves the value stored under key (case-insensitive).
func (m *Map[V]) Get(key string) (V, bool) {
	e, ok := m.entries[Normalize(key)]
	return e.value, ok
}

// GetOriginalKey returns the casing key was last Set under, or "" if absent.
func (m *Map[V]) GetOriginalKey(key string) string {
	e, ok := m.entries[Normalize(key)]
	if !ok {
		return ""
	}
	return e.key
}

// Has reports whether key is present (case-insensitive).
func (m *Map[V]) Has(key string) bool {
	_, ok := m.entries[Normalize(key)]
	return ok
}

// Delete removes key, if present, and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	k := Normalize(key)
	_, ok := m.entries[k]
	delete(m.entries, k)
	return ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.entries)
}

// Keys returns the original-cased keys, in unspecified order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Range calls f for each entry with its original-cased key, stopping early
// if f returns false. Iteration order is unspecified.
func (m *Map[V]) Range(f func(key string, value V) bool) {
	for _, e := range m.entries {
		if !f(e.key, e.value) {
			return
		}
	}
}

// Clear removes all entries.
func (m *Map[V]) Clear() {
	m.entries = make(map[string]entry[V])
}

// Clone returns a shallow copy: entries are copied but values themselves are
// not deep-copied (pointer values remain shared with the original map).
func (m *Map[V]) Clone() *Map[V] {
	clone := NewMapWithCapacity[V](len(m.entries))
	for k, e := range m.entries {
		clone.entries[k] = e
	}
	return clone
}
