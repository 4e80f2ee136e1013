// Package htable provides the single hash-table implementation every
// string-keyed map in wisp builds on: the globals table, each class's
// method table, each instance's field table, the string intern pool, and
// the language-level Map value all wrap Table[V]. It is a thin generic
// layer over github.com/dolthub/swiss's SwissTable map, generalized into a
// reusable building block shared by every one of those call sites.
package htable

import "github.com/dolthub/swiss"

// Table is an open-addressed, string-keyed hash table holding values of
// type V.
type Table[V any] struct {
	m *swiss.Map[string, V]
}

// New returns an empty table with capacity hinted for at least sizeHint
// entries.
func New[V any](sizeHint int) *Table[V] {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Table[V]{m: swiss.NewMap[string, V](uint32(sizeHint))}
}

// Get returns the value stored for key, and whether it was present.
func (t *Table[V]) Get(key string) (V, bool) {
	return t.m.Get(key)
}

// Has reports whether key is present in the table.
func (t *Table[V]) Has(key string) bool {
	return t.m.Has(key)
}

// Set stores v under key, overwriting any existing entry.
func (t *Table[V]) Set(key string, v V) {
	t.m.Put(key, v)
}

// Delete removes key from the table, reporting whether it was present.
func (t *Table[V]) Delete(key string) bool {
	return t.m.Delete(key)
}

// Len returns the number of entries currently stored.
func (t *Table[V]) Len() int {
	return t.m.Count()
}

// Each calls fn for every entry, stopping early if fn returns false. Iterate
// order is unspecified, matching swiss.Map's own contract.
func (t *Table[V]) Each(fn func(key string, v V) bool) {
	// swiss.Map.Iter's callback reports "stop", the inverse of fn's result.
	t.m.Iter(func(k string, v V) bool { return !fn(k, v) })
}

// DeleteWhere removes every entry for which pred returns true. It is the
// "iteration-plus-conditional-removal" primitive the string intern pool
// needs to run mid-collection, between the GC's mark and sweep phases (see
// lang/intern.Pool.SweepUnmarked).
func (t *Table[V]) DeleteWhere(pred func(key string, v V) bool) {
	var doomed []string
	t.m.Iter(func(k string, v V) bool {
		if pred(k, v) {
			doomed = append(doomed, k)
		}
		return false
	})
	for _, k := range doomed {
		t.m.Delete(k)
	}
}
