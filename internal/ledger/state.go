package ledger

// Map is a journaled key-value store. Values are treated as immutable:
// replace them with Set instead of mutating what Get returned.
type Map[K comparable, V any] struct {
	m map[K]V
}

// NewMap creates an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Get returns the value stored for k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.m[k]
	return v, ok
}

// Set stores v for k and records the undo step on tx.
func (m *Map[K, V]) Set(tx *Tx, k K, v V) {
	prev, existed := m.m[k]
	tx.OnRevert(func() {
		if existed {
			m.m[k] = prev
			return
		}
		delete(m.m, k)
	})
	m.m[k] = v
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return len(m.m)
}

// Range calls fn for every entry until it returns false. Order is unspecified.
func (m *Map[K, V]) Range(fn func(k K, v V) bool) {
	for k, v := range m.m {
		if !fn(k, v) {
			return
		}
	}
}

// Cell is a journaled single value.
type Cell[V any] struct {
	v V
}

// NewCell creates a Cell holding v.
func NewCell[V any](v V) *Cell[V] {
	return &Cell[V]{v: v}
}

// Get returns the current value.
func (c *Cell[V]) Get() V {
	return c.v
}

// Set replaces the value and records the undo step on tx.
func (c *Cell[V]) Set(tx *Tx, v V) {
	prev := c.v
	tx.OnRevert(func() { c.v = prev })
	c.v = v
}

// List is a journaled append-only sequence.
type List[V any] struct {
	items []V
}

// NewList creates an empty List.
func NewList[V any]() *List[V] {
	return &List[V]{}
}

// Append adds v to the end of the list.
func (l *List[V]) Append(tx *Tx, v V) {
	n := len(l.items)
	tx.OnRevert(func() { l.items = l.items[:n] })
	l.items = append(l.items, v)
}

// At returns the i-th element.
func (l *List[V]) At(i int) V {
	return l.items[i]
}

// Len returns the number of elements.
func (l *List[V]) Len() int {
	return len(l.items)
}

// Items returns a copy of the elements.
func (l *List[V]) Items() []V {
	out := make([]V, len(l.items))
	copy(out, l.items)
	return out
}
