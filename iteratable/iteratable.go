/*
Package iteratable implements an iteratable container data structure.

Set is a special purpose set type, suitable mainly for implementing
algorithms around scanners, parsers, etc. These kinds of algorithms are
often more straightforward to describe as set constructions and operations.
The distinguishing feature is the iteration protocol: elements added to a
set while it is being iterated are visited by the running iteration, which
makes a Set double as the work-list of a fixpoint computation. That is
exactly the shape of the inner loop of an Earley parser.

Unusually, all set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package iteratable

// Set is an iteratable set. The zero value is not usable; create sets with
// NewSet. Elements must be comparable and must not be nil.
type Set struct {
	items   []interface{} // insertion order; removed elements leave a nil slot
	index   map[interface{}]int
	cursor  int
	current interface{}
}

// NewSet creates an empty set. size is a capacity hint and may be 0.
func NewSet(size int) *Set {
	if size < 0 {
		size = 0
	}
	return &Set{
		items:  make([]interface{}, 0, size),
		index:  make(map[interface{}]int, size),
		cursor: -1,
	}
}

// Add inserts an element into the set. Adding an element twice is a no-op.
// If an iteration is running, the new element will be visited by it.
func (s *Set) Add(el interface{}) {
	if el == nil {
		return
	}
	if _, ok := s.index[el]; ok {
		return
	}
	s.index[el] = len(s.items)
	s.items = append(s.items, el)
}

// Remove deletes an element from the set, if present.
func (s *Set) Remove(el interface{}) {
	if i, ok := s.index[el]; ok {
		s.items[i] = nil
		delete(s.index, el)
	}
}

// Contains checks set membership.
func (s *Set) Contains(el interface{}) bool {
	_, ok := s.index[el]
	return ok
}

// Size returns the number of elements in the set.
func (s *Set) Size() int {
	return len(s.index)
}

// Empty is a shortcut for Size() == 0.
func (s *Set) Empty() bool {
	return len(s.index) == 0
}

// Values returns the elements of the set in insertion order.
func (s *Set) Values() []interface{} {
	vals := make([]interface{}, 0, len(s.index))
	for _, el := range s.items {
		if el != nil {
			vals = append(vals, el)
		}
	}
	return vals
}

// First returns the first element (in insertion order) of the set, or nil
// for an empty set.
func (s *Set) First() interface{} {
	for _, el := range s.items {
		if el != nil {
			return el
		}
	}
	return nil
}

// FirstMatch returns the first element matching a predicate, or nil.
func (s *Set) FirstMatch(predicate func(el interface{}) bool) interface{} {
	for _, el := range s.items {
		if el != nil && predicate(el) {
			return el
		}
	}
	return nil
}

// Each calls f for every element of the set, in insertion order.
func (s *Set) Each(f func(el interface{})) {
	for _, el := range s.items {
		if el != nil {
			f(el)
		}
	}
}

// Subset removes all elements not matching the predicate and returns the
// receiver.
func (s *Set) Subset(predicate func(el interface{}) bool) *Set {
	for _, el := range s.Values() {
		if !predicate(el) {
			s.Remove(el)
		}
	}
	return s
}

// Copy returns a fresh set with the same elements.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	for _, el := range s.items {
		if el != nil {
			c.Add(el)
		}
	}
	return c
}

// Union adds all elements of other to the receiver and returns it.
func (s *Set) Union(other *Set) *Set {
	if other != nil {
		other.Each(func(el interface{}) { s.Add(el) })
	}
	return s
}

// Difference removes all elements of other from the receiver and returns it.
func (s *Set) Difference(other *Set) *Set {
	if other != nil {
		other.Each(func(el interface{}) { s.Remove(el) })
	}
	return s
}

// Equals checks if two sets contain the same elements, irrespective of
// order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || s.Size() != other.Size() {
		return false
	}
	for el := range s.index {
		if !other.Contains(el) {
			return false
		}
	}
	return true
}

// Sort compacts the set and orders its elements by a less function.
// Any running iteration is reset. Returns the receiver.
func (s *Set) Sort(less func(x, y interface{}) bool) *Set {
	vals := s.Values()
	// insertion sort; sets in this module stay small
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && less(vals[j], vals[j-1]); j-- {
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
	s.items = vals
	s.index = make(map[interface{}]int, len(vals))
	for i, el := range vals {
		s.index[el] = i
	}
	s.cursor = -1
	return s
}

// --- Iteration --------------------------------------------------------

// IterateOnce (re-)starts an iteration over the set. Elements added while
// the iteration is running are visited, too.
func (s *Set) IterateOnce() {
	s.cursor = -1
	s.current = nil
}

// Next advances the iteration and reports whether a current element is
// available via Item.
func (s *Set) Next() bool {
	for s.cursor+1 < len(s.items) {
		s.cursor++
		if s.items[s.cursor] != nil {
			s.current = s.items[s.cursor]
			return true
		}
	}
	s.current = nil
	return false
}

// Item returns the element the iteration is currently at.
func (s *Set) Item() interface{} {
	return s.current
}
