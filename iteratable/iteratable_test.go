package iteratable

import "testing"

func TestSetBasics(t *testing.T) {
	s := NewSet(0)
	if !s.Empty() {
		t.Errorf("new set should be empty")
	}
	s.Add("a")
	s.Add("b")
	s.Add("a")
	if s.Size() != 2 {
		t.Errorf("expected size 2, got %d", s.Size())
	}
	if !s.Contains("b") {
		t.Errorf("expected b to be contained")
	}
	s.Remove("b")
	if s.Contains("b") {
		t.Errorf("b should be gone")
	}
	if s.First() != "a" {
		t.Errorf("expected first element a, got %v", s.First())
	}
}

// The property everything in package earley relies on: elements added
// while an iteration runs are visited by that same iteration.
func TestSetAsWorkList(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	visited := 0
	s.IterateOnce()
	for s.Next() {
		visited++
		if n := s.Item().(int); n < 5 {
			s.Add(n + 1)
		}
	}
	if visited != 5 {
		t.Errorf("expected the iteration to drain 5 elements, got %d", visited)
	}
	if s.Size() != 5 {
		t.Errorf("expected 5 elements after fixpoint, got %d", s.Size())
	}
}

func TestSetRemoveDuringIteration(t *testing.T) {
	s := NewSet(0)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	s.IterateOnce()
	for s.Next() {
		if s.Item() == "b" {
			s.Remove("c")
		}
		if s.Item() == "c" {
			t.Errorf("c was removed and must not be visited")
		}
	}
}

func TestSetOperations(t *testing.T) {
	s := NewSet(0)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	sub := s.Copy().Subset(func(el interface{}) bool { return el != "b" })
	if sub.Size() != 2 || sub.Contains("b") {
		t.Errorf("subset should drop b, has %v", sub.Values())
	}
	if s.Size() != 3 {
		t.Errorf("copy must leave the original untouched")
	}
	u := NewSet(0)
	u.Add("c")
	u.Add("d")
	sub.Union(u)
	if sub.Size() != 3 {
		t.Errorf("union expected {a c d}, got %v", sub.Values())
	}
	sub.Difference(u)
	if sub.Size() != 1 || !sub.Contains("a") {
		t.Errorf("difference expected {a}, got %v", sub.Values())
	}
}

func TestSetEquals(t *testing.T) {
	s1 := NewSet(0)
	s2 := NewSet(0)
	s1.Add("x")
	s1.Add("y")
	s2.Add("y")
	s2.Add("x")
	if !s1.Equals(s2) {
		t.Errorf("sets with equal members should be equal")
	}
	s2.Add("z")
	if s1.Equals(s2) {
		t.Errorf("sets of different size must not be equal")
	}
}

func TestSetSort(t *testing.T) {
	s := NewSet(0)
	s.Add(3)
	s.Add(1)
	s.Add(2)
	s.Sort(func(x, y interface{}) bool { return x.(int) < y.(int) })
	vals := s.Values()
	for i, want := range []int{1, 2, 3} {
		if vals[i] != want {
			t.Errorf("expected %v at %d, got %v", want, i, vals[i])
		}
	}
}

func TestFirstMatchAndEach(t *testing.T) {
	s := NewSet(0)
	s.Add(10)
	s.Add(25)
	s.Add(30)
	m := s.FirstMatch(func(el interface{}) bool { return el.(int) > 20 })
	if m != 25 {
		t.Errorf("expected 25, got %v", m)
	}
	sum := 0
	s.Each(func(el interface{}) { sum += el.(int) })
	if sum != 65 {
		t.Errorf("expected sum 65, got %d", sum)
	}
}
