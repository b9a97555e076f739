package sparse

import (
	"testing"
)

func TestSet_Basic(t *testing.T) {
	s := New(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSet_InsertionOrder(t *testing.T) {
	s := New(100)
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	s.Insert(1)

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range values {
		if v != expected[i] {
			t.Errorf("at index %d: expected %d, got %d", i, expected[i], v)
		}
		if s.At(i) != v {
			t.Errorf("At(%d) = %d, want %d", i, s.At(i), v)
		}
	}
}

// TestSet_GrowDuringWalk tests that members appended while walking by index are visited.
func TestSet_GrowDuringWalk(t *testing.T) {
	s := New(10)
	s.Insert(0)

	var seen []uint32
	for i := 0; i < s.Len(); i++ {
		v := s.At(i)
		seen = append(seen, v)
		if v < 4 {
			s.Insert(v + 1)
			s.Insert(v) // already present, ignored
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 visited values, got %v", seen)
	}
}

func TestSet_CrossValidation(t *testing.T) {
	s := New(100)
	s.Insert(5)
	s.Insert(10)
	s.Clear()

	// stale sparse entries must not produce false positives
	if s.Contains(5) || s.Contains(10) {
		t.Error("cleared set should not contain old values")
	}

	s.Insert(3)
	if !s.Contains(3) {
		t.Error("should contain 3")
	}
	if s.Contains(5) || s.Contains(10) {
		t.Error("should not contain old values")
	}
}

func TestSet_OutOfRange(t *testing.T) {
	s := New(4)
	if s.Contains(4) || s.Contains(1000) {
		t.Error("values beyond capacity are never members")
	}
	if s.Capacity() != 4 {
		t.Errorf("capacity = %d, want 4", s.Capacity())
	}
}

func BenchmarkSet_Insert(b *testing.B) {
	s := New(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		for j := uint32(0); j < 100; j++ {
			s.Insert(j)
		}
	}
}
