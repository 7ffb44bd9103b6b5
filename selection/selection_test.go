package selection

import "testing"

func TestSetReplaceAddRemoveToggle(t *testing.T) {
	s := New()
	s.Set([]uint32{1, 2, 3}, Replace)
	if s.Len() != 3 {
		t.Fatalf("Replace: have %d ids", s.Len())
	}
	g1 := s.Generation
	s.Set([]uint32{4}, Add)
	if !s.Contains(4) || s.Len() != 4 {
		t.Fatalf("Add: have %v", s.IDs())
	}
	if s.Generation == g1 {
		t.Fatal("Generation must bump on Add")
	}
	s.Set([]uint32{2}, Remove)
	if s.Contains(2) {
		t.Fatal("Remove: id 2 must be gone")
	}
	s.Set([]uint32{1}, Toggle)
	if s.Contains(1) {
		t.Fatal("Toggle: id 1 must be removed (was present)")
	}
	s.Set([]uint32{1}, Toggle)
	if !s.Contains(1) {
		t.Fatal("Toggle: id 1 must be added back (was absent)")
	}
}

func TestPrune(t *testing.T) {
	s := New()
	s.Set([]uint32{1, 2, 3}, Replace)
	s.Prune(func(id uint32) bool { return id != 2 })
	if s.Contains(2) || s.Len() != 2 {
		t.Fatalf("Prune: have %v", s.IDs())
	}
}

func TestRebuildOrder(t *testing.T) {
	s := New()
	s.Set([]uint32{3, 1, 2}, Replace)
	s.RebuildOrder([]uint32{1, 2, 3})
	if got := s.IDs(); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("RebuildOrder: have %v", got)
	}
}
