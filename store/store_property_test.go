package store

import (
	"testing"

	"pgregory.net/rapid"
)

// TestIndexInvariantHoldsForAllSequences checks spec §8 invariant 1
// ("for all sequences of commands ... every id in the global index
// resolves to an arena slot containing that id") across randomly
// generated upsert/delete sequences over a small id space, the kind
// of property a table test cannot economically enumerate.
func TestIndexInvariantHoldsForAllSequences(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := New()
		ids := rapid.SliceOfN(rapid.Uint32Range(1, 8), 1, 40).Draw(rt, "ids")
		ops := rapid.SliceOfN(rapid.IntRange(0, 1), len(ids), len(ids)).Draw(rt, "ops")
		for i, id := range ids {
			if ops[i] == 0 {
				s.UpsertRect(id, Rect{W: float32(id)})
			} else {
				s.DeleteEntity(id)
			}
			checkIndexConsistency(rt, s)
		}
	})
}

func checkIndexConsistency(rt *rapid.T, s *EntityStore) {
	for _, r := range s.Rects() {
		loc, ok := s.Index.Lookup(r.ID)
		if !ok {
			rt.Fatalf("entity %d has an arena record but no index entry", r.ID)
		}
		if s.rects.Get(loc.Slot).ID != r.ID {
			rt.Fatalf("index for id %d points at slot holding id %d", r.ID, s.rects.Get(loc.Slot).ID)
		}
	}
	if s.Index.Len() != s.rects.Len() {
		rt.Fatalf("index size %d does not match arena size %d", s.Index.Len(), s.rects.Len())
	}
}
