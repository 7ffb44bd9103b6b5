// Package selection implements the selection set, the draw-order
// vector and layer-reorder actions (spec §4.10).
package selection

// Mode controls how new ids combine with an existing selection.
type Mode int

const (
	Replace Mode = iota
	Add
	Remove
	Toggle
)

// Selection is an ordered set of ids plus a generation counter
// bumped on every mutation (spec §3 Selection).
type Selection struct {
	ids        []uint32
	pos        map[uint32]int
	Generation uint64
}

// New returns an empty Selection.
func New() *Selection { return &Selection{pos: make(map[uint32]int)} }

// IDs returns the selection in its current order.
func (s *Selection) IDs() []uint32 { return s.ids }

// Contains reports whether id is selected.
func (s *Selection) Contains(id uint32) bool {
	_, ok := s.pos[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) add(id uint32) {
	if s.Contains(id) {
		return
	}
	s.pos[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *Selection) remove(id uint32) {
	i, ok := s.pos[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i < last {
		s.ids[i] = s.ids[last]
		s.pos[s.ids[i]] = i
	}
	s.ids = s.ids[:last]
	delete(s.pos, id)
}

// Set applies ids to the selection according to mode and bumps
// Generation on every call except a Replace that leaves an empty
// selection empty.
func (s *Selection) Set(ids []uint32, mode Mode) {
	before := s.Len()
	switch mode {
	case Replace:
		s.Clear()
		for _, id := range ids {
			s.add(id)
		}
	case Add:
		for _, id := range ids {
			s.add(id)
		}
	case Remove:
		for _, id := range ids {
			s.remove(id)
		}
	case Toggle:
		for _, id := range ids {
			if s.Contains(id) {
				s.remove(id)
			} else {
				s.add(id)
			}
		}
	}
	if mode != Replace || before != 0 || s.Len() != 0 {
		s.Generation++
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = s.ids[:0]
	s.pos = make(map[uint32]int)
}

// Prune drops ids for which exists returns false (spec
// "prune(engine) drops ids that no longer exist").
func (s *Selection) Prune(exists func(id uint32) bool) {
	kept := s.ids[:0:0]
	for _, id := range s.ids {
		if exists(id) {
			kept = append(kept, id)
		}
	}
	if len(kept) != len(s.ids) {
		s.ids = kept
		s.pos = make(map[uint32]int, len(kept))
		for i, id := range kept {
			s.pos[id] = i
		}
		s.Generation++
	}
}

// RebuildOrder reorders the selection vector to match the given
// z-order (spec "rebuildOrder(drawOrder) reorders the selection
// vector to match current z-order").
func (s *Selection) RebuildOrder(drawOrder []uint32) {
	if len(s.ids) < 2 {
		return
	}
	zrank := make(map[uint32]int, len(drawOrder))
	for i, id := range drawOrder {
		zrank[id] = i
	}
	reordered := make([]uint32, 0, len(s.ids))
	for _, id := range drawOrder {
		if s.Contains(id) {
			reordered = append(reordered, id)
		}
	}
	// Any selected id absent from drawOrder (shouldn't normally
	// happen) keeps its relative position appended at the end.
	for _, id := range s.ids {
		if _, ok := zrank[id]; !ok {
			reordered = append(reordered, id)
		}
	}
	s.ids = reordered
	s.pos = make(map[uint32]int, len(reordered))
	for i, id := range reordered {
		s.pos[id] = i
	}
}
