package text

// InsertContent inserts s into id's content at byte offset at,
// shifting and growing runs per spec §4.8 "Run algebra": every run
// with StartIndex >= at shifts by +len(s); the run containing at
// grows by len(s). at == 0 has no preceding run to grow this way, so
// it is special-cased to grow the first run instead of shifting it,
// which would otherwise leave the inserted bytes uncovered by any run.
func (st *Store) InsertContent(id uint32, at int, s string) {
	r, ok := st.recs[id]
	if !ok {
		return
	}
	n := len(s)
	if at < 0 {
		at = 0
	}
	if at > len(r.Content) {
		at = len(r.Content)
	}
	r.Content = r.Content[:at] + s + r.Content[at:]

	shifted := false
	if at == 0 && len(r.Runs) > 0 {
		r.Runs[0].Length += n
		shifted = true
		for i := 1; i < len(r.Runs); i++ {
			r.Runs[i].StartIndex += n
		}
	} else {
		for i := range r.Runs {
			run := &r.Runs[i]
			switch {
			case run.StartIndex >= at:
				run.StartIndex += n
			case at <= run.end():
				run.Length += n
				shifted = true
			}
		}
	}
	if !shifted && len(r.Runs) == 0 {
		r.Runs = append(r.Runs, TextRun{StartIndex: at, Length: n})
	}
	if r.CaretByte >= at {
		r.CaretByte += n
	}
	st.markDirty(id)
}

// DeleteContent removes the byte range [lo, hi) from id's content.
// Runs fully inside the range vanish, runs partially overlapped are
// clipped, and runs after hi shift by -(hi-lo) (spec §4.8).
// Degenerate zero-length runs at the caret (carrying typing style)
// are preserved.
func (st *Store) DeleteContent(id uint32, lo, hi int) {
	r, ok := st.recs[id]
	if !ok || lo >= hi {
		return
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(r.Content) {
		hi = len(r.Content)
	}
	n := hi - lo
	r.Content = r.Content[:lo] + r.Content[hi:]

	// mapOffset translates a byte offset across the deletion of
	// [lo, hi): offsets before lo are unaffected, offsets at or past
	// hi shift back by n, and offsets inside the deleted range
	// collapse to lo.
	mapOffset := func(o int) int {
		switch {
		case o <= lo:
			return o
		case o >= hi:
			return o - n
		default:
			return lo
		}
	}

	var kept []TextRun
	for _, run := range r.Runs {
		newStart := mapOffset(run.StartIndex)
		newEnd := mapOffset(run.end())
		if run.Length == 0 {
			// Degenerate caret-style runs are preserved regardless
			// of whether their position collapsed into the deletion.
			run.StartIndex = newStart
			kept = append(kept, run)
			continue
		}
		if newStart == newEnd {
			continue // fully inside the deleted range
		}
		run.StartIndex = newStart
		run.Length = newEnd - newStart
		kept = append(kept, run)
	}
	r.Runs = kept

	if r.CaretByte > hi {
		r.CaretByte -= n
	} else if r.CaretByte > lo {
		r.CaretByte = lo
	}
	st.markDirty(id)
}

// ReplaceContent is DeleteContent(lo, hi) followed by
// InsertContent(lo, s), as one dirtying operation.
func (st *Store) ReplaceContent(id uint32, lo, hi int, s string) {
	if hi > lo {
		st.DeleteContent(id, lo, hi)
	}
	st.InsertContent(id, lo, s)
}
