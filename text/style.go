package text

import "github.com/go-text/typesetting/font"

// StyleMode selects how a flag delta combines with a run's existing
// flags (spec §4.8 "Style application").
type StyleMode int

const (
	StyleSet StyleMode = iota
	StyleClear
	StyleToggle
)

// StyleParams carries the optional TLV-encoded overrides a style
// application may also set, alongside the boolean flagsMask delta
// (spec §4.8 "optional fontId/fontSize overrides").
type StyleParams struct {
	HasFontID bool
	FontID    font.ID
	HasSize   bool
	FontSize  float32
}

func applyMode(flags, mask StyleFlags, mode StyleMode) StyleFlags {
	switch mode {
	case StyleSet:
		return flags | mask
	case StyleClear:
		return flags &^ mask
	case StyleToggle:
		return flags ^ mask
	default:
		return flags
	}
}

func applyParams(run *TextRun, p StyleParams) {
	if p.HasFontID {
		run.FontID = p.FontID
	}
	if p.HasSize {
		run.FontSize = p.FontSize
	}
}

// ApplyTextStyle applies mode/mask (plus optional params) to id's
// content, either at a collapsed caret or across [lo, hi) (spec
// §4.8 "Style application"). On a collapsed caret it inserts or
// updates a zero-length run at lo, splitting a containing run
// if needed, so typed text inherits the style that follows. On a
// range it slices every touched run into (pre, in-range, post)
// sub-runs in place.
func (st *Store) ApplyTextStyle(id uint32, lo, hi int, mask StyleFlags, mode StyleMode, params StyleParams) {
	r, ok := st.recs[id]
	if !ok {
		return
	}
	if lo == hi {
		st.applyCaretStyle(r, lo, mask, mode, params)
	} else {
		st.applyRangeStyle(r, lo, hi, mask, mode, params)
	}
	st.markDirty(id)
}

func (st *Store) applyCaretStyle(r *TextRec, at int, mask StyleFlags, mode StyleMode, params StyleParams) {
	for i := range r.Runs {
		run := &r.Runs[i]
		if run.Length == 0 && run.StartIndex == at {
			run.Flags = applyMode(run.Flags, mask, mode)
			applyParams(run, params)
			return
		}
	}
	// Inherit style from the run containing at, splitting it so the
	// caret run sits between (pre, caret, post).
	inherited := TextRun{StartIndex: at}
	for i := range r.Runs {
		run := &r.Runs[i]
		if run.StartIndex < at && at < run.end() {
			inherited.Flags = run.Flags
			inherited.FontID = run.FontID
			inherited.FontSize = run.FontSize
			pre := TextRun{StartIndex: run.StartIndex, Length: at - run.StartIndex,
				Flags: run.Flags, FontID: run.FontID, FontSize: run.FontSize}
			post := TextRun{StartIndex: at, Length: run.end() - at,
				Flags: run.Flags, FontID: run.FontID, FontSize: run.FontSize}
			inherited.Flags = applyMode(inherited.Flags, mask, mode)
			applyParams(&inherited, params)
			newRuns := append([]TextRun(nil), r.Runs[:i]...)
			newRuns = append(newRuns, pre, inherited, post)
			newRuns = append(newRuns, r.Runs[i+1:]...)
			r.Runs = newRuns
			return
		}
	}
	inherited.Flags = applyMode(inherited.Flags, mask, mode)
	applyParams(&inherited, params)
	r.Runs = append(r.Runs, inherited)
}

func (st *Store) applyRangeStyle(r *TextRec, lo, hi int, mask StyleFlags, mode StyleMode, params StyleParams) {
	var out []TextRun
	for _, run := range r.Runs {
		s, e := run.StartIndex, run.end()
		if e <= lo || s >= hi || run.Length == 0 {
			out = append(out, run)
			continue
		}
		if s < lo {
			out = append(out, TextRun{StartIndex: s, Length: lo - s, Flags: run.Flags, FontID: run.FontID, FontSize: run.FontSize})
		}
		midStart, midEnd := s, e
		if midStart < lo {
			midStart = lo
		}
		if midEnd > hi {
			midEnd = hi
		}
		mid := TextRun{StartIndex: midStart, Length: midEnd - midStart, Flags: run.Flags, FontID: run.FontID, FontSize: run.FontSize}
		mid.Flags = applyMode(mid.Flags, mask, mode)
		applyParams(&mid, params)
		out = append(out, mid)
		if e > hi {
			out = append(out, TextRun{StartIndex: hi, Length: e - hi, Flags: run.Flags, FontID: run.FontID, FontSize: run.FontSize})
		}
	}
	r.Runs = out
}
