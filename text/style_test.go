package text

import "testing"

func TestApplyTextStyleRangeSlicesRuns(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{Content: "hello world", Runs: []TextRun{
		{StartIndex: 0, Length: 11},
	}})
	s.ApplyTextStyle(1, 2, 5, Bold, StyleSet, StyleParams{})
	rec, _ := s.FindText(1)
	if len(rec.Runs) != 3 {
		t.Fatalf("range style application should split into 3 runs: have %d", len(rec.Runs))
	}
	if rec.Runs[1].StartIndex != 2 || rec.Runs[1].Length != 3 || rec.Runs[1].Flags&Bold == 0 {
		t.Fatalf("middle run wrong: %+v", rec.Runs[1])
	}
	if rec.Runs[0].Flags&Bold != 0 || rec.Runs[2].Flags&Bold != 0 {
		t.Fatalf("outer runs must not carry Bold: %+v / %+v", rec.Runs[0], rec.Runs[2])
	}
}

func TestApplyTextStyleCollapsedCaretInheritsAndSplits(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{Content: "hello world", Runs: []TextRun{
		{StartIndex: 0, Length: 11, Flags: Italic},
	}})
	s.ApplyTextStyle(1, 4, 4, Bold, StyleSet, StyleParams{})
	rec, _ := s.FindText(1)
	if len(rec.Runs) != 3 {
		t.Fatalf("caret style application should split into 3 runs: have %d: %+v", len(rec.Runs), rec.Runs)
	}
	caretRun := rec.Runs[1]
	if caretRun.Length != 0 || caretRun.StartIndex != 4 {
		t.Fatalf("caret run placement wrong: %+v", caretRun)
	}
	if caretRun.Flags&Bold == 0 || caretRun.Flags&Italic == 0 {
		t.Fatalf("caret run must inherit Italic and add Bold: %+v", caretRun)
	}
}

func TestApplyTextStyleToggle(t *testing.T) {
	s := New()
	s.UpsertText(1, TextRec{Content: "ab", Runs: []TextRun{{StartIndex: 0, Length: 2, Flags: Bold}}})
	s.ApplyTextStyle(1, 0, 2, Bold, StyleToggle, StyleParams{})
	rec, _ := s.FindText(1)
	if rec.Runs[0].Flags&Bold != 0 {
		t.Fatalf("toggle should have cleared Bold: %+v", rec.Runs[0])
	}
}
