package drawcore

import (
	"testing"

	"github.com/draftcore/engine/command"
	"github.com/draftcore/engine/events"
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/interaction"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

// --- payload builders: command/payload.go's encodeX helpers are
// package-private, so a buffer assembled out-of-process (as any real
// host must) hand-builds payloads in the documented field order. ---

func rgbaBytes(w *wire.Writer, c geom.RGBA) {
	w.F32(c[0])
	w.F32(c[1])
	w.F32(c[2])
	w.F32(c[3])
}

func upsertRectPayload(r store.Rect) []byte {
	w := wire.NewWriter(64)
	w.U32(r.LayerID)
	w.U32(uint32(r.Flags))
	w.F32(r.X)
	w.F32(r.Y)
	w.F32(r.W)
	w.F32(r.H)
	rgbaBytes(w, r.Fill)
	rgbaBytes(w, r.Stroke)
	w.U32(boolU32(r.StrokeEnabled))
	w.F32(r.StrokeWidthPx)
	return w.Bytes()
}

func upsertTextPayload(rec text.TextRec) []byte {
	w := wire.NewWriter(64 + len(rec.Content))
	w.U32(rec.LayerID)
	w.U32(uint32(rec.Flags))
	w.F32(rec.AnchorX)
	w.F32(rec.AnchorY)
	w.F32(rec.Rotation)
	w.U32(uint32(rec.Box))
	w.U32(uint32(rec.Align))
	w.F32(rec.ConstraintWidth)
	w.U32(uint32(len(rec.Content)))
	w.RawBytes([]byte(rec.Content))
	w.U32(uint32(len(rec.Runs)))
	for _, run := range rec.Runs {
		w.U32(uint32(run.StartIndex))
		w.U32(uint32(run.Length))
		w.U32(uint32(run.FontID))
		w.F32(run.FontSize)
		w.U16(uint16(run.Flags))
		w.U16(0)
	}
	return w.Bytes()
}

func rangePayload(lo, hi int) []byte {
	w := wire.NewWriter(8)
	w.U32(uint32(lo))
	w.U32(uint32(hi))
	return w.Bytes()
}

func insertTextContentPayload(at int, s string) []byte {
	w := wire.NewWriter(8 + len(s))
	w.U32(uint32(at))
	w.U32(uint32(len(s)))
	w.RawBytes([]byte(s))
	return w.Bytes()
}

func applyTextStylePayload(lo, hi int, mask text.StyleFlags, mode text.StyleMode) []byte {
	w := wire.NewWriter(24)
	w.U32(uint32(lo))
	w.U32(uint32(hi))
	w.U16(uint16(mask))
	w.U8(uint8(mode))
	w.U8(0)
	w.U32(0) // no fontId override
	w.U32(0) // no fontSize override
	return w.Bytes()
}

func newTestEngine() *Engine {
	cfg := DefaultConfig()
	return New(cfg, nil, nil)
}

func mustApply(t *testing.T, e *Engine, cmds []command.Raw) {
	t.Helper()
	if err := e.ApplyCommandBuffer(command.Encode(cmds)); err != nil {
		t.Fatalf("ApplyCommandBuffer: %v", err)
	}
}

// Scenario 1: a single UpsertRect buffer produces one entity, one
// draw-order member, the expected tessellated buffer lengths, a
// generation bump, and exactly one EntityCreated plus one coalesced
// EntityChanged event.
func TestUpsertRectBuffer(t *testing.T) {
	e := newTestEngine()
	rect := store.Rect{
		X: 0, Y: 0, W: 10, H: 5,
		Flags:         store.Visible,
		Fill:          geom.RGBA{1, 0, 0, 1},
		Stroke:        geom.RGBA{0, 0, 0, 1},
		StrokeEnabled: true,
		StrokeWidthPx: 2,
	}
	mustApply(t, e, []command.Raw{{Op: command.UpsertRect, ID: 7, Payload: upsertRectPayload(rect)}})

	if len(e.Store.Rects()) != 1 {
		t.Fatalf("rects len = %d, want 1", len(e.Store.Rects()))
	}
	kind, ok := e.Store.Kind(7)
	if !ok || kind != wire.KindRect {
		t.Fatalf("entities[7] = (%v, %v), want (Rect, true)", kind, ok)
	}
	if order := e.DrawOrder.IDs(); len(order) != 1 || order[0] != 7 {
		t.Fatalf("drawOrder = %v, want [7]", order)
	}

	buffers := e.BuildRenderBuffers()
	if len(buffers.Triangles) != 42 {
		t.Fatalf("triBufLen = %d, want 42", len(buffers.Triangles))
	}
	if len(buffers.Lines) != 56 {
		t.Fatalf("lineBufLen = %d, want 56", len(buffers.Lines))
	}
	if e.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", e.Generation())
	}

	evs := e.PollEvents()
	var created, changed int
	var changedFlags events.ChangeMask
	for _, ev := range evs {
		switch ev.Type {
		case events.EntityCreated:
			created++
			if ev.A != 7 || wire.Kind(ev.B) != wire.KindRect {
				t.Fatalf("unexpected EntityCreated %+v", ev)
			}
		case events.EntityChanged:
			changed++
			changedFlags = ev.Flags
		}
	}
	if created != 1 {
		t.Fatalf("EntityCreated count = %d, want 1", created)
	}
	if changed != 1 {
		t.Fatalf("EntityChanged count = %d, want 1", changed)
	}
	if changedFlags&events.Geometry == 0 || changedFlags&events.Style == 0 {
		t.Fatalf("EntityChanged flags = %v, want Geometry|Style", changedFlags)
	}
}

// Scenario 2: picking inside the rect's tolerance hits it; picking
// far away misses.
func TestPick(t *testing.T) {
	e := newTestEngine()
	rect := store.Rect{X: 0, Y: 0, W: 10, H: 5, StrokeWidthPx: 1, Flags: store.Visible}
	mustApply(t, e, []command.Raw{{Op: command.UpsertRect, ID: 7, Payload: upsertRectPayload(rect)}})

	if got := e.Pick(5, 2.5, 1.0); got != 7 {
		t.Fatalf("Pick(5,2.5) = %d, want 7", got)
	}
	if got := e.Pick(20, 20, 1.0); got != 0 {
		t.Fatalf("Pick(20,20) = %d, want 0", got)
	}
}

// Scenario 3: a move transform commits as one history entry; undo
// restores the pre-transform geometry and redo reapplies it; the
// digest after undo equals the digest taken before the transform.
func TestTransformUndoRedo(t *testing.T) {
	e := newTestEngine()
	rect := store.Rect{X: 0, Y: 0, W: 10, H: 5, StrokeWidthPx: 1, Flags: store.Visible}
	mustApply(t, e, []command.Raw{{Op: command.UpsertRect, ID: 7, Payload: upsertRectPayload(rect)}})
	e.PollEvents()

	loDigest, hiDigest := e.Digest()

	e.BeginMove([]uint32{7}, 5, 2.5, interaction.SnapOptions{})
	e.UpdateTransform(15, 12.5)
	e.CommitTransform()

	r, ok := e.Store.FindRect(7)
	if !ok || r.X != 10 || r.Y != 10 || r.W != 10 || r.H != 5 {
		t.Fatalf("after move rect = %+v, want (10,10,10,5)", r)
	}
	if e.HistoryLen() != 1 {
		t.Fatalf("history depth = %d, want 1", e.HistoryLen())
	}

	e.Undo()
	r, ok = e.Store.FindRect(7)
	if !ok || r.X != 0 || r.Y != 0 || r.W != 10 || r.H != 5 {
		t.Fatalf("after undo rect = %+v, want (0,0,10,5)", r)
	}
	ulo, uhi := e.Digest()
	if ulo != loDigest || uhi != hiDigest {
		t.Fatalf("digest after undo = (%d,%d), want (%d,%d)", ulo, uhi, loDigest, hiDigest)
	}

	e.Redo()
	r, ok = e.Store.FindRect(7)
	if !ok || r.X != 10 || r.Y != 10 || r.W != 10 || r.H != 5 {
		t.Fatalf("after redo rect = %+v, want (10,10,10,5)", r)
	}
}

// Scenario 4: a saved snapshot round-trips through load with an
// identical digest, and re-saving produces a byte-identical buffer.
func TestSnapshotRoundTrip(t *testing.T) {
	e := newTestEngine()
	rect := store.Rect{X: 0, Y: 0, W: 10, H: 5, StrokeWidthPx: 1, Flags: store.Visible}
	mustApply(t, e, []command.Raw{{Op: command.UpsertRect, ID: 7, Payload: upsertRectPayload(rect)}})

	buf := e.SaveSnapshot()
	wantLo, wantHi := e.Digest()

	e.Clear()
	if len(e.Store.Rects()) != 0 {
		t.Fatalf("rects not cleared")
	}

	if err := e.LoadSnapshotFromBytes(buf); err != nil {
		t.Fatalf("LoadSnapshotFromBytes: %v", err)
	}
	gotLo, gotHi := e.Digest()
	if gotLo != wantLo || gotHi != wantHi {
		t.Fatalf("digest after load = (%d,%d), want (%d,%d)", gotLo, gotHi, wantLo, wantHi)
	}

	resaved := e.SaveSnapshot()
	if len(resaved) != len(buf) {
		t.Fatalf("resaved length = %d, want %d", len(resaved), len(buf))
	}
	for i := range buf {
		if buf[i] != resaved[i] {
			t.Fatalf("resave diverges at byte %d", i)
		}
	}
}

// Scenario 5: style application over a byte range splits runs, and a
// subsequent content deletion remaps both content and run offsets.
func TestTextStyleAndDelete(t *testing.T) {
	e := newTestEngine()
	rec := text.TextRec{
		Content: "Hello",
		Runs:    []text.TextRun{{StartIndex: 0, Length: 5, Flags: text.Bold}},
	}
	mustApply(t, e, []command.Raw{{Op: command.UpsertText, ID: 100, Payload: upsertTextPayload(rec)}})

	mustApply(t, e, []command.Raw{{
		Op: command.ApplyTextStyle, ID: 100,
		Payload: applyTextStylePayload(1, 3, text.Italic, text.StyleSet),
	}})

	got, ok := e.Text.FindText(100)
	if !ok {
		t.Fatalf("text 100 not found")
	}
	wantRuns := []text.TextRun{
		{StartIndex: 0, Length: 1, Flags: text.Bold},
		{StartIndex: 1, Length: 2, Flags: text.Bold | text.Italic},
		{StartIndex: 3, Length: 2, Flags: text.Bold},
	}
	if !sameRuns(got.Runs, wantRuns) {
		t.Fatalf("runs after style = %+v, want %+v", got.Runs, wantRuns)
	}

	mustApply(t, e, []command.Raw{{
		Op: command.DeleteTextContent, ID: 100, Payload: rangePayload(2, 4),
	}})
	got, ok = e.Text.FindText(100)
	if !ok {
		t.Fatalf("text 100 not found after delete")
	}
	if got.Content != "Heo" {
		t.Fatalf("content after delete = %q, want %q", got.Content, "Heo")
	}
	wantRuns = []text.TextRun{
		{StartIndex: 0, Length: 1, Flags: text.Bold},
		{StartIndex: 1, Length: 1, Flags: text.Bold | text.Italic},
		{StartIndex: 2, Length: 1, Flags: text.Bold},
	}
	if !sameRuns(got.Runs, wantRuns) {
		t.Fatalf("runs after delete = %+v, want %+v", got.Runs, wantRuns)
	}
}

func sameRuns(a, b []text.TextRun) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].StartIndex != b[i].StartIndex || a[i].Length != b[i].Length || a[i].Flags != b[i].Flags {
			return false
		}
	}
	return true
}

// Scenario 6: replaying a capacity-64 transform log of 3 moves
// against a freshly loaded snapshot reproduces the original session's
// digest.
func TestTransformLogReplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TransformLogEntryCapacity = 64
	cfg.TransformLogIDCapacity = 64
	e := New(cfg, nil, nil)

	rect := store.Rect{X: 0, Y: 0, W: 10, H: 5, StrokeWidthPx: 1, Flags: store.Visible}
	mustApply(t, e, []command.Raw{{Op: command.UpsertRect, ID: 7, Payload: upsertRectPayload(rect)}})

	startBuf := e.SaveSnapshot()

	moves := [][2]float32{{1, 1}, {2, 3}, {-1, 4}}
	pos := [2]float32{0, 0}
	for _, d := range moves {
		start := pos
		end := [2]float32{pos[0] + d[0], pos[1] + d[1]}
		e.BeginMove([]uint32{7}, start[0], start[1], interaction.SnapOptions{})
		e.UpdateTransform(end[0], end[1])
		e.CommitTransform()
		pos = end
	}
	wantLo, wantHi := e.Digest()
	log := e.TransformLog()
	if log.Tainted() {
		t.Fatalf("transform log unexpectedly tainted")
	}

	e2 := New(cfg, nil, nil)
	if err := e2.LoadSnapshotFromBytes(startBuf); err != nil {
		t.Fatalf("LoadSnapshotFromBytes: %v", err)
	}
	if err := e2.ReplayTransformLog(log); err != nil {
		t.Fatalf("ReplayTransformLog: %v", err)
	}
	gotLo, gotHi := e2.Digest()
	if gotLo != wantLo || gotHi != wantHi {
		t.Fatalf("digest after replay = (%d,%d), want (%d,%d)", gotLo, gotHi, wantLo, wantHi)
	}
}
