package interaction

import (
	"testing"

	"github.com/draftcore/engine/spatial"
	"github.com/draftcore/engine/store"
)

func TestMoveCommitUpdatesStore(t *testing.T) {
	st := store.New()
	st.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g := spatial.New(50)
	sess := New(st, g)

	sess.BeginMove([]uint32{1}, 5, 5, SnapOptions{})
	sess.Update(15, 5)
	result := sess.Commit()

	r, _ := st.FindRect(1)
	if r.X != 10 || r.Y != 0 {
		t.Fatalf("rect after move: have (%v,%v), want (10,0)", r.X, r.Y)
	}
	if sess.State() != Idle {
		t.Fatal("session must return to Idle after Commit")
	}
	if len(result.IDs) != 1 || result.IDs[0] != 1 {
		t.Fatalf("commit result ids: %v", result.IDs)
	}
	if result.Opcodes[0] != OpMove {
		t.Fatalf("commit opcode: have %v, want OpMove", result.Opcodes[0])
	}
}

func TestMoveCancelRestoresGeometry(t *testing.T) {
	st := store.New()
	st.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g := spatial.New(50)
	sess := New(st, g)

	sess.BeginMove([]uint32{1}, 0, 0, SnapOptions{})
	sess.Update(100, 100)
	sess.Cancel()

	r, _ := st.FindRect(1)
	if r.X != 0 || r.Y != 0 {
		t.Fatalf("rect after cancel: have (%v,%v), want (0,0)", r.X, r.Y)
	}
	if sess.State() != Idle {
		t.Fatal("session must return to Idle after Cancel")
	}
}

func TestGridSnapRoundsToNearestMultiple(t *testing.T) {
	st := store.New()
	st.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g := spatial.New(50)
	sess := New(st, g)

	sess.BeginMove([]uint32{1}, 0, 0, SnapOptions{GridEnabled: true, GridSize: 10})
	sess.Update(23, 4)
	sess.Commit()

	r, _ := st.FindRect(1)
	if r.X != 20 || r.Y != 0 {
		t.Fatalf("grid-snapped move: have (%v,%v), want (20,0)", r.X, r.Y)
	}
}

func TestResizeEnforcesMinimumSize(t *testing.T) {
	st := store.New()
	st.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g := spatial.New(50)
	sess := New(st, g)

	sess.BeginResize([]uint32{1}, 2, 10, 10, SnapOptions{}) // drag bottom-right
	sess.Update(-1000, -1000)
	sess.Commit()

	r, _ := st.FindRect(1)
	if r.W < minResizeDim || r.H < minResizeDim {
		t.Fatalf("resize must enforce minimum size: have w=%v h=%v", r.W, r.H)
	}
}

func TestTransformLogOverflowTaints(t *testing.T) {
	st := store.New()
	st.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g := spatial.New(50)
	sess := New(st, g)
	sess.EnableLog(2, 64)

	sess.BeginMove([]uint32{1}, 0, 0, SnapOptions{})
	sess.Update(1, 1)
	sess.Commit()
	sess.BeginMove([]uint32{1}, 0, 0, SnapOptions{})

	if !sess.Log().Tainted() {
		t.Fatal("log must be tainted once entry capacity is exceeded")
	}
}

func TestReplayReproducesCommittedState(t *testing.T) {
	st := store.New()
	st.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g := spatial.New(50)
	sess := New(st, g)
	sess.EnableLog(64, 64)

	sess.BeginMove([]uint32{1}, 0, 0, SnapOptions{})
	sess.Update(7, 3)
	sess.Commit()

	wantR, _ := st.FindRect(1)
	wantX, wantY := wantR.X, wantR.Y

	st2 := store.New()
	st2.UpsertRect(1, store.Rect{X: 0, Y: 0, W: 10, H: 10})
	g2 := spatial.New(50)
	replaySess := New(st2, g2)

	if err := sess.Log().Replay(replaySess); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	gotR, _ := st2.FindRect(1)
	if gotR.X != wantX || gotR.Y != wantY {
		t.Fatalf("replay mismatch: have (%v,%v), want (%v,%v)", gotR.X, gotR.Y, wantX, wantY)
	}
}
