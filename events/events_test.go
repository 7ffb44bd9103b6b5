package events

import (
	"testing"

	"github.com/draftcore/engine/wire"
)

func TestCoalescingOneRecordPerEntity(t *testing.T) {
	q := New(10)
	q.NotifyEntityChanged(7, wire.KindRect, Geometry)
	q.NotifyEntityChanged(7, wire.KindRect, Style)
	q.Flush(1)
	evs := q.PollEvents()
	if len(evs) != 1 {
		t.Fatalf("have %d events, want 1", len(evs))
	}
	if evs[0].Flags != Geometry|Style {
		t.Fatalf("Flags: have %v", evs[0].Flags)
	}
}

func TestLatchedEventsOncePerFlush(t *testing.T) {
	q := New(10)
	q.NotifySelectionChanged()
	q.NotifySelectionChanged()
	q.NotifyOrderChanged()
	q.Flush(1)
	evs := q.PollEvents()
	if len(evs) != 2 {
		t.Fatalf("have %d events, want 2", len(evs))
	}
}

func TestOverflowSignalsOnceAndSuppressesUntilAck(t *testing.T) {
	q := New(2)
	q.NotifyDocChanged()
	q.NotifyDocChanged()
	q.NotifyDocChanged()
	q.Flush(5)
	evs := q.PollEvents()
	if len(evs) != 1 || evs[0].Type != Overflow {
		t.Fatalf("have %v, want single Overflow", evs)
	}
	if !q.Overflowed() {
		t.Fatal("Overflowed must be true")
	}
	q.NotifyDocChanged()
	q.Flush(6)
	if evs := q.PollEvents(); len(evs) != 0 {
		t.Fatalf("events must be suppressed before ack: have %v", evs)
	}
	q.AckResync(5)
	if q.Overflowed() {
		t.Fatal("Overflowed must clear after AckResync")
	}
	q.NotifyDocChanged()
	q.Flush(7)
	if evs := q.PollEvents(); len(evs) != 1 {
		t.Fatalf("events must resume after ack: have %v", evs)
	}
}
