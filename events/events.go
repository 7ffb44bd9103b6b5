// Package events implements the bounded, coalescing change-event
// queue (spec §4.9).
package events

import "github.com/draftcore/engine/wire"

// EventType is the closed set of event kinds.
type EventType int

const (
	Overflow EventType = iota
	DocChanged
	EntityChanged
	EntityCreated
	EntityDeleted
	LayerChanged
	SelectionChanged
	OrderChanged
	HistoryChanged
)

// ChangeMask is an OR'd set of what changed about an entity.
type ChangeMask uint32

const (
	Geometry ChangeMask = 1 << iota
	Style
	Flags
	Layer
	Order
	Text
	Bounds
	RenderData
)

// Event is one queue record: {type, flags, a, b, c, d}, per spec §4.9.
type Event struct {
	Type  EventType
	Flags ChangeMask
	A, B, C, D uint32
}

type entKey struct {
	id   uint32
	kind wire.Kind
}

// Queue is the engine's event queue: a staging area that coalesces
// per-entity changes within the current top-level operation, and a
// capacity-bounded ring of events already flushed and awaiting
// pollEvents.
type Queue struct {
	capacity int

	staged    []Event
	entityIdx map[entKey]int
	selLatch  bool
	ordLatch  bool
	histLatch bool

	ring       []Event
	overflowed bool
	ackedGen   uint64
	overflowAt uint64
}

// New returns a Queue with the given ring capacity (spec default 2048).
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 2048
	}
	return &Queue{capacity: capacity, entityIdx: make(map[entKey]int)}
}

// NotifyDocChanged stages an unconditional DocChanged event.
func (q *Queue) NotifyDocChanged() { q.staged = append(q.staged, Event{Type: DocChanged}) }

// NotifyEntityCreated stages an EntityCreated event.
func (q *Queue) NotifyEntityCreated(id uint32, kind wire.Kind) {
	q.staged = append(q.staged, Event{Type: EntityCreated, A: id, B: uint32(kind)})
}

// NotifyEntityDeleted stages an EntityDeleted event.
func (q *Queue) NotifyEntityDeleted(id uint32, kind wire.Kind) {
	q.staged = append(q.staged, Event{Type: EntityDeleted, A: id, B: uint32(kind)})
	delete(q.entityIdx, entKey{id, kind})
}

// NotifyEntityChanged coalesces a change-mask into the single
// pending EntityChanged record for (id, kind), created at the
// position of the first mutation this flush cycle.
func (q *Queue) NotifyEntityChanged(id uint32, kind wire.Kind, mask ChangeMask) {
	k := entKey{id, kind}
	if i, ok := q.entityIdx[k]; ok {
		q.staged[i].Flags |= mask
		return
	}
	q.entityIdx[k] = len(q.staged)
	q.staged = append(q.staged, Event{Type: EntityChanged, A: id, B: uint32(kind), Flags: mask})
}

// NotifyLayerChanged stages a LayerChanged event for a layer id.
func (q *Queue) NotifyLayerChanged(id uint32) {
	q.staged = append(q.staged, Event{Type: LayerChanged, A: id})
}

// NotifySelectionChanged latches a single SelectionChanged event
// per flush cycle.
func (q *Queue) NotifySelectionChanged() {
	if q.selLatch {
		return
	}
	q.selLatch = true
	q.staged = append(q.staged, Event{Type: SelectionChanged})
}

// NotifyOrderChanged latches a single OrderChanged event per flush cycle.
func (q *Queue) NotifyOrderChanged() {
	if q.ordLatch {
		return
	}
	q.ordLatch = true
	q.staged = append(q.staged, Event{Type: OrderChanged})
}

// NotifyHistoryChanged latches a single HistoryChanged event per
// flush cycle.
func (q *Queue) NotifyHistoryChanged() {
	if q.histLatch {
		return
	}
	q.histLatch = true
	q.staged = append(q.staged, Event{Type: HistoryChanged})
}

// Flush moves the staged events of the current top-level operation
// into the ring, in order, applying the overflow policy (spec
// §4.9 "Overflow policy"): if the ring would exceed capacity, it is
// cleared, a single Overflow event carrying generation is recorded,
// and events staged by later operations are discarded at Flush until
// AckResync(generation).
func (q *Queue) Flush(generation uint64) {
	defer q.resetStaging()
	if q.overflowed {
		// Unacknowledged overflow: the host must resync before
		// any further event is surfaced.
		return
	}
	if len(q.staged) == 0 {
		return
	}
	if len(q.ring)+len(q.staged) > q.capacity {
		q.ring = q.ring[:0]
		q.ring = append(q.ring, Event{Type: Overflow, A: uint32(generation), B: uint32(generation >> 32)})
		q.overflowed = true
		q.overflowAt = generation
		return
	}
	q.ring = append(q.ring, q.staged...)
}

func (q *Queue) resetStaging() {
	q.staged = q.staged[:0]
	q.entityIdx = make(map[entKey]int)
	q.selLatch = false
	q.ordLatch = false
	q.histLatch = false
}

// PollEvents drains and returns every event currently in the ring.
// If the queue is in the overflowed-and-unacknowledged state, only
// the single Overflow event is ever returned until AckResync.
func (q *Queue) PollEvents() []Event {
	out := append([]Event(nil), q.ring...)
	q.ring = q.ring[:0]
	return out
}

// AckResync acknowledges an Overflow event carrying the given
// generation, allowing further events to be surfaced.
func (q *Queue) AckResync(generation uint64) {
	if q.overflowed && generation >= q.overflowAt {
		q.overflowed = false
		q.ackedGen = generation
	}
}

// Overflowed reports whether the queue is waiting on AckResync.
func (q *Queue) Overflowed() bool { return q.overflowed }
