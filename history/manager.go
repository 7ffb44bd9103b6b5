package history

import (
	"sort"

	"github.com/draftcore/engine/selection"
	"github.com/draftcore/engine/store"
)

// Manager owns the undo/redo stack and the single open transaction,
// if any (spec §4.7 "Transaction lifecycle").
type Manager struct {
	entries []HistoryEntry
	cursor  int

	// Suppressed disables BeginEntry while an undo/redo application
	// is in progress, preventing recursive capture (spec §4.7
	// "Undo/Redo ... History is suppressed during application").
	Suppressed bool

	open         bool
	touched      map[uint32]*EntityChange
	touchedOrder []uint32
	nextIDBefore uint32

	hasLayers    bool
	layersBefore []store.Layer

	hasDrawOrder    bool
	drawOrderBefore []uint32

	hasSelection    bool
	selectionBefore []uint32
}

// New returns an empty history manager.
func New() *Manager { return &Manager{} }

// Len returns the number of entries on the stack.
func (m *Manager) Len() int { return len(m.entries) }

// Cursor returns the current undo/redo position: entries[:Cursor]
// have been applied, entries[Cursor:] are available to redo.
func (m *Manager) Cursor() int { return m.cursor }

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries) }

// BeginEntry opens a transaction. It is a no-op while Suppressed or
// while a transaction is already open.
func (m *Manager) BeginEntry(nextIDBefore uint32) {
	if m.Suppressed || m.open {
		return
	}
	m.open = true
	m.touched = make(map[uint32]*EntityChange)
	m.touchedOrder = m.touchedOrder[:0]
	m.nextIDBefore = nextIDBefore
	m.hasLayers = false
	m.hasDrawOrder = false
	m.hasSelection = false
}

// Open reports whether a transaction is currently open.
func (m *Manager) Open() bool { return m.open }

// MarkEntityChange captures id's before-snapshot the first time it
// is touched within the open transaction.
func (m *Manager) MarkEntityChange(st *store.EntityStore, id uint32) {
	if !m.open {
		return
	}
	if _, ok := m.touched[id]; ok {
		return
	}
	before, existed := SnapshotEntity(st, id)
	m.touched[id] = &EntityChange{ID: id, ExistedBefore: existed, Before: before}
	m.touchedOrder = append(m.touchedOrder, id)
}

// MarkLayers captures the pre-transaction layer list, once per
// transaction.
func (m *Manager) MarkLayers(layers []store.Layer) {
	if !m.open || m.hasLayers {
		return
	}
	m.hasLayers = true
	m.layersBefore = append([]store.Layer(nil), layers...)
}

// MarkDrawOrder captures the pre-transaction draw order, once per
// transaction.
func (m *Manager) MarkDrawOrder(order []uint32) {
	if !m.open || m.hasDrawOrder {
		return
	}
	m.hasDrawOrder = true
	m.drawOrderBefore = append([]uint32(nil), order...)
}

// MarkSelection captures the pre-transaction selection, once per
// transaction.
func (m *Manager) MarkSelection(ids []uint32) {
	if !m.open || m.hasSelection {
		return
	}
	m.hasSelection = true
	m.selectionBefore = append([]uint32(nil), ids...)
}

// DiscardEntry aborts the open transaction without recording anything.
func (m *Manager) DiscardEntry() {
	m.open = false
	m.touched = nil
	m.touchedOrder = nil
}

// CommitEntry closes the open transaction, resolving after-state for
// every touched aspect. It de-duplicates unchanged entities, drops
// unchanged optional aspects, and discards the whole entry if
// nothing actually changed (spec §4.7 "commitEntry"). It truncates
// any redo tail before appending. It returns false if no transaction
// was open or nothing in it changed.
func (m *Manager) CommitEntry(st *store.EntityStore, nextIDAfter uint32, generation uint64,
	layersAfter []store.Layer, drawOrderAfter, selectionAfter []uint32) bool {

	if !m.open {
		return false
	}
	defer m.DiscardEntry()

	entry := HistoryEntry{NextIDBefore: m.nextIDBefore, NextIDAfter: nextIDAfter, Generation: generation}

	for _, id := range m.touchedOrder {
		ch := m.touched[id]
		after, existed := SnapshotEntity(st, id)
		ch.ExistedAfter = existed
		ch.After = after
		if ch.ExistedBefore == ch.ExistedAfter && (!existed || sameEntity(ch.Before, ch.After)) {
			continue
		}
		entry.Entities = append(entry.Entities, *ch)
	}
	sort.Slice(entry.Entities, func(i, j int) bool { return entry.Entities[i].ID < entry.Entities[j].ID })

	if m.hasLayers && !sameLayers(m.layersBefore, layersAfter) {
		entry.HasLayers = true
		entry.LayersBefore = m.layersBefore
		entry.LayersAfter = append([]store.Layer(nil), layersAfter...)
	}
	if m.hasDrawOrder && !sameIDs(m.drawOrderBefore, drawOrderAfter) {
		entry.HasDrawOrder = true
		entry.DrawOrderBefore = m.drawOrderBefore
		entry.DrawOrderAfter = append([]uint32(nil), drawOrderAfter...)
	}
	if m.hasSelection && !sameIDs(m.selectionBefore, selectionAfter) {
		entry.HasSelection = true
		entry.SelectionBefore = m.selectionBefore
		entry.SelectionAfter = append([]uint32(nil), selectionAfter...)
	}

	if len(entry.Entities) == 0 && !entry.HasLayers && !entry.HasDrawOrder && !entry.HasSelection {
		return false
	}

	m.entries = append(m.entries[:m.cursor], entry)
	m.cursor = len(m.entries)
	return true
}

func sameLayers(a, b []store.Layer) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameIDs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ApplyResult carries the document-wide state an applied entry
// restores, for the caller to refresh spatial/render/event state.
type ApplyResult struct {
	NextID       uint32
	Generation   uint64
	TouchedIDs   []uint32
	HasDrawOrder bool
	HasSelection bool
}

// Undo applies entries[cursor-1]'s before-state and decrements the
// cursor. It is a no-op if CanUndo is false.
func (m *Manager) Undo(st *store.EntityStore, drawOrder *selection.DrawOrder, sel *selection.Selection) (ApplyResult, bool) {
	if !m.CanUndo() {
		return ApplyResult{}, false
	}
	m.cursor--
	e := m.entries[m.cursor]
	res := m.applyEntitySide(st, e.Entities, true)
	if e.HasLayers {
		replaceLayers(st, e.LayersBefore)
	}
	if e.HasDrawOrder {
		drawOrder.Set(e.DrawOrderBefore)
	}
	if e.HasSelection {
		sel.Set(e.SelectionBefore, selection.Replace)
	}
	res.NextID = e.NextIDBefore
	res.Generation = e.Generation
	res.HasDrawOrder = e.HasDrawOrder
	res.HasSelection = e.HasSelection
	return res, true
}

// Redo applies entries[cursor]'s after-state and increments the
// cursor. It is a no-op if CanRedo is false.
func (m *Manager) Redo(st *store.EntityStore, drawOrder *selection.DrawOrder, sel *selection.Selection) (ApplyResult, bool) {
	if !m.CanRedo() {
		return ApplyResult{}, false
	}
	e := m.entries[m.cursor]
	m.cursor++
	res := m.applyEntitySide(st, e.Entities, false)
	if e.HasLayers {
		replaceLayers(st, e.LayersAfter)
	}
	if e.HasDrawOrder {
		drawOrder.Set(e.DrawOrderAfter)
	}
	if e.HasSelection {
		sel.Set(e.SelectionAfter, selection.Replace)
	}
	res.NextID = e.NextIDAfter
	res.Generation = e.Generation
	res.HasDrawOrder = e.HasDrawOrder
	res.HasSelection = e.HasSelection
	return res, true
}

func (m *Manager) applyEntitySide(st *store.EntityStore, changes []EntityChange, before bool) ApplyResult {
	var touched []uint32
	for _, ch := range changes {
		existed, snap := ch.ExistedAfter, ch.After
		if before {
			existed, snap = ch.ExistedBefore, ch.Before
		}
		if existed {
			ApplyEntity(st, ch.ID, snap)
		} else {
			st.DeleteEntity(ch.ID)
		}
		touched = append(touched, ch.ID)
	}
	return ApplyResult{TouchedIDs: touched}
}

func replaceLayers(st *store.EntityStore, layers []store.Layer) {
	existing := append([]store.Layer(nil), st.Layers()...)
	for _, l := range existing {
		st.DeleteLayer(l.ID)
	}
	for _, l := range layers {
		st.UpsertLayer(l)
	}
}
