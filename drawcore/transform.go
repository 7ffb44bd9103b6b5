package drawcore

import (
	"github.com/draftcore/engine/events"
	"github.com/draftcore/engine/interaction"
)

// beginHistory opens the history transaction for an interaction
// session before any entity in ids is mutated, so the before-snapshot
// MarkEntityChange captures is the pre-transform state (§5 "every
// mutation path that opens a transaction must either commit or
// discard before returning").
func (e *Engine) beginHistory(ids []uint32) {
	e.history.BeginEntry(e.ids.Peek())
	e.history.MarkDrawOrder(e.DrawOrder.IDs())
	e.history.MarkSelection(e.Selection.IDs())
	for _, id := range ids {
		e.history.MarkEntityChange(e.Store, id)
	}
}

// BeginMove starts a move transform over ids at the given pointer
// position (§4.6 "Begin").
func (e *Engine) BeginMove(ids []uint32, startX, startY float32, opts interaction.SnapOptions) {
	e.beginHistory(ids)
	e.session.BeginMove(ids, startX, startY, opts)
}

// BeginVertexDrag starts dragging vertex vertexIndex of a Polyline.
func (e *Engine) BeginVertexDrag(id uint32, vertexIndex int, startX, startY float32, opts interaction.SnapOptions) {
	e.beginHistory([]uint32{id})
	e.session.BeginVertexDrag(id, vertexIndex, startX, startY, opts)
}

// BeginResize starts a resize transform over ids, dragging corner.
func (e *Engine) BeginResize(ids []uint32, corner int, startX, startY float32, opts interaction.SnapOptions) {
	e.beginHistory(ids)
	e.session.BeginResize(ids, corner, startX, startY, opts)
}

// UpdateTransform advances the active transform to the new pointer
// position. It is a no-op if no transform is active.
func (e *Engine) UpdateTransform(pointerX, pointerY float32) {
	e.session.Update(pointerX, pointerY)
	for _, id := range e.session.TouchedIDs() {
		e.quads.MarkDirty(id)
		e.render.RefreshEntityRenderRange(id)
	}
}

// CommitTransform finalizes the active transform as one history
// entry and returns the affected ids, or nil if no transform was
// active (§4.6 "Commit", §5 "generation increments exactly once per
// completed top-level operation").
func (e *Engine) CommitTransform() []uint32 {
	if e.session.State() != interaction.TransformActive {
		return nil
	}
	result := e.session.Commit()
	for _, id := range e.session.TouchedIDs() {
		e.quads.MarkDirty(id)
		e.render.RefreshEntityRenderRange(id)
	}
	for _, id := range result.IDs {
		if kind, ok := e.Store.Kind(id); ok {
			e.events.NotifyEntityChanged(id, kind, events.Geometry)
		}
	}

	if !e.history.Open() {
		// No BeginMove/BeginVertexDrag/BeginResize opened a
		// transaction (or it was already closed by a
		// concurrent top-level operation): nothing to commit into.
		e.generation++
		e.events.Flush(e.generation)
		return result.IDs
	}

	e.generation++
	e.history.CommitEntry(e.Store, e.ids.Peek(), e.generation, e.Store.Layers(), e.DrawOrder.IDs(), e.Selection.IDs())
	e.events.Flush(e.generation)
	return result.IDs
}

// CancelTransform restores every entity to its pre-transform state,
// discards the open history transaction and clears the session. No
// history entry results.
func (e *Engine) CancelTransform() {
	e.session.Cancel()
	for _, id := range e.session.TouchedIDs() {
		e.quads.MarkDirty(id)
		e.render.RefreshEntityRenderRange(id)
	}
	if e.history.Open() {
		e.history.DiscardEntry()
	}
}

// TransformLog returns the interaction session's replay log, or nil
// if logging was never enabled.
func (e *Engine) TransformLog() *interaction.TransformLog { return e.session.Log() }

// ReplayTransformLog re-executes a previously recorded transform log
// against this engine's session — intended for a freshly loaded
// document whose entities are in the same pre-transform state the
// log was recorded from (§4.6, §4.11 testable property 6). It does
// not open a history transaction: replay is a reconstruction of
// already-committed state, not a new undoable operation.
func (e *Engine) ReplayTransformLog(log *interaction.TransformLog) error {
	if err := log.Replay(e.session); err != nil {
		return err
	}
	for id := range allTouchedIDsDrained(e.session) {
		e.quads.MarkDirty(id)
		e.render.RefreshEntityRenderRange(id)
	}
	return nil
}

func allTouchedIDsDrained(s *interaction.Session) map[uint32]bool {
	out := make(map[uint32]bool)
	for _, id := range s.TouchedIDs() {
		out[id] = true
	}
	return out
}
