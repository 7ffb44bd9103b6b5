package drawcore

import "github.com/draftcore/engine/history"

// Undo reverts the most recently committed history entry, restoring
// every entity, layer, draw-order or selection aspect it touched,
// and returns the ids whose spatial/render/quad state the caller
// must refresh. It is a no-op (returns nil) if there is nothing to
// undo.
func (e *Engine) Undo() []uint32 {
	e.history.Suppressed = true
	res, ok := e.history.Undo(e.Store, e.DrawOrder, e.Selection)
	e.history.Suppressed = false
	if !ok {
		return nil
	}
	return e.finishHistoryApply(res)
}

// Redo reapplies the entry most recently undone. It is a no-op
// (returns nil) if there is nothing to redo.
func (e *Engine) Redo() []uint32 {
	e.history.Suppressed = true
	res, ok := e.history.Redo(e.Store, e.DrawOrder, e.Selection)
	e.history.Suppressed = false
	if !ok {
		return nil
	}
	return e.finishHistoryApply(res)
}

func (e *Engine) finishHistoryApply(res history.ApplyResult) []uint32 {
	e.ids.Reset(res.NextID)
	e.generation = res.Generation
	if res.HasDrawOrder {
		e.grid.SetDrawOrder(e.DrawOrder.IDs())
		e.render.MarkFullRebuild()
		e.events.NotifyOrderChanged()
	}
	if res.HasSelection {
		e.events.NotifySelectionChanged()
	}
	for _, id := range res.TouchedIDs {
		e.refreshEntity(id)
	}
	e.events.NotifyHistoryChanged()
	e.events.NotifyDocChanged()
	e.events.Flush(e.generation)
	return res.TouchedIDs
}

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// HistoryLen returns the number of entries on the undo/redo stack.
func (e *Engine) HistoryLen() int { return e.history.Len() }
