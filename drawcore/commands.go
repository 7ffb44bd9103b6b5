package drawcore

import (
	"github.com/draftcore/engine/command"
	"github.com/draftcore/engine/history"
)

var clearAllBuffer = command.Encode([]command.Raw{{Op: command.ClearAll}})

// ApplyCommandBuffer parses and applies an EWDC command buffer as
// one top-level operation: a single history entry wraps every
// command, a single generation bump and event flush follow the
// whole buffer rather than each command (§5 "Ordering guarantees").
//
// A buffer-level error (bad header, unknown opcode, truncated
// payload) is caught before any command runs and leaves the engine
// untouched. A logical error from an individual command (missing id)
// halts the remainder of the buffer; commands already applied are
// not undone, but — per the scoped-transaction policy in §5 — the
// history entry covering them is discarded rather than committed, so
// no corresponding undo step is offered for a buffer that did not
// fully succeed.
func (e *Engine) ApplyCommandBuffer(buf []byte) error {
	e.history.BeginEntry(e.ids.Peek())
	e.history.MarkDrawOrder(e.DrawOrder.IDs())
	e.history.MarkSelection(e.Selection.IDs())
	e.history.MarkLayers(e.Store.Layers())
	e.resetTouched()

	err := e.dispatcher.Apply(buf)
	e.refreshTouched()

	if err != nil {
		e.history.DiscardEntry()
		return err
	}

	e.generation++
	e.history.CommitEntry(e.Store, e.ids.Peek(), e.generation, e.Store.Layers(), e.DrawOrder.IDs(), e.Selection.IDs())
	e.events.Flush(e.generation)
	return nil
}

// Clear resets the document to empty: every entity, layer, text,
// selection and draw-order member is discarded, along with the
// derived spatial/render/quad state. A ClearAll command buffer
// reaches the same outcome through ApplyCommandBuffer; Clear is the
// direct host-facing equivalent that also resets history and the id
// watermark, which ClearAll intentionally does not touch.
func (e *Engine) Clear() {
	e.dispatcher.Apply(clearAllBuffer)
	e.resetTouched()
	e.history = history.New()
	e.ids.Reset(1)
	e.generation++
	e.events.Flush(e.generation)
}
