package drawcore

import (
	"github.com/draftcore/engine/history"
	"github.com/draftcore/engine/interaction"
	"github.com/draftcore/engine/render"
	"github.com/draftcore/engine/snapshot"
)

// SaveSnapshot serializes the document's full canonical state
// (§4.10) into a standalone ESNP buffer, including the undo/redo
// history so a reloaded document can still undo/redo across a
// save/load boundary.
func (e *Engine) SaveSnapshot() []byte {
	return snapshot.Encode(snapshot.Document{
		Store:     e.Store,
		Text:      e.Text,
		Selection: e.Selection,
		DrawOrder: e.DrawOrder,
		NextID:    e.ids.Peek(),
		History:   e.history.EncodeBytes(),
	})
}

// LoadSnapshotFromBytes replaces the document's entire state with
// the one decoded from buf, resetting every derived index (spatial
// grid, render buffers, quad cache, interaction session) to match.
// On error the engine is left as it was before the call.
func (e *Engine) LoadSnapshotFromBytes(buf []byte) error {
	decoded, err := snapshot.Decode(buf)
	if err != nil {
		return err
	}

	e.Store = decoded.Store
	e.Text = decoded.Text
	e.Selection = decoded.Selection
	e.DrawOrder = decoded.DrawOrder
	e.ids.Reset(decoded.NextID)

	if decoded.History != nil {
		if m, err := history.DecodeBytes(decoded.History); err == nil {
			e.history = m
		} else {
			e.history = history.New()
		}
	} else {
		e.history = history.New()
	}

	e.session.Cancel()
	e.session = interaction.New(e.Store, e.grid)
	e.session.EnableLog(e.cfg.TransformLogEntryCapacity, e.cfg.TransformLogIDCapacity)
	e.render = render.New(e.Store)
	e.dispatcher.Store = e.Store
	e.dispatcher.Text = e.Text
	e.dispatcher.Selection = e.Selection
	e.dispatcher.DrawOrder = e.DrawOrder

	e.grid.Clear()
	e.grid.SetDrawOrder(e.DrawOrder.IDs())
	e.render.MarkFullRebuild()
	e.quads.Clear()
	e.resetTouched()

	for kind, ids := range allEntityIDs(e.Store) {
		for _, id := range ids {
			if box, ok := entityAABB(e.Store, kind, id); ok {
				e.grid.Update(id, box)
			}
		}
	}
	for _, id := range e.Text.DirtyIDs() {
		e.quads.MarkDirty(id)
	}

	e.generation++
	e.events.NotifyDocChanged()
	e.events.Flush(e.generation)
	return nil
}
