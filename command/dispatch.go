package command

import (
	"github.com/draftcore/engine/events"
	"github.com/draftcore/engine/selection"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

// Dispatcher routes parsed EWDC commands to the entity store, text
// store, selection/draw-order vectors and event queue. History
// integration is the caller's responsibility: Touch, when set, is
// invoked with every id a command is about to mutate, before the
// mutation is performed, so a host can open an undo transaction
// around an entire buffer and still capture correct before-snapshots.
type Dispatcher struct {
	Store     *store.EntityStore
	Text      *text.Store
	Selection *selection.Selection
	DrawOrder *selection.DrawOrder
	Events    *events.Queue
	IDs       *wire.IDAllocator
	ViewScale float32

	Touch func(id uint32)

	// OnClear, when set, is invoked after ClearAll resets Store, Text,
	// Selection and DrawOrder, so a caller holding other state derived
	// from them (a spatial index, a render buffer) can reset in step.
	OnClear func()

	// OnOrderChanged, when set, is invoked every time the draw order
	// itself is rearranged (not just an entity within it), so a
	// caller whose render buffer layout tracks draw-order position
	// knows to schedule a full rebuild rather than an in-place patch.
	OnOrderChanged func()
}

func (d *Dispatcher) notifyOrderChanged() {
	d.Events.NotifyOrderChanged()
	if d.OnOrderChanged != nil {
		d.OnOrderChanged()
	}
}

func (d *Dispatcher) observe(id uint32) {
	if d.IDs != nil {
		d.IDs.Observe(id)
	}
}

func (d *Dispatcher) touch(id uint32) {
	if d.Touch != nil {
		d.Touch(id)
	}
}

// Apply parses buf and executes every command in order. Buffer-level
// errors (bad header, unknown opcode, truncated or mis-sized
// payload) are caught before any command runs and leave the engine
// untouched. A logical error from an individual command (missing id,
// out-of-range index) halts the remainder of the buffer but does not
// undo commands already applied.
func (d *Dispatcher) Apply(buf []byte) error {
	raws, err := Parse(buf)
	if err != nil {
		return err
	}
	ops := make([]func() error, 0, len(raws))
	for _, raw := range raws {
		op, err := d.prepare(raw)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	for _, apply := range ops {
		if err := apply(); err != nil {
			return err
		}
	}
	return nil
}

// prepare decodes raw's payload into a typed, fully-validated
// operation and returns a closure that performs the mutation. Size
// and framing errors surface here, before any command runs; logical
// errors (missing id) surface only when the closure actually runs.
func (d *Dispatcher) prepare(raw Raw) (func() error, error) {
	switch raw.Op {
	case ClearAll:
		if err := finish(wire.NewReader(raw.Payload)); err != nil {
			return nil, err
		}
		return func() error {
			d.Store.Clear()
			d.Text.Clear()
			d.Selection.Clear()
			d.DrawOrder.Clear()
			d.Events.NotifyDocChanged()
			if d.OnClear != nil {
				d.OnClear()
			}
			return nil
		}, nil

	case UpsertRect:
		rect, err := decodeUpsertRect(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			created := !d.entityExists(id)
			d.observe(id)
			d.Store.UpsertRect(id, rect)
			d.afterUpsert(id, wire.KindRect, created)
			return nil
		}, nil

	case UpsertLine:
		l, err := decodeUpsertLine(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			created := !d.entityExists(id)
			d.observe(id)
			d.Store.UpsertLine(id, l)
			d.afterUpsert(id, wire.KindLine, created)
			return nil
		}, nil

	case UpsertPolyline:
		pl, pts, err := decodeUpsertPolyline(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			created := !d.entityExists(id)
			d.observe(id)
			d.Store.UpsertPolyline(id, pl, pts)
			d.afterUpsert(id, wire.KindPolyline, created)
			return nil
		}, nil

	case UpsertCircle:
		c, err := decodeUpsertCircle(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			created := !d.entityExists(id)
			d.observe(id)
			d.Store.UpsertCircle(id, c)
			d.afterUpsert(id, wire.KindCircle, created)
			return nil
		}, nil

	case UpsertPolygon:
		p, err := decodeUpsertPolygon(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			created := !d.entityExists(id)
			d.observe(id)
			d.Store.UpsertPolygon(id, p)
			d.afterUpsert(id, wire.KindPolygon, created)
			return nil
		}, nil

	case UpsertArrow:
		a, err := decodeUpsertArrow(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			created := !d.entityExists(id)
			d.observe(id)
			d.Store.UpsertArrow(id, a)
			d.afterUpsert(id, wire.KindArrow, created)
			return nil
		}, nil

	case DeleteEntity:
		if err := finish(wire.NewReader(raw.Payload)); err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			kind, existed := d.Store.Kind(id)
			if !existed {
				return nil
			}
			d.Store.DeleteEntity(id)
			d.DrawOrder.Remove(id)
			d.Events.NotifyEntityDeleted(id, kind)
			d.notifyOrderChanged()
			return nil
		}, nil

	case SetDrawOrder:
		ids, err := decodeSetDrawOrder(raw.Payload)
		if err != nil {
			return nil, err
		}
		return func() error {
			d.DrawOrder.Set(ids)
			d.notifyOrderChanged()
			return nil
		}, nil

	case SetViewScale:
		scale, err := decodeSetViewScale(raw.Payload)
		if err != nil {
			return nil, err
		}
		return func() error {
			d.ViewScale = scale
			return nil
		}, nil

	case UpsertText:
		rec, err := decodeUpsertText(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			_, existed := d.Text.FindText(id)
			d.observe(id)
			d.Text.UpsertText(id, rec)
			if !existed {
				d.DrawOrder.Push(id)
				d.Events.NotifyEntityCreated(id, wire.KindText)
			}
			d.Events.NotifyEntityChanged(id, wire.KindText, events.Geometry|events.Style|events.Text)
			return nil
		}, nil

	case DeleteText:
		if err := finish(wire.NewReader(raw.Payload)); err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			d.touch(id)
			if !d.Text.DeleteText(id) {
				return nil
			}
			d.DrawOrder.Remove(id)
			d.Events.NotifyEntityDeleted(id, wire.KindText)
			d.notifyOrderChanged()
			return nil
		}, nil

	case SetTextCaret:
		at, err := decodeByteOffset(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			if _, ok := d.Text.FindText(id); !ok {
				return wire.NewError(wire.InvalidOperation, "SetTextCaret: unknown text id")
			}
			d.Text.SetCaret(id, at)
			return nil
		}, nil

	case SetTextSelection:
		anchor, caret, err := decodeRange(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			if _, ok := d.Text.FindText(id); !ok {
				return wire.NewError(wire.InvalidOperation, "SetTextSelection: unknown text id")
			}
			d.Text.SetSelection(id, anchor, caret)
			return nil
		}, nil

	case InsertTextContent:
		at, s, err := decodeInsertTextContent(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			if _, ok := d.Text.FindText(id); !ok {
				return wire.NewError(wire.InvalidOperation, "InsertTextContent: unknown text id")
			}
			d.touch(id)
			d.Text.InsertContent(id, at, s)
			d.Events.NotifyEntityChanged(id, wire.KindText, events.Text|events.Bounds)
			return nil
		}, nil

	case DeleteTextContent:
		lo, hi, err := decodeRange(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			if _, ok := d.Text.FindText(id); !ok {
				return wire.NewError(wire.InvalidOperation, "DeleteTextContent: unknown text id")
			}
			d.touch(id)
			d.Text.DeleteContent(id, lo, hi)
			d.Events.NotifyEntityChanged(id, wire.KindText, events.Text|events.Bounds)
			return nil
		}, nil

	case ApplyTextStyle:
		op, err := decodeApplyTextStyle(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			if _, ok := d.Text.FindText(id); !ok {
				return wire.NewError(wire.InvalidOperation, "ApplyTextStyle: unknown text id")
			}
			d.touch(id)
			d.Text.ApplyTextStyle(id, op.Lo, op.Hi, op.Mask, op.Mode, op.Params)
			d.Events.NotifyEntityChanged(id, wire.KindText, events.Style)
			return nil
		}, nil

	case SetTextAlign:
		align, err := decodeSetTextAlign(raw.Payload)
		if err != nil {
			return nil, err
		}
		id := raw.ID
		return func() error {
			if _, ok := d.Text.FindText(id); !ok {
				return wire.NewError(wire.InvalidOperation, "SetTextAlign: unknown text id")
			}
			d.touch(id)
			d.Text.SetTextAlign(id, align)
			d.Events.NotifyEntityChanged(id, wire.KindText, events.Bounds)
			return nil
		}, nil

	default:
		return nil, wire.NewError(wire.UnknownCommand, "unhandled opcode")
	}
}

func (d *Dispatcher) entityExists(id uint32) bool {
	_, ok := d.Store.Kind(id)
	return ok
}

// afterUpsert stages the creation/change events and draw-order
// insertion common to every geometric upsertX command.
func (d *Dispatcher) afterUpsert(id uint32, kind wire.Kind, created bool) {
	if created {
		d.DrawOrder.Push(id)
		d.Events.NotifyEntityCreated(id, kind)
	}
	d.Events.NotifyEntityChanged(id, kind, events.Geometry|events.Style)
}
