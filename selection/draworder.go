package selection

// DrawOrder is the back-to-front paint sequence, also the z-index
// source for picking (spec §3 Draw order). Mutations are infrequent
// relative to reads, so Remove's O(n) scan is an accepted cost
// (spec §4.1 Algorithm).
type DrawOrder struct {
	ids []uint32
}

// NewDrawOrder returns an empty draw order (named so as not to
// collide with Selection's zero-arg New in the same package).
func NewDrawOrder() *DrawOrder { return &DrawOrder{} }

// IDs returns the order back-to-front.
func (d *DrawOrder) IDs() []uint32 { return d.ids }

// Len returns the number of entries.
func (d *DrawOrder) Len() int { return len(d.ids) }

// Clear empties the draw order.
func (d *DrawOrder) Clear() { d.ids = nil }

// Push appends id to the front (top) of the draw order.
func (d *DrawOrder) Push(id uint32) { d.ids = append(d.ids, id) }

// Remove deletes id from the draw order, if present.
func (d *DrawOrder) Remove(id uint32) {
	for i, x := range d.ids {
		if x == id {
			d.ids = append(d.ids[:i], d.ids[i+1:]...)
			return
		}
	}
}

// Set replaces the entire draw order, e.g. from SetDrawOrder or a
// snapshot ORDR section.
func (d *DrawOrder) Set(ids []uint32) { d.ids = append([]uint32(nil), ids...) }

// IndexOf returns the position of id, or -1 if absent.
func (d *DrawOrder) IndexOf(id uint32) int {
	for i, x := range d.ids {
		if x == id {
			return i
		}
	}
	return -1
}

// ReorderAction is one of the layer-ordering commands (spec §4.10).
type ReorderAction int

const (
	BringToFront ReorderAction = iota
	SendToBack
	BringForward
	SendBackward
)

// Reorder moves the given ids together within the draw order,
// preserving their relative order, according to action. refID is
// consulted only for the relative actions (BringForward,
// SendBackward): a moved id steps past its neighbour in the
// direction of travel only when that neighbour is refID, so the
// block passes refID when refID is directly ahead of it and stays
// put otherwise. If refID is 0, the relative actions act as a
// one-step shift of the whole selected block.
func (d *DrawOrder) Reorder(ids []uint32, action ReorderAction, refID uint32) {
	if len(ids) == 0 || len(d.ids) == 0 {
		return
	}
	moving := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		moving[id] = true
	}
	var block []uint32
	var rest []uint32
	for _, id := range d.ids {
		if moving[id] {
			block = append(block, id)
		} else {
			rest = append(rest, id)
		}
	}
	if len(block) == 0 {
		return
	}
	switch action {
	case BringToFront:
		d.ids = append(rest, block...)
	case SendToBack:
		d.ids = append(append([]uint32(nil), block...), rest...)
	case BringForward:
		d.ids = shiftBlock(d.ids, moving, +1, refID)
	case SendBackward:
		d.ids = shiftBlock(d.ids, moving, -1, refID)
	}
}

// shiftBlock moves every id marked in moving one step in dir
// direction (+1 toward the front/end of the slice, -1 toward the
// back/start), preserving relative order of both the moving block
// and the untouched ids.
func shiftBlock(order []uint32, moving map[uint32]bool, dir int, refID uint32) []uint32 {
	out := append([]uint32(nil), order...)
	if dir > 0 {
		for i := len(out) - 2; i >= 0; i-- {
			if moving[out[i]] && !moving[out[i+1]] {
				if refID == 0 || out[i+1] == refID {
					out[i], out[i+1] = out[i+1], out[i]
				}
			}
		}
	} else {
		for i := 1; i < len(out); i++ {
			if moving[out[i]] && !moving[out[i-1]] {
				if refID == 0 || out[i-1] == refID {
					out[i], out[i-1] = out[i-1], out[i]
				}
			}
		}
	}
	return out
}
