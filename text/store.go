// Package text implements the text subsystem's core glue: content
// and run storage, run algebra over content edits, and style
// application (spec §4.8). Layout and glyph rasterization are
// external collaborators; this package depends only on the narrow
// TextLayout/GlyphAtlas contracts in layout.go and atlas/.
package text

import "github.com/go-text/typesetting/font"

// AlignMode is the paragraph alignment of a text entity.
type AlignMode uint8

const (
	AlignLeft AlignMode = iota
	AlignCenter
	AlignRight
)

// BoxMode selects whether a text entity wraps to ConstraintWidth or
// grows to fit its content (spec §3 "box mode {AutoWidth, FixedWidth}").
type BoxMode uint8

const (
	AutoWidth BoxMode = iota
	FixedWidth
)

// Flags are the per-entity boolean attributes a text record carries,
// mirrored from package store's Flags so the text subsystem does not
// import it.
type Flags uint8

const (
	Visible Flags = 1 << iota
	Locked
)

// StyleFlags are the boolean style attributes a run may carry.
type StyleFlags uint16

const (
	Bold StyleFlags = 1 << iota
	Italic
	Underline
	Strikethrough
)

// TextRun is one contiguous styled span of a text's content, in
// byte offsets (spec §4.8 "Run algebra").
type TextRun struct {
	StartIndex int
	Length     int
	Flags      StyleFlags
	FontID     font.ID
	FontSize   float32
}

func (r TextRun) end() int { return r.StartIndex + r.Length }

// TextRec is one text entity's record: its layer/flags membership
// (common fields mirrored from the geometric store so the text
// subsystem does not depend on package store), plus content, runs,
// layout parameters and cached bounds.
type TextRec struct {
	ID      uint32
	LayerID uint32
	Flags   Flags

	AnchorX, AnchorY float32
	Rotation         float32
	Box              BoxMode

	Content         string
	Runs            []TextRun
	Align           AlignMode
	ConstraintWidth float32

	CaretByte       int
	SelectionAnchor int
	HasSelection    bool

	BoundsX, BoundsY, BoundsW, BoundsH float32
}

// Store owns every TextRec plus the set of ids whose layout is stale
// (spec §4.8 "Store ... invalidate the id's layout via a dirty set").
type Store struct {
	recs  map[uint32]*TextRec
	dirty map[uint32]bool
}

// New returns an empty text Store.
func New() *Store {
	return &Store{recs: make(map[uint32]*TextRec), dirty: make(map[uint32]bool)}
}

// UpsertText creates or replaces the text record at id.
func (s *Store) UpsertText(id uint32, rec TextRec) {
	rec.ID = id
	s.recs[id] = &rec
	s.markDirty(id)
}

// FindText returns the record at id, if any.
func (s *Store) FindText(id uint32) (*TextRec, bool) {
	r, ok := s.recs[id]
	return r, ok
}

// DeleteText removes the record at id.
func (s *Store) DeleteText(id uint32) bool {
	if _, ok := s.recs[id]; !ok {
		return false
	}
	delete(s.recs, id)
	delete(s.dirty, id)
	return true
}

// Clear resets the store to empty (used by ClearAll / snapshot load).
func (s *Store) Clear() {
	s.recs = make(map[uint32]*TextRec)
	s.dirty = make(map[uint32]bool)
}

// All returns every text record, unordered.
func (s *Store) All() []*TextRec {
	out := make([]*TextRec, 0, len(s.recs))
	for _, r := range s.recs {
		out = append(out, r)
	}
	return out
}

func (s *Store) markDirty(id uint32) { s.dirty[id] = true }

// DirtyIDs returns the ids whose layout must be recomputed.
func (s *Store) DirtyIDs() []uint32 {
	out := make([]uint32, 0, len(s.dirty))
	for id := range s.dirty {
		out = append(out, id)
	}
	return out
}

// ClearDirty marks id's layout as clean (called by LayoutDirtyTexts
// once it has rebuilt the layout).
func (s *Store) ClearDirty(id uint32) { delete(s.dirty, id) }

// SetRuns replaces id's run list outright.
func (s *Store) SetRuns(id uint32, runs []TextRun) {
	r, ok := s.recs[id]
	if !ok {
		return
	}
	r.Runs = runs
	s.markDirty(id)
}

// SetCaret moves the collapsed caret to byteOffset, clearing any
// selection.
func (s *Store) SetCaret(id uint32, byteOffset int) {
	r, ok := s.recs[id]
	if !ok {
		return
	}
	r.CaretByte = byteOffset
	r.HasSelection = false
}

// SetSelection establishes a range selection [anchor, byteOffset)
// (order-independent; caret tracks byteOffset).
func (s *Store) SetSelection(id uint32, anchor, byteOffset int) {
	r, ok := s.recs[id]
	if !ok {
		return
	}
	r.SelectionAnchor = anchor
	r.CaretByte = byteOffset
	r.HasSelection = anchor != byteOffset
}

// SetTextAlign sets id's paragraph alignment.
func (s *Store) SetTextAlign(id uint32, align AlignMode) {
	r, ok := s.recs[id]
	if !ok {
		return
	}
	r.Align = align
	s.markDirty(id)
}

// SetConstraintWidth sets id's wrap width (0 disables wrapping).
func (s *Store) SetConstraintWidth(id uint32, width float32) {
	r, ok := s.recs[id]
	if !ok {
		return
	}
	r.ConstraintWidth = width
	s.markDirty(id)
}
