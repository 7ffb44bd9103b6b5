package snapshot

import (
	"github.com/draftcore/engine/selection"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/wire"
)

const (
	headerSize     = 16
	sectionEntrySz = 16
)

// Document is the in-memory state an ESNP buffer round-trips: the
// geometric store, the text store, the selection and draw order
// vectors, the id watermark and an opaque history blob.
type Document struct {
	Store     *store.EntityStore
	Text      *text.Store
	Selection *selection.Selection
	DrawOrder *selection.DrawOrder
	NextID    uint32
	History   []byte // nil if the optional HIST section is absent
}

type section struct {
	tag     fourCC
	payload []byte
}

// Encode serializes doc into a standalone ESNP v1 buffer: header,
// section table, then section payloads, each sized and checksummed
// in its own table entry. Sections are written in a fixed order so
// equal documents always produce byte-identical output.
func Encode(doc Document) []byte {
	sections := []section{
		{tagENTS, encodeENTS(doc.Store)},
		{tagLAYR, encodeLAYR(doc.Store)},
		{tagORDR, encodeIDVector(doc.DrawOrder.IDs())},
		{tagSELC, encodeIDVector(doc.Selection.IDs())},
		{tagTEXT, encodeTEXT(doc.Text)},
		{tagNIDX, encodeNIDX(doc.NextID)},
		{tagSTYL, encodeSTYL(doc.Store)},
	}
	if doc.History != nil {
		sections = append(sections, section{tagHIST, doc.History})
	}

	w := wire.NewWriter(headerSize + sectionEntrySz*len(sections))
	w.U32(magic)
	w.U32(version)
	w.U32(uint32(len(sections)))
	w.U32(0) // reserved

	offset := headerSize + sectionEntrySz*len(sections)
	for _, s := range sections {
		w.U32(uint32(s.tag))
		w.U32(uint32(offset))
		w.U32(uint32(len(s.payload)))
		w.U32(wire.CRC32(s.payload))
		offset += len(s.payload)
	}
	for _, s := range sections {
		w.RawBytes(s.payload)
	}
	return w.Bytes()
}

type tableEntry struct {
	tag          fourCC
	offset, size uint32
	crc32        uint32
}

// Decode parses an ESNP v1 buffer into a fresh Document. A missing
// header, a magic/version mismatch, a missing required section or a
// checksum mismatch fails the load without mutating anything (the
// caller receives a zero Document and a non-nil error).
func Decode(buf []byte) (Document, error) {
	r := wire.NewReader(buf)
	gotMagic := r.U32()
	gotVersion := r.U32()
	count := r.U32()
	r.Skip(4) // reserved
	if r.Truncated() {
		return Document{}, wire.NewError(wire.BufferTruncated, "missing ESNP header")
	}
	if gotMagic != magic {
		return Document{}, wire.NewError(wire.InvalidMagic, "not an ESNP buffer")
	}
	if gotVersion != version {
		return Document{}, wire.NewError(wire.UnsupportedVersion, "unsupported ESNP version")
	}

	entries := make([]tableEntry, count)
	for i := range entries {
		entries[i] = tableEntry{
			tag:    fourCC(r.U32()),
			offset: r.U32(),
			size:   r.U32(),
			crc32:  r.U32(),
		}
	}
	if r.Truncated() {
		return Document{}, wire.NewError(wire.BufferTruncated, "truncated ESNP section table")
	}

	byTag := make(map[fourCC][]byte, len(entries))
	for _, e := range entries {
		end := uint64(e.offset) + uint64(e.size)
		if end > uint64(len(buf)) {
			return Document{}, wire.NewError(wire.BufferTruncated, "section extends past end of buffer")
		}
		payload := buf[e.offset:end]
		if wire.CRC32(payload) != e.crc32 {
			return Document{}, wire.NewError(wire.InvalidPayloadSize, "section checksum mismatch")
		}
		byTag[e.tag] = payload
	}
	for _, tag := range requiredTags {
		if _, ok := byTag[tag]; !ok {
			return Document{}, wire.NewError(wire.InvalidPayloadSize, "missing required section")
		}
	}

	doc := Document{
		Store:     store.New(),
		Text:      text.New(),
		Selection: selection.New(),
		DrawOrder: selection.NewDrawOrder(),
	}
	if err := decodeENTS(byTag[tagENTS], doc.Store); err != nil {
		return Document{}, err
	}
	if err := decodeLAYR(byTag[tagLAYR], doc.Store); err != nil {
		return Document{}, err
	}
	order, err := decodeIDVector(byTag[tagORDR])
	if err != nil {
		return Document{}, err
	}
	doc.DrawOrder.Set(order)
	sel, err := decodeIDVector(byTag[tagSELC])
	if err != nil {
		return Document{}, err
	}
	doc.Selection.Set(sel, selection.Replace)
	if err := decodeTEXT(byTag[tagTEXT], doc.Text); err != nil {
		return Document{}, err
	}
	nextID, err := decodeNIDX(byTag[tagNIDX])
	if err != nil {
		return Document{}, err
	}
	doc.NextID = nextID
	if err := decodeSTYL(byTag[tagSTYL], doc.Store); err != nil {
		return Document{}, err
	}
	if hist, ok := byTag[tagHIST]; ok {
		doc.History = append([]byte(nil), hist...)
	}
	return doc, nil
}
