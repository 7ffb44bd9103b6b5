package wire

import (
	"encoding/binary"
)

// Reader walks a byte slice extracting little-endian fixed-width
// fields, in the style of gltf.glbHeader/glbChunk parsing: every
// accessor advances an internal cursor and records whether it ran
// past the end of the buffer, so callers can perform one bounds
// check after a sequence of reads instead of checking each one.
type Reader struct {
	b   []byte
	off int
	err bool
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader { return &Reader{b: b} }

// Off returns the current cursor offset.
func (r *Reader) Off() int { return r.off }

// Truncated reports whether any read ran past the end of the buffer.
func (r *Reader) Truncated() bool { return r.err }

// Remaining returns the number of unread bytes, or 0 if already truncated.
func (r *Reader) Remaining() int {
	if r.err || r.off > len(r.b) {
		return 0
	}
	return len(r.b) - r.off
}

func (r *Reader) take(n int) []byte {
	if r.err || r.off+n > len(r.b) {
		r.err = true
		return nil
	}
	s := r.b[r.off : r.off+n]
	r.off += n
	return s
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U8 reads a single byte.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// F32 reads a little-endian IEEE-754 float32.
func (r *Reader) F32() float32 {
	return F32FromBits(r.U32())
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) { r.take(n) }

// Writer accumulates little-endian fixed-width fields into a
// growable byte buffer, mirroring the encode side of Reader.
type Writer struct {
	b []byte
}

// NewWriter returns an empty Writer, optionally preallocated to cap hint.
func NewWriter(capHint int) *Writer {
	return &Writer{b: make([]byte, 0, capHint)}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.b }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.b) }

// U32 appends a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.b = append(w.b, b[:]...)
}

// U16 appends a little-endian uint16.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.b = append(w.b, b[:]...)
}

// U8 appends a single byte.
func (w *Writer) U8(v uint8) { w.b = append(w.b, v) }

// F32 appends a little-endian IEEE-754 float32.
func (w *Writer) F32(v float32) { w.U32(F32Bits(v)) }

// RawBytes appends raw bytes verbatim.
func (w *Writer) RawBytes(b []byte) { w.b = append(w.b, b...) }

// PatchU32 overwrites the uint32 at byte offset off (used to
// back-patch section sizes/offsets once they become known).
func (w *Writer) PatchU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(w.b[off:off+4], v)
}
