// Package digest computes the 64-bit FNV-1a document digest (spec
// §4.11): a canonical walk over layers, per-kind entities, draw
// order, selection, text content/runs and the next-entity-id
// watermark, folded into one running hash.
package digest

import (
	"encoding/binary"

	"github.com/draftcore/engine/wire"
)

// Builder accumulates a canonical walk into a single FNV-1a state.
// The engine façade drives the walk (it alone knows the canonical
// field order across packages); Builder only owns the hash state
// and float/string canonicalization.
type Builder struct {
	h hash64
}

type hash64 interface {
	Write(p []byte) (int, error)
	Sum64() uint64
}

// New returns a fresh Builder.
func New() *Builder { return &Builder{h: wire.NewFNV1a64()} }

// U32 folds a raw uint32 into the walk.
func (b *Builder) U32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	b.h.Write(buf[:])
}

// F32 folds a float32 into the walk, canonicalizing NaN and -0
// first (spec §4.11 "Floats are canonicalized... before hashing").
func (b *Builder) F32(v float32) { b.U32(wire.CanonicalF32(v)) }

// Bytes folds raw bytes (e.g. text content) into the walk, preceded
// by their length so that adjacent variable-length fields cannot be
// confused for each other (e.g. "ab"+"c" vs "a"+"bc").
func (b *Builder) Bytes(p []byte) {
	b.U32(uint32(len(p)))
	b.h.Write(p)
}

// String folds a string into the walk.
func (b *Builder) String(s string) { b.Bytes([]byte(s)) }

// Sum returns the digest split into (lo, hi) 32-bit halves, per
// spec §4.11 "Split into (lo:u32, hi:u32)".
func (b *Builder) Sum() (lo, hi uint32) {
	v := b.h.Sum64()
	return uint32(v), uint32(v >> 32)
}
