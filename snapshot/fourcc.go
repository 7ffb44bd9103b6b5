// Package snapshot implements the ESNP document codec: a header, a
// section table and the required/optional sections that together
// form a standalone, content-addressable document image.
package snapshot

import (
	"github.com/draftcore/engine/geom"
	"github.com/draftcore/engine/wire"
)

const (
	magic   = 0x504E5345 // "ESNP", little-endian u32
	version = 1
)

type fourCC uint32

func cc(s string) fourCC {
	return fourCC(uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24)
}

var (
	tagENTS = cc("ENTS")
	tagLAYR = cc("LAYR")
	tagORDR = cc("ORDR")
	tagSELC = cc("SELC")
	tagTEXT = cc("TEXT")
	tagNIDX = cc("NIDX")
	tagSTYL = cc("STYL")
	tagHIST = cc("HIST")
)

// requiredTags is the section set whose absence or checksum mismatch
// fails the load.
var requiredTags = []fourCC{tagENTS, tagLAYR, tagORDR, tagSELC, tagTEXT, tagNIDX, tagSTYL}

func readRGBA(r *wire.Reader) geom.RGBA { return geom.RGBA{r.F32(), r.F32(), r.F32(), r.F32()} }

func writeRGBA(w *wire.Writer, c geom.RGBA) {
	w.F32(c[0])
	w.F32(c[1])
	w.F32(c[2])
	w.F32(c[3])
}
