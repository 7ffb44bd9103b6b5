package store

import "github.com/draftcore/engine/geom"

// Flags are per-entity boolean attributes.
type Flags uint8

const (
	Visible Flags = 1 << iota
	Locked
)

// common holds the fields every geometric entity shares: identity,
// layer membership and visibility/lock flags.
type common struct {
	ID      uint32
	LayerID uint32
	Flags   Flags
}

// Rect is an axis-aligned rectangle (spec §3 Geometric records).
type Rect struct {
	common
	X, Y, W, H    float32
	Fill          geom.RGBA
	Stroke        geom.RGBA
	StrokeEnabled bool
	StrokeWidthPx float32
}

// Line is a single segment.
type Line struct {
	common
	X0, Y0, X1, Y1 float32
	Color          geom.RGBA
	Enabled        bool
	StrokeWidthPx  float32
}

// Polyline references a run of points in the shared point arena.
type Polyline struct {
	common
	Offset, Count int
	Color         geom.RGBA
	Enabled       bool
	StrokeWidthPx float32
}

// Circle is an (optionally elliptical, rotated) circle.
type Circle struct {
	common
	CX, CY, RX, RY, Rot, SX, SY float32
	Fill, Stroke                geom.RGBA
	StrokeEnabled               bool
	StrokeWidthPx               float32
}

// Polygon is a regular polygon with Sides vertices, otherwise
// identical in shape parameters to Circle.
type Polygon struct {
	common
	CX, CY, RX, RY, Rot, SX, SY float32
	Sides                       int
	Fill, Stroke                geom.RGBA
	StrokeEnabled               bool
	StrokeWidthPx               float32
}

// Arrow is a shaft with a triangular head.
type Arrow struct {
	common
	AX, AY, BX, BY float32
	Head           float32
	Stroke         geom.RGBA
	StrokeWidthPx  float32
}

// StyleOverride is a per-entity sidecar overriding the effective
// ByLayer style (spec §3 Layers: "Effective style for rendering is
// ByLayer unless the entity has an override sidecar").
type StyleOverride struct {
	HasStroke         bool
	Stroke            geom.RGBA
	HasFill           bool
	Fill              geom.RGBA
	HasTextColor      bool
	TextColor         geom.RGBA
	HasTextBackground bool
	TextBackground    geom.RGBA
}

// LayerFlags mirror entity Flags but apply to a layer as a whole.
type LayerFlags uint8

const (
	LayerVisible LayerFlags = 1 << iota
	LayerLocked
)

// LayerStyle is the ByLayer default style inherited by entities
// that carry no StyleOverride.
type LayerStyle struct {
	Stroke         geom.RGBA
	Fill           geom.RGBA
	TextColor      geom.RGBA
	TextBackground geom.RGBA
}

// Layer groups entities for visibility, locking and default style.
type Layer struct {
	ID    uint32
	Order int
	Flags LayerFlags
	Name  string
	Style LayerStyle
}
