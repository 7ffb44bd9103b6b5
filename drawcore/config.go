// Package drawcore implements the engine façade tying together the
// entity store, command dispatcher, render builder, spatial index,
// interaction session, history manager, text subsystem and event
// queue into one in-memory CAD document engine.
package drawcore

// Config configures a new Engine. Unlike the teacher's package-level
// Configure/cfg pattern, Config is a value passed to New: the engine
// is an in-process library, and a host may hold more than one
// document open at a time (§9 "Global engine state").
type Config struct {
	// GridCellSize is the spatial hash grid's cell size, in world
	// units.
	//
	// Default is 50.
	GridCellSize float32

	// EventCapacity bounds the event queue's ring buffer.
	//
	// Default is 2048.
	EventCapacity int

	// TransformLogEntryCapacity bounds the number of entries the
	// transform log records before tainting. Values <= 0 select the
	// default; the log is always enabled.
	//
	// Default is 4096.
	TransformLogEntryCapacity int

	// TransformLogIDCapacity bounds the shared id vector the
	// transform log's Begin entries index into.
	//
	// Default is 8192.
	TransformLogIDCapacity int

	// QuadCacheCapacity bounds the number of texts whose glyph
	// quads are kept in the LRU cache at once.
	//
	// Default is 256.
	QuadCacheCapacity int

	// AtlasCellPx is the glyph atlas's fixed cell size, in pixels.
	//
	// Default is 32.
	AtlasCellPx int

	// AtlasGridSide is the glyph atlas's side dimension, in cells.
	//
	// Default is 64 (4096 cells).
	AtlasGridSide int
}

const (
	dflGridCellSize             = 50
	dflEventCapacity             = 2048
	dflTransformLogEntryCapacity = 4096
	dflTransformLogIDCapacity    = 8192
	dflQuadCacheCapacity         = 256
	dflAtlasCellPx               = 32
	dflAtlasGridSide             = 64
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GridCellSize:              dflGridCellSize,
		EventCapacity:             dflEventCapacity,
		TransformLogEntryCapacity: dflTransformLogEntryCapacity,
		TransformLogIDCapacity:    dflTransformLogIDCapacity,
		QuadCacheCapacity:         dflQuadCacheCapacity,
		AtlasCellPx:               dflAtlasCellPx,
		AtlasGridSide:             dflAtlasGridSide,
	}
}

func (c Config) withDefaults() Config {
	if c.GridCellSize <= 0 {
		c.GridCellSize = dflGridCellSize
	}
	if c.EventCapacity <= 0 {
		c.EventCapacity = dflEventCapacity
	}
	if c.TransformLogEntryCapacity <= 0 {
		c.TransformLogEntryCapacity = dflTransformLogEntryCapacity
	}
	if c.TransformLogIDCapacity <= 0 {
		c.TransformLogIDCapacity = dflTransformLogIDCapacity
	}
	if c.QuadCacheCapacity <= 0 {
		c.QuadCacheCapacity = dflQuadCacheCapacity
	}
	if c.AtlasCellPx <= 0 {
		c.AtlasCellPx = dflAtlasCellPx
	}
	if c.AtlasGridSide <= 0 {
		c.AtlasGridSide = dflAtlasGridSide
	}
	return c
}
