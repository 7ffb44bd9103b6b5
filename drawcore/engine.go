package drawcore

import (
	"github.com/draftcore/engine/command"
	"github.com/draftcore/engine/events"
	"github.com/draftcore/engine/history"
	"github.com/draftcore/engine/interaction"
	"github.com/draftcore/engine/render"
	"github.com/draftcore/engine/selection"
	"github.com/draftcore/engine/spatial"
	"github.com/draftcore/engine/store"
	"github.com/draftcore/engine/text"
	"github.com/draftcore/engine/text/atlas"
	"github.com/draftcore/engine/wire"
)

// Engine is a single CAD document: the canonical state plus the
// derived indices (spatial, render, quad) kept in step with it. A
// host that needs more than one open document constructs more than
// one Engine — there is no package-level singleton (§9 "Global
// engine state").
type Engine struct {
	cfg Config

	Store     *store.EntityStore
	Text      *text.Store
	Selection *selection.Selection
	DrawOrder *selection.DrawOrder

	grid    *spatial.Grid
	render  *render.Builder
	session *interaction.Session
	history *history.Manager
	events  *events.Queue
	quads   *text.QuadBuilder
	atlas   *atlas.Atlas
	ids     *wire.IDAllocator

	dispatcher *command.Dispatcher

	layouter text.Layouter

	generation uint64
	touched    map[uint32]bool
	touchedIDs []uint32
}

// New returns an empty Engine configured by cfg. layouter and
// rasterizer are the external text-shaping and glyph-rendering
// collaborators (§4.8); either may be nil if a host never creates
// text entities.
func New(cfg Config, layouter text.Layouter, rasterizer text.GlyphRasterizer) *Engine {
	cfg = cfg.withDefaults()

	e := &Engine{
		cfg:        cfg,
		Store:      store.New(),
		Text:       text.New(),
		Selection:  selection.New(),
		DrawOrder:  selection.NewDrawOrder(),
		grid:       spatial.New(cfg.GridCellSize),
		history:    history.New(),
		events:     events.New(cfg.EventCapacity),
		ids:        wire.NewIDAllocator(),
		layouter:   layouter,
		touched:    make(map[uint32]bool),
	}
	e.render = render.New(e.Store)
	e.session = interaction.New(e.Store, e.grid)
	e.session.EnableLog(cfg.TransformLogEntryCapacity, cfg.TransformLogIDCapacity)
	e.atlas = atlas.New(cfg.AtlasCellPx, cfg.AtlasGridSide)
	e.quads = text.NewQuadBuilder(e.atlas, rasterizer, cfg.QuadCacheCapacity)

	e.dispatcher = &command.Dispatcher{
		Store:          e.Store,
		Text:           e.Text,
		Selection:      e.Selection,
		DrawOrder:      e.DrawOrder,
		Events:         e.events,
		IDs:            e.ids,
		ViewScale:      1,
		Touch:          e.touch,
		OnClear:        e.onClear,
		OnOrderChanged: e.onOrderChanged,
	}
	return e
}

// Generation returns the monotonic counter bumped once per
// completed top-level operation (§5 "Ordering guarantees").
func (e *Engine) Generation() uint64 { return e.generation }

// touch records id as mutated during the current top-level
// operation, both for the open history transaction and for the
// post-operation spatial/render/quad refresh pass.
func (e *Engine) touch(id uint32) {
	e.history.MarkEntityChange(e.Store, id)
	if !e.touched[id] {
		e.touched[id] = true
		e.touchedIDs = append(e.touchedIDs, id)
	}
}

func (e *Engine) onClear() {
	e.grid.Clear()
	e.render.Clear()
	e.quads.Clear()
	e.session.Cancel()
}

func (e *Engine) onOrderChanged() {
	e.grid.SetDrawOrder(e.DrawOrder.IDs())
	e.render.MarkFullRebuild()
}

func (e *Engine) resetTouched() {
	for id := range e.touched {
		delete(e.touched, id)
	}
	e.touchedIDs = e.touchedIDs[:0]
}

// refreshTouched re-derives the spatial AABB, render range and quad
// cache entry of every id touched since the last call, then clears
// the touched set. It is the one place outside interaction.Session
// that keeps the grid and render builder in step with a direct
// store/text mutation.
func (e *Engine) refreshTouched() []uint32 {
	ids := append([]uint32(nil), e.touchedIDs...)
	for _, id := range ids {
		e.refreshEntity(id)
	}
	e.resetTouched()
	return ids
}

func (e *Engine) refreshEntity(id uint32) {
	e.quads.MarkDirty(id)
	kind, ok := e.Store.Kind(id)
	if !ok {
		e.grid.Remove(id)
		return
	}
	if box, ok := entityAABB(e.Store, kind, id); ok {
		e.grid.Update(id, box)
	}
	e.render.RefreshEntityRenderRange(id)
}
