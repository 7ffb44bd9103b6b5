package drawcore

// RenderBuffers is the CPU-resident vertex data a host uploads to
// its GPU transport: fills/strokes for geometric shapes plus glyph
// quads for visible text, all walked in draw order. Generation lets
// a host skip re-upload when nothing changed since the last call.
type RenderBuffers struct {
	Triangles  []float32
	Lines      []float32
	Quads      []float32
	Generation uint64
}

// syncTextLayout ensures every dirty text's layout and cached bounds
// are current, and mirrors the refreshed bounds into the spatial
// grid (§4.5 "Text: bounds from the text subsystem after ensuring
// layout is up to date"). It is a no-op if no layouter was supplied
// to New.
func (e *Engine) syncTextLayout() {
	if e.layouter == nil {
		return
	}
	for _, id := range e.Text.LayoutDirtyTexts(e.layouter) {
		rec, ok := e.Text.FindText(id)
		if !ok {
			e.grid.Remove(id)
			continue
		}
		e.grid.Update(id, textWorldBounds(rec))
	}
}

// BuildRenderBuffers rebuilds (lazily, only if dirty) and returns the
// engine's triangle, line and glyph-quad buffers for the current
// draw order (§4.4, §4.8 "Quad buffer assembly").
func (e *Engine) BuildRenderBuffers() RenderBuffers {
	e.syncTextLayout()
	order := e.DrawOrder.IDs()

	posMeta := e.render.PositionBufferMeta(order)
	e.render.LineBufferMeta(order)

	var quads []float32
	if e.layouter != nil {
		quads = e.quads.Build(e.Text, e.layouter, order)
	}

	return RenderBuffers{
		Triangles:  e.render.TriangleBuffer(),
		Lines:      e.render.LineBuffer(),
		Quads:      quads,
		Generation: posMeta.Generation,
	}
}

// SetViewScale sets the screen-to-world scale used to bound circle
// tessellation segment counts and to convert stroke width in pixels
// into world-space half-stroke for picking.
func (e *Engine) SetViewScale(scale float32) {
	e.dispatcher.ViewScale = scale
	e.render.SetViewScale(scale)
}

// ViewScale returns the current view scale.
func (e *Engine) ViewScale() float32 { return e.dispatcher.ViewScale }
