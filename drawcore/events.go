package drawcore

import "github.com/draftcore/engine/events"

// PollEvents drains and returns every event queued since the last
// call (§4.9). An Overflow event, if present, is always first and
// is the only event returned until the host acknowledges it via
// AckResync.
func (e *Engine) PollEvents() []events.Event { return e.events.PollEvents() }

// AckResync acknowledges an Overflow event carrying generation,
// letting the queue surface events again. The host is expected to
// have done a full resync (e.g. re-read the whole document) before
// calling this.
func (e *Engine) AckResync(generation uint64) { e.events.AckResync(generation) }

// EventsOverflowed reports whether the event queue is waiting on an
// AckResync before it will surface anything further.
func (e *Engine) EventsOverflowed() bool { return e.events.Overflowed() }
