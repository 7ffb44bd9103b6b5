package interaction

// logEventType distinguishes which session call produced an entry.
type logEventType int

const (
	logBegin logEventType = iota
	logUpdate
	logCommit
	logCancel
)

// ViewState is the view transform context captured alongside a
// transform log entry (spec §4.6 "Transform log (replay)").
type ViewState struct {
	X, Y, Scale          float32
	ViewportW, ViewportH float32
}

// TransformLogEntry is one replayable record (spec §6 "Transform log
// buffer"). Begin entries additionally reference a run of the log's
// parallel id vector via (IDOffset, IDCount).
type TransformLogEntry struct {
	Type         logEventType
	Mode         Mode
	IDOffset     int
	IDCount      int
	SpecificID   uint32
	VertexIndex  int
	ResizeCorner int
	X, Y         float32
	Modifiers    uint32
	View         ViewState
	Snap         SnapOptions
}

// TransformLog is an append-only, capacity-bounded record of a
// session's begin/update/commit/cancel calls sufficient to
// deterministically replay it (spec §4.6, §4.11 testable property 6).
type TransformLog struct {
	entries   []TransformLogEntry
	ids       []uint32
	capEntry  int
	capIDs    int
	tainted   bool
	view      ViewState
	modifiers uint32
}

func newTransformLog(entryCap, idCap int) *TransformLog {
	return &TransformLog{capEntry: entryCap, capIDs: idCap}
}

// SetContext records the view transform and modifier mask to stamp
// onto subsequently logged entries, mirroring what the host would
// supply per input event.
func (l *TransformLog) SetContext(view ViewState, modifiers uint32) {
	l.view = view
	l.modifiers = modifiers
}

// Tainted reports whether capacity was exceeded; a tainted log
// refuses replay.
func (l *TransformLog) Tainted() bool { return l.tainted }

// Entries returns the recorded entries.
func (l *TransformLog) Entries() []TransformLogEntry { return l.entries }

func (l *TransformLog) append(e TransformLogEntry, ids []uint32) {
	if l.tainted {
		return
	}
	if len(l.entries)+1 > l.capEntry {
		l.tainted = true
		return
	}
	if e.IDCount > 0 && len(l.ids)+e.IDCount > l.capIDs {
		l.tainted = true
		return
	}
	if e.IDCount > 0 {
		l.ids = append(l.ids, ids[:e.IDCount]...)
	}
	l.entries = append(l.entries, e)
}

// logEvent is called by Session at each begin/update/commit/cancel,
// a no-op when logging is disabled.
func (s *Session) logEvent(typ logEventType, ids []uint32, x, y float32) {
	if s.log == nil {
		return
	}
	e := TransformLogEntry{
		Type: typ, Mode: s.mode, X: x, Y: y,
		SpecificID: s.specificID, VertexIndex: s.vertexIndex, ResizeCorner: s.resizeCorner,
		View: s.log.view, Modifiers: s.log.modifiers, Snap: s.snap,
	}
	if typ == logBegin && len(ids) > 0 {
		e.IDOffset = len(s.log.ids)
		e.IDCount = len(ids)
	}
	s.log.append(e, ids)
}

// Replay re-executes every logged entry against s, which must be
// bound to a freshly loaded store/grid pair, restoring the snap
// options recorded with each entry before re-issuing it. The view
// state and modifier mask recorded with each entry are not applied
// to s. It refuses a tainted
// log (spec §4.6 "Overflow ... marks the log as tainted; replay
// refuses a tainted log").
func (l *TransformLog) Replay(s *Session) error {
	if l.tainted {
		return errTaintedLog
	}
	for _, e := range l.entries {
		s.snap = e.Snap
		switch e.Type {
		case logBegin:
			ids := append([]uint32(nil), l.ids[e.IDOffset:e.IDOffset+e.IDCount]...)
			switch e.Mode {
			case VertexDrag:
				s.BeginVertexDrag(e.SpecificID, e.VertexIndex, e.X, e.Y, e.Snap)
			case Resize:
				s.BeginResize(ids, e.ResizeCorner, e.X, e.Y, e.Snap)
			default:
				s.BeginMove(ids, e.X, e.Y, e.Snap)
			}
		case logUpdate:
			s.Update(e.X, e.Y)
		case logCommit:
			s.Commit()
		case logCancel:
			s.Cancel()
		}
	}
	return nil
}

type replayError string

func (e replayError) Error() string { return string(e) }

const errTaintedLog = replayError("transform log is tainted: capacity exceeded during recording")
