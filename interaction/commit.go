package interaction

// CommitResult is the three-parallel-array description of a
// completed transform (spec §4.6 "Commit").
type CommitResult struct {
	IDs      []uint32
	Opcodes  []Opcode
	Payloads [][4]float32
	Before   []TransformSnapshot
	After    []TransformSnapshot
}

// Commit finalizes the active transform, returning the commit
// result the caller uses to build a history entry, and clears the
// session back to Idle. Calling Commit while Idle returns a zero
// CommitResult.
func (s *Session) Commit() CommitResult {
	if s.state != TransformActive {
		return CommitResult{}
	}
	result := CommitResult{Before: s.snapshots}
	for _, before := range s.snapshots {
		after, ok := snapshotOf(s.store, before.ID)
		if !ok {
			continue
		}
		result.IDs = append(result.IDs, before.ID)
		result.After = append(result.After, after)
		switch s.mode {
		case VertexDrag:
			result.Opcodes = append(result.Opcodes, OpVertexSet)
		case Resize:
			result.Opcodes = append(result.Opcodes, OpResize)
		default:
			result.Opcodes = append(result.Opcodes, OpMove)
		}
		result.Payloads = append(result.Payloads, [4]float32{
			after.X - before.X, after.Y - before.Y, after.W - before.W, after.H - before.H,
		})
	}
	s.logEvent(logCommit, nil, 0, 0)
	s.reset()
	return result
}

// Cancel restores every snapshotted entity to its pre-transform
// state, refreshes spatial indices, and clears the session. No
// history entry results.
func (s *Session) Cancel() {
	if s.state != TransformActive {
		return
	}
	for _, before := range s.snapshots {
		s.writeBack(before)
	}
	s.logEvent(logCancel, nil, 0, 0)
	s.reset()
}

// TouchedIDs returns the ids whose spatial AABB changed since the
// last call, draining the internal list. The caller uses this to
// refresh render ranges.
func (s *Session) TouchedIDs() []uint32 {
	out := s.touched
	s.touched = nil
	return out
}

func (s *Session) reset() {
	s.state = Idle
	s.mode = 0
	s.snapshots = nil
	s.specificID = 0
	s.vertexIndex = 0
	s.resizeCorner = 0
}
