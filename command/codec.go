package command

import "github.com/draftcore/engine/wire"

const (
	magic   = 0x43445745 // "EWDC", little-endian u32
	version = 2
)

// Raw is one parsed command: its opcode, target id and undecoded
// payload bytes.
type Raw struct {
	Op      Opcode
	ID      uint32
	Payload []byte
}

// Parse reads an EWDC buffer into its command list without applying
// any of them. The whole buffer is rejected, with no commands
// returned, on a missing/mismatched header, an unsupported version,
// an unknown opcode, or any per-command truncation.
func Parse(buf []byte) ([]Raw, error) {
	r := wire.NewReader(buf)
	gotMagic := r.U32()
	gotVersion := r.U32()
	count := r.U32()
	if r.Truncated() {
		return nil, wire.NewError(wire.BufferTruncated, "missing EWDC header")
	}
	if gotMagic != magic {
		return nil, wire.NewError(wire.InvalidMagic, "not an EWDC buffer")
	}
	if gotVersion != version {
		return nil, wire.NewError(wire.UnsupportedVersion, "unsupported EWDC version")
	}
	cmds := make([]Raw, 0, count)
	for i := uint32(0); i < count; i++ {
		op := r.U32()
		id := r.U32()
		payloadBytes := r.U32()
		r.Skip(4) // reserved
		if r.Truncated() {
			return nil, wire.NewError(wire.BufferTruncated, "truncated command header")
		}
		payload := r.Bytes(int(payloadBytes))
		if r.Truncated() {
			return nil, wire.NewError(wire.BufferTruncated, "truncated command payload")
		}
		if !Opcode(op).valid() {
			return nil, wire.NewError(wire.UnknownCommand, "unknown opcode")
		}
		cmds = append(cmds, Raw{Op: Opcode(op), ID: id, Payload: payload})
	}
	return cmds, nil
}

// Encode writes cmds into an EWDC v2 buffer. It is the inverse of
// Parse, used by tests and by hosts assembling buffers in-process.
func Encode(cmds []Raw) []byte {
	w := wire.NewWriter(12 + 16*len(cmds))
	w.U32(magic)
	w.U32(version)
	w.U32(uint32(len(cmds)))
	for _, c := range cmds {
		w.U32(uint32(c.Op))
		w.U32(c.ID)
		w.U32(uint32(len(c.Payload)))
		w.U32(0)
		w.RawBytes(c.Payload)
	}
	return w.Bytes()
}
