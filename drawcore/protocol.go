package drawcore

import "github.com/draftcore/engine/wire"

// Wire-stable protocol versions. Bumping any of these is a breaking
// change to that surface; abiHash additionally catches layout drift
// a host might otherwise miss (§6 "Engine handshake").
const (
	ProtocolVersion    = 3
	CommandVersion     = 2
	SnapshotVersion    = 1
	EventStreamVersion = 1
)

// FeatureFlags is a bitset of optional engine capabilities a host may
// probe for before relying on them.
type FeatureFlags uint32

const (
	FeatureTransformLog FeatureFlags = 1 << iota
	FeatureTextSubsystem
)

// ProtocolInfo identifies the wire protocol an Engine speaks, so a
// host can detect a version mismatch before trusting any buffer it
// exchanges with the engine.
type ProtocolInfo struct {
	ProtocolVersion    uint32
	CommandVersion     uint32
	SnapshotVersion    uint32
	EventStreamVersion uint32
	AbiHash            uint64
	FeatureFlags       FeatureFlags
}

// abiHash is a compile-time-stable FNV-1a digest over the kind tags
// and opcodes this build's wire formats close over. It changes only
// when those closed sets change, giving a host a single number to
// compare against its own compiled-in expectations.
var abiHash = computeAbiHash()

func computeAbiHash() uint64 {
	h := wire.NewFNV1a64()
	var b [4]byte
	putU32 := func(v uint32) {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		b[3] = byte(v >> 24)
		h.Write(b[:])
	}
	putU32(ProtocolVersion)
	putU32(CommandVersion)
	putU32(SnapshotVersion)
	putU32(EventStreamVersion)
	for k := wire.KindRect; k <= wire.KindText; k++ {
		putU32(uint32(k))
	}
	return h.Sum64()
}

// Protocol returns the protocol handshake info for this build.
func Protocol() ProtocolInfo {
	flags := FeatureTransformLog | FeatureTextSubsystem
	return ProtocolInfo{
		ProtocolVersion:    ProtocolVersion,
		CommandVersion:     CommandVersion,
		SnapshotVersion:    SnapshotVersion,
		EventStreamVersion: EventStreamVersion,
		AbiHash:            abiHash,
		FeatureFlags:       flags,
	}
}
