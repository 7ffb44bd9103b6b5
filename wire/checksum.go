package wire

import (
	"hash"
	"hash/crc32"
	"hash/fnv"
)

// crcTable is the standard IEEE 802.3 table (polynomial 0xEDB88320),
// matching spec's checksum discipline for ESNP sections exactly:
// stdlib hash/crc32 already implements this table with the standard
// init/final inversions, so no third-party CRC library is warranted.
var crcTable = crc32.IEEETable

// CRC32 computes the IEEE CRC32 of b.
func CRC32(b []byte) uint32 { return crc32.Checksum(b, crcTable) }

// NewFNV1a64 returns a fresh, stateful FNV-1a 64-bit hash. The
// document digest (package digest) writes each canonicalized field
// of its walk into a single instance and reads Sum64 once at the
// end, rather than re-hashing a running value by hand.
func NewFNV1a64() hash.Hash64 { return fnv.New64a() }

// FNV1a64 computes the one-shot 64-bit FNV-1a digest of b.
func FNV1a64(b []byte) uint64 {
	f := fnv.New64a()
	f.Write(b)
	return f.Sum64()
}
