// Package scan gathers UI script resources from package files and collapses
// the many on-disk copies found across game layers into logical groups with
// checksum-distinct variants and provenance tracking.
package scan

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/s2tools/s2ui/pkg/dbpf"
)

// ResourceKey identifies a logical resource across packages.
type ResourceKey struct {
	GroupID    uint32
	InstanceID uint32
}

// MaxHashSize is the decompressed-size ceiling for content hashing.
// Larger entries are listed but treated as opaque binary data.
const MaxHashSize = 1024 * 1024

// Checksum identifies a resource variant by content. Besides hex digests,
// two sentinel values exist: too large to hash, and failed to decompress.
type Checksum string

// Sentinel checksums. The values double as user-facing labels.
const (
	ChecksumBinary Checksum = "Binary data"
	ChecksumError  Checksum = "Compression error"
)

// Hashed reports whether the checksum is a real content digest rather
// than a sentinel.
func (c Checksum) Hashed() bool {
	return c != ChecksumBinary && c != ChecksumError
}

// ChecksumBytes returns the 128-bit content digest of decompressed bytes.
// MD5 is used for speed and byte-identity only; collision resistance is
// not a requirement here.
func ChecksumBytes(data []byte) Checksum {
	sum := md5.Sum(data)
	return Checksum(hex.EncodeToString(sum[:]))
}

// Occurrence is one physical sighting of a UI script resource in a
// specific package belonging to a specific game layer.
type Occurrence struct {
	Key      ResourceKey
	Package  string // package file name
	Game     string // game layer name derived from the install path
	Checksum Checksum
	Entry    *dbpf.Entry
}

// newOccurrence classifies one package entry. Oversized entries get the
// binary sentinel without being read; unreadable entries get the error
// sentinel but still occupy a slot in their group.
func newOccurrence(entry *dbpf.Entry, packageName, gameName string) *Occurrence {
	occ := &Occurrence{
		Key:     ResourceKey{entry.GroupID, entry.InstanceID},
		Package: packageName,
		Game:    gameName,
		Entry:   entry,
	}

	if entry.DecompressedSize() > MaxHashSize {
		occ.Checksum = ChecksumBinary
		return occ
	}

	data, err := entry.Data()
	if err != nil {
		occ.Checksum = ChecksumError
		return occ
	}
	occ.Checksum = ChecksumBytes(data)
	return occ
}
