// Package dbpf provides reading functionality for The Sims 2 DBPF package archives.
package dbpf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const dbpfMagic = "DBPF"

// Resource type tags used by the UI layer of the game.
const (
	TypeUIData uint32 = 0x00000000 // .uiScript text resources
	TypeImage  uint32 = 0x856DDBAC // TGA/PNG/BMP/JPG graphics
	TypeDir    uint32 = 0xE86B1EEE // directory of compressed entries
)

// DBPF format errors.
var (
	ErrInvalidMagic       = errors.New("invalid DBPF magic: expected 'DBPF'")
	ErrUnsupportedVersion = errors.New("unsupported DBPF version")
	ErrTruncatedData      = errors.New("truncated DBPF data")
	ErrInvalidIndex       = errors.New("invalid DBPF index")
)

// Header contains the fields of the 96-byte DBPF file header that matter
// for reading. Offsets are fixed by the format.
type Header struct {
	MajorVersion      uint32
	MinorVersion      uint32
	IndexVersionMajor uint32
	IndexEntryCount   uint32
	IndexOffset       uint32
	IndexSize         uint32
	IndexVersionMinor uint32
}

// Package represents an opened DBPF package file.
type Package struct {
	file    *os.File
	path    string
	header  Header
	entries []*Entry
}

// Entry represents one resource inside the package.
type Entry struct {
	TypeID     uint32
	GroupID    uint32
	InstanceID uint32
	ResourceID uint32 // high instance, present with 7.1 indexes only

	offset           uint32
	size             uint32
	compressed       bool
	decompressedSize uint32

	pkg *Package
}

// Open opens a DBPF package for reading and parses its index.
func Open(path string) (*Package, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}

	pkg := &Package{file: file, path: path}

	if err := pkg.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := pkg.readIndex(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading index: %w", err)
	}

	pkg.applyDirectory()

	return pkg, nil
}

// Close closes the underlying file.
func (p *Package) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Path returns the file path the package was opened from.
func (p *Package) Path() string {
	return p.path
}

// Entries returns all resources in the package, in index order.
func (p *Package) Entries() []*Entry {
	return p.entries
}

// EntriesByType returns all resources with the given type tag.
func (p *Package) EntriesByType(typeID uint32) []*Entry {
	var result []*Entry
	for _, e := range p.entries {
		if e.TypeID == typeID {
			result = append(result, e)
		}
	}
	return result
}

func (p *Package) readHeader() error {
	raw := make([]byte, 96)
	if _, err := io.ReadFull(p.file, raw); err != nil {
		return ErrTruncatedData
	}

	if string(raw[0:4]) != dbpfMagic {
		return ErrInvalidMagic
	}

	p.header = Header{
		MajorVersion:      binary.LittleEndian.Uint32(raw[4:]),
		MinorVersion:      binary.LittleEndian.Uint32(raw[8:]),
		IndexVersionMajor: binary.LittleEndian.Uint32(raw[36:]),
		IndexEntryCount:   binary.LittleEndian.Uint32(raw[40:]),
		IndexOffset:       binary.LittleEndian.Uint32(raw[44:]),
		IndexSize:         binary.LittleEndian.Uint32(raw[48:]),
		IndexVersionMinor: binary.LittleEndian.Uint32(raw[60:]),
	}

	if p.header.MajorVersion != 1 {
		return fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, p.header.MajorVersion, p.header.MinorVersion)
	}
	if p.header.IndexVersionMajor != 7 {
		return fmt.Errorf("%w: index %d", ErrUnsupportedVersion, p.header.IndexVersionMajor)
	}

	return nil
}

// indexEntrySize returns the on-disk size of one index record. 7.0 indexes
// store type/group/instance/offset/size; 7.1 adds a high instance field.
func (p *Package) indexEntrySize() int {
	if p.header.IndexVersionMinor >= 2 {
		return 24
	}
	return 20
}

func (p *Package) readIndex() error {
	count := int(p.header.IndexEntryCount)
	entrySize := p.indexEntrySize()

	if count == 0 {
		return nil
	}
	if int(p.header.IndexSize) < count*entrySize {
		return fmt.Errorf("%w: %d entries do not fit in %d bytes", ErrInvalidIndex, count, p.header.IndexSize)
	}

	if _, err := p.file.Seek(int64(p.header.IndexOffset), io.SeekStart); err != nil {
		return err
	}

	raw := make([]byte, count*entrySize)
	if _, err := io.ReadFull(p.file, raw); err != nil {
		return ErrTruncatedData
	}

	p.entries = make([]*Entry, 0, count)
	for i := 0; i < count; i++ {
		rec := raw[i*entrySize:]
		entry := &Entry{
			TypeID:     binary.LittleEndian.Uint32(rec[0:]),
			GroupID:    binary.LittleEndian.Uint32(rec[4:]),
			InstanceID: binary.LittleEndian.Uint32(rec[8:]),
			pkg:        p,
		}
		if entrySize == 24 {
			entry.ResourceID = binary.LittleEndian.Uint32(rec[12:])
			entry.offset = binary.LittleEndian.Uint32(rec[16:])
			entry.size = binary.LittleEndian.Uint32(rec[20:])
		} else {
			entry.offset = binary.LittleEndian.Uint32(rec[12:])
			entry.size = binary.LittleEndian.Uint32(rec[16:])
		}
		p.entries = append(p.entries, entry)
	}

	return nil
}

// applyDirectory marks entries listed in the package's directory resource
// as compressed and records their decompressed sizes.
func (p *Package) applyDirectory() {
	var dir *Entry
	for _, e := range p.entries {
		if e.TypeID == TypeDir {
			dir = e
			break
		}
	}
	if dir == nil {
		return
	}

	raw, err := dir.RawData()
	if err != nil {
		return
	}

	// Directory records mirror the index record layout minus offset:
	// type, group, instance, [high instance], decompressed size.
	recSize := 16
	if p.indexEntrySize() == 24 {
		recSize = 20
	}

	type key struct{ t, g, i uint32 }
	sizes := make(map[key]uint32)
	for off := 0; off+recSize <= len(raw); off += recSize {
		rec := raw[off:]
		k := key{
			t: binary.LittleEndian.Uint32(rec[0:]),
			g: binary.LittleEndian.Uint32(rec[4:]),
			i: binary.LittleEndian.Uint32(rec[8:]),
		}
		sizes[k] = binary.LittleEndian.Uint32(rec[recSize-4:])
	}

	for _, e := range p.entries {
		if size, ok := sizes[key{e.TypeID, e.GroupID, e.InstanceID}]; ok {
			e.compressed = true
			e.decompressedSize = size
		}
	}
}

// Compressed reports whether the entry is QFS-compressed on disk.
func (e *Entry) Compressed() bool {
	return e.compressed
}

// DecompressedSize returns the size of the entry's data after decompression,
// without decompressing it.
func (e *Entry) DecompressedSize() uint32 {
	if e.compressed {
		return e.decompressedSize
	}
	return e.size
}

// RawData reads the entry's bytes exactly as stored, compressed or not.
func (e *Entry) RawData() ([]byte, error) {
	if _, err := e.pkg.file.Seek(int64(e.offset), io.SeekStart); err != nil {
		return nil, err
	}
	data := make([]byte, e.size)
	if _, err := io.ReadFull(e.pkg.file, data); err != nil {
		return nil, ErrTruncatedData
	}
	return data, nil
}

// Data returns the entry's decompressed bytes. Decompression failures are
// reported as an error wrapping ErrCorruptData so callers can keep the
// entry listed while excluding it from inspection.
func (e *Entry) Data() ([]byte, error) {
	raw, err := e.RawData()
	if err != nil {
		return nil, err
	}
	if !e.compressed {
		return raw, nil
	}
	data, err := Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("entry 0x%08x 0x%08x: %w", e.GroupID, e.InstanceID, err)
	}
	return data, nil
}
