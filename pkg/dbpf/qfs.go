package dbpf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// QFS (RefPack) decompression errors.
var (
	ErrNotCompressed = errors.New("qfs: data is not QFS compressed")
	ErrCorruptData   = errors.New("qfs: corrupt compressed data")
)

// qfsHeaderSize covers the 4-byte compressed size, the 0x10FB signature
// and the 24-bit big-endian decompressed size.
const qfsHeaderSize = 9

// IsCompressed reports whether data starts with a QFS compression header.
func IsCompressed(data []byte) bool {
	return len(data) >= qfsHeaderSize && data[4] == 0x10 && data[5] == 0xFB
}

// Decompress expands a QFS (RefPack) compressed resource body.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return nil, ErrNotCompressed
	}

	expectedSize := binary.LittleEndian.Uint32(data[0:4])
	if int(expectedSize) > len(data) {
		return nil, fmt.Errorf("%w: header claims %d bytes, have %d", ErrCorruptData, expectedSize, len(data))
	}

	outSize := int(data[6])<<16 | int(data[7])<<8 | int(data[8])
	out := make([]byte, 0, outSize)

	i := qfsHeaderSize
	for i < len(data) {
		c0 := data[i]

		var numPlain, numCopy, offset int
		stop := false

		switch {
		case c0 < 0x80:
			if i+2 > len(data) {
				return nil, ErrCorruptData
			}
			c1 := int(data[i+1])
			numPlain = int(c0) & 0x03
			numCopy = (int(c0)&0x1C)>>2 + 3
			offset = (int(c0)&0x60)<<3 + c1 + 1
			i += 2
		case c0 < 0xC0:
			if i+3 > len(data) {
				return nil, ErrCorruptData
			}
			c1, c2 := int(data[i+1]), int(data[i+2])
			numPlain = (c1 & 0xC0) >> 6
			numCopy = int(c0)&0x3F + 4
			offset = (c1&0x3F)<<8 + c2 + 1
			i += 3
		case c0 < 0xE0:
			if i+4 > len(data) {
				return nil, ErrCorruptData
			}
			c1, c2, c3 := int(data[i+1]), int(data[i+2]), int(data[i+3])
			numPlain = int(c0) & 0x03
			numCopy = (int(c0)&0x0C)<<6 + c3 + 5
			offset = (int(c0)&0x10)<<12 + c1<<8 + c2 + 1
			i += 4
		case c0 < 0xFC:
			numPlain = (int(c0)&0x1F)<<2 + 4
			i++
		default:
			numPlain = int(c0) & 0x03
			stop = true
			i++
		}

		if numPlain > 0 {
			if i+numPlain > len(data) {
				return nil, ErrCorruptData
			}
			out = append(out, data[i:i+numPlain]...)
			i += numPlain
		}

		if numCopy > 0 {
			src := len(out) - offset
			if src < 0 {
				return nil, fmt.Errorf("%w: back-reference before start", ErrCorruptData)
			}
			// Ranges may overlap, so this stays byte-by-byte.
			for j := 0; j < numCopy; j++ {
				out = append(out, out[src+j])
			}
		}

		if stop {
			break
		}
	}

	if len(out) != outSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrCorruptData, outSize, len(out))
	}

	return out, nil
}
