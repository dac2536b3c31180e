package dogecoin

import (
	"encoding/binary"
	"fmt"
)

// VarUIntSize returns the number of bytes EncodeVarUInt would emit for
// value, without actually encoding it.
func VarUIntSize(value uint64) int {
	switch {
	case value < 0xfd:
		return 1
	case value <= 0xffff:
		return 3
	case value <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// EncodeVarUInt encodes value as a Bitcoin/Dogecoin compact-size integer.
// The encoding is always canonical (the shortest form that fits).
func EncodeVarUInt(value uint64) []byte {
	switch {
	case value < 0xfd:
		return []byte{byte(value)}
	case value <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(value))
		return buf
	case value <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(value))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], value)
		return buf
	}
}

// DecodeVarUInt decodes a compact-size integer from the start of data,
// returning the value and the number of bytes consumed. It accepts
// non-canonical encodings (matching Bitcoin's historical decode leniency);
// only EncodeVarUInt's output is guaranteed canonical.
func DecodeVarUInt(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("varuint: empty input: %w", ErrCodec)
	}
	first := data[0]
	switch {
	case first < 0xfd:
		return uint64(first), 1, nil
	case first == 0xfd:
		if len(data) < 3 {
			return 0, 0, fmt.Errorf("varuint: truncated 0xfd prefix: %w", ErrCodec)
		}
		return uint64(binary.LittleEndian.Uint16(data[1:3])), 3, nil
	case first == 0xfe:
		if len(data) < 5 {
			return 0, 0, fmt.Errorf("varuint: truncated 0xfe prefix: %w", ErrCodec)
		}
		return uint64(binary.LittleEndian.Uint32(data[1:5])), 5, nil
	default:
		if len(data) < 9 {
			return 0, 0, fmt.Errorf("varuint: truncated 0xff prefix: %w", ErrCodec)
		}
		return binary.LittleEndian.Uint64(data[1:9]), 9, nil
	}
}
