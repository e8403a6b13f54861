package proto

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BlockPos is a block coordinate. The axes have asymmetric ranges: x and z
// are 26-bit signed values, y is 12-bit signed.
type BlockPos struct {
	X, Y, Z int32
}

// CoordError reports a coordinate outside its axis's packed bit width.
type CoordError struct {
	Axis  string
	Value int32
	Bits  uint
}

func (e *CoordError) Error() string {
	bound := int32(1) << e.Bits
	return fmt.Sprintf("proto: %s coordinate out of bounds: expected %d to %d, found %d",
		e.Axis, -bound, bound-1, e.Value)
}

func boundsCheck(axis string, v int32, bits uint) error {
	bound := int32(1) << bits
	if v < -bound || v >= bound {
		return &CoordError{Axis: axis, Value: v, Bits: bits}
	}
	return nil
}

// Position packs a BlockPos into a single big-endian 64-bit word: x in the
// high 26 bits, y in the middle 12, z in the low 26.
type Position struct{}

func (Position) Length(BlockPos) int { return 8 }

// Encode bounds-checks each axis before packing; it never silently wraps.
func (Position) Encode(w io.Writer, v BlockPos) error {
	if err := boundsCheck("x", v.X, 25); err != nil {
		return err
	}
	if err := boundsCheck("y", v.Y, 11); err != nil {
		return err
	}
	if err := boundsCheck("z", v.Z, 25); err != nil {
		return err
	}
	packed := (uint64(uint32(v.X))&0x3ffffff)<<38 |
		(uint64(uint32(v.Y))&0xfff)<<26 |
		uint64(uint32(v.Z))&0x3ffffff
	return binary.Write(w, binary.BigEndian, packed)
}

// Decode sign-extends each field independently; the three widths differ.
func (Position) Decode(r io.Reader) (BlockPos, error) {
	var packed uint64
	if err := binary.Read(r, binary.BigEndian, &packed); err != nil {
		return BlockPos{}, err
	}
	x := int32(packed >> 38 & 0x3ffffff)
	y := int32(packed >> 26 & 0xfff)
	z := int32(packed & 0x3ffffff)
	if x >= 1<<25 {
		x -= 1 << 26
	}
	if y >= 1<<11 {
		y -= 1 << 12
	}
	if z >= 1<<25 {
		z -= 1 << 26
	}
	return BlockPos{X: x, Y: y, Z: z}, nil
}
