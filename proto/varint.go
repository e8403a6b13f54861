package proto

import "io"

// VarInt is the 7-bit-group variable-length encoding of a signed 32-bit
// integer: least significant group first, high bit set on every byte except
// the last. Negative values always take the full five bytes.
type VarInt struct{}

// VarLong is the same encoding over a signed 64-bit integer, up to ten bytes.
type VarLong struct{}

// Length finds the smallest number of 7-bit groups that hold v; it never
// encodes to count.
func (VarInt) Length(v int32) int {
	u := uint32(v)
	for i := 1; i < 5; i++ {
		if u&(^uint32(0)<<uint(7*i)) == 0 {
			return i
		}
	}
	return 5
}

func (VarInt) Encode(w io.Writer, v int32) error {
	u := uint32(v)
	for u&^0x7f != 0 {
		if _, err := w.Write([]byte{byte(u&0x7f | 0x80)}); err != nil {
			return err
		}
		u >>= 7
	}
	_, err := w.Write([]byte{byte(u)})
	return err
}

// Decode reads at most five bytes; a continuation bit still set on the fifth
// byte fails with ErrVarIntTooBig rather than reading on.
func (VarInt) Decode(r io.Reader) (int32, error) {
	var v int32
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := readOne(r)
		if err != nil {
			return 0, err
		}
		v |= int32(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarIntTooBig
}

func (VarLong) Length(v int64) int {
	u := uint64(v)
	for i := 1; i < 10; i++ {
		if u&(^uint64(0)<<uint(7*i)) == 0 {
			return i
		}
	}
	return 10
}

func (VarLong) Encode(w io.Writer, v int64) error {
	u := uint64(v)
	for u&^0x7f != 0 {
		if _, err := w.Write([]byte{byte(u&0x7f | 0x80)}); err != nil {
			return err
		}
		u >>= 7
	}
	_, err := w.Write([]byte{byte(u)})
	return err
}

func (VarLong) Decode(r io.Reader) (int64, error) {
	var v int64
	for shift := uint(0); shift < 70; shift += 7 {
		b, err := readOne(r)
		if err != nil {
			return 0, err
		}
		v |= int64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarLongTooBig
}
