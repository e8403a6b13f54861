package proto

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Fixed-width big-endian numeric codecs. Names follow the protocol's own
// vocabulary rather than Go's.
type Byte struct{}
type UByte struct{}
type Short struct{}
type UShort struct{}
type Int struct{}
type Long struct{}
type Float struct{}
type Double struct{}
type Bool struct{}

func (Byte) Length(int8) int { return 1 }

func (Byte) Encode(w io.Writer, v int8) error {
	_, err := w.Write([]byte{byte(v)})
	return err
}

func (Byte) Decode(r io.Reader) (int8, error) {
	b, err := readOne(r)
	return int8(b), err
}

func (UByte) Length(uint8) int { return 1 }

func (UByte) Encode(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func (UByte) Decode(r io.Reader) (uint8, error) {
	return readOne(r)
}

func (Short) Length(int16) int { return 2 }

func (Short) Encode(w io.Writer, v int16) error {
	return binary.Write(w, binary.BigEndian, v)
}

func (Short) Decode(r io.Reader) (v int16, err error) {
	err = binary.Read(r, binary.BigEndian, &v)
	return
}

func (UShort) Length(uint16) int { return 2 }

func (UShort) Encode(w io.Writer, v uint16) error {
	return binary.Write(w, binary.BigEndian, v)
}

func (UShort) Decode(r io.Reader) (v uint16, err error) {
	err = binary.Read(r, binary.BigEndian, &v)
	return
}

func (Int) Length(int32) int { return 4 }

func (Int) Encode(w io.Writer, v int32) error {
	return binary.Write(w, binary.BigEndian, v)
}

func (Int) Decode(r io.Reader) (v int32, err error) {
	err = binary.Read(r, binary.BigEndian, &v)
	return
}

func (Long) Length(int64) int { return 8 }

func (Long) Encode(w io.Writer, v int64) error {
	return binary.Write(w, binary.BigEndian, v)
}

func (Long) Decode(r io.Reader) (v int64, err error) {
	err = binary.Read(r, binary.BigEndian, &v)
	return
}

func (Float) Length(float32) int { return 4 }

func (Float) Encode(w io.Writer, v float32) error {
	return binary.Write(w, binary.BigEndian, v)
}

func (Float) Decode(r io.Reader) (v float32, err error) {
	err = binary.Read(r, binary.BigEndian, &v)
	return
}

func (Double) Length(float64) int { return 8 }

func (Double) Encode(w io.Writer, v float64) error {
	return binary.Write(w, binary.BigEndian, v)
}

func (Double) Decode(r io.Reader) (v float64, err error) {
	err = binary.Read(r, binary.BigEndian, &v)
	return
}

func (Bool) Length(bool) int { return 1 }

func (Bool) Encode(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// Decode rejects every byte other than 0 and 1; non-zero is not "true" here.
func (Bool) Decode(r io.Reader) (bool, error) {
	b, err := readOne(r)
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, fmt.Errorf("proto: invalid bool value %d, expecting 0 or 1", b)
	}
	return b == 1, nil
}
