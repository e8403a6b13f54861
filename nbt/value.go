package nbt

import (
	"bytes"
	"io"
	"math"
	"unicode/utf8"
)

// Tag type discriminants as they appear on the wire.
const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
)

// Value is one node of the NBT tree. The concrete types in this package are
// the only implementations; every consumer switches over all eleven of them.
type Value interface {
	// ID returns the one-byte wire discriminant, in the range 0x01-0x0b.
	ID() byte
	// Len returns the encoded payload size in bytes, excluding the tag
	// header (id and name).
	Len() int

	encodePayload(w io.Writer) error
}

type Byte int8
type Short int16
type Int int32
type Long int64
type Float float32
type Double float64
type ByteArray []byte
type String string
type List []Value
type Compound map[string]Value
type IntArray []int32

func (Byte) ID() byte      { return TagByte }
func (Short) ID() byte     { return TagShort }
func (Int) ID() byte       { return TagInt }
func (Long) ID() byte      { return TagLong }
func (Float) ID() byte     { return TagFloat }
func (Double) ID() byte    { return TagDouble }
func (ByteArray) ID() byte { return TagByteArray }
func (String) ID() byte    { return TagString }
func (List) ID() byte      { return TagList }
func (Compound) ID() byte  { return TagCompound }
func (IntArray) ID() byte  { return TagIntArray }

func (Byte) Len() int        { return 1 }
func (Short) Len() int       { return 2 }
func (Int) Len() int         { return 4 }
func (Long) Len() int        { return 8 }
func (Float) Len() int       { return 4 }
func (Double) Len() int      { return 8 }
func (v ByteArray) Len() int { return 4 + len(v) }
func (v String) Len() int    { return 2 + len(v) }

func (v List) Len() int {
	// element id + count + payloads
	n := 5
	for _, elt := range v {
		n += elt.Len()
	}
	return n
}

func (v Compound) Len() int {
	// id + name length + name + payload for every entry, then the end marker
	n := 1
	for name, elt := range v {
		n += 3 + len(name) + elt.Len()
	}
	return n
}

func (v IntArray) Len() int { return 4 + 4*len(v) }

// homogeneous reports whether every element of the list shares one tag type.
// Lists that fail this check are illegal in the format and are rejected both
// at insertion and at encode time.
func (v List) homogeneous() bool {
	if len(v) == 0 {
		return true
	}
	first := v[0].ID()
	for _, elt := range v[1:] {
		if elt.ID() != first {
			return false
		}
	}
	return true
}

func (v Byte) encodePayload(w io.Writer) error   { return writeByte(w, byte(v)) }
func (v Short) encodePayload(w io.Writer) error  { return writeInt16(w, int16(v)) }
func (v Int) encodePayload(w io.Writer) error    { return writeInt32(w, int32(v)) }
func (v Long) encodePayload(w io.Writer) error   { return writeInt64(w, int64(v)) }
func (v Float) encodePayload(w io.Writer) error  { return writeInt32(w, int32(math.Float32bits(float32(v)))) }
func (v Double) encodePayload(w io.Writer) error { return writeInt64(w, int64(math.Float64bits(float64(v)))) }

func (v ByteArray) encodePayload(w io.Writer) error {
	if err := writeInt32(w, int32(len(v))); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

func (v String) encodePayload(w io.Writer) error {
	if err := writeInt16(w, int16(len(v))); err != nil {
		return err
	}
	_, err := w.Write([]byte(v))
	return err
}

func (v List) encodePayload(w io.Writer) error {
	// An empty list has no element to take a type from; the format settles
	// on TagByte for that case.
	if len(v) == 0 {
		if err := writeByte(w, TagByte); err != nil {
			return err
		}
		return writeInt32(w, 0)
	}
	first := v[0].ID()
	if err := writeByte(w, first); err != nil {
		return err
	}
	if err := writeInt32(w, int32(len(v))); err != nil {
		return err
	}
	for _, elt := range v {
		if elt.ID() != first {
			return ErrHeterogeneousList
		}
		if err := elt.encodePayload(w); err != nil {
			return err
		}
	}
	return nil
}

func (v Compound) encodePayload(w io.Writer) error {
	for name, elt := range v {
		if err := writeHeader(w, elt.ID(), name); err != nil {
			return err
		}
		if err := elt.encodePayload(w); err != nil {
			return err
		}
	}
	return writeByte(w, TagEnd)
}

func (v IntArray) encodePayload(w io.Writer) error {
	if err := writeInt32(w, int32(len(v))); err != nil {
		return err
	}
	for _, elt := range v {
		if err := writeInt32(w, elt); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes a tag header: the type id followed by the 16-bit
// length-prefixed name.
func writeHeader(w io.Writer, id byte, name string) error {
	if err := writeByte(w, id); err != nil {
		return err
	}
	if err := writeInt16(w, int16(len(name))); err != nil {
		return err
	}
	_, err := w.Write([]byte(name))
	return err
}

// readHeader reads a tag header. An end marker terminates a compound and
// carries no name.
func readHeader(r io.Reader) (id byte, name string, err error) {
	if id, err = readByte(r); err != nil {
		return 0, "", err
	}
	if id == TagEnd {
		return TagEnd, "", nil
	}
	nameLen, err := readInt16(r)
	if err != nil {
		return 0, "", err
	}
	name, err = readString(r, int(uint16(nameLen)))
	return id, name, err
}

// readPayload decodes the payload of a tag with the given type id.
func readPayload(r io.Reader, id byte) (Value, error) {
	switch id {
	case TagByte:
		b, err := readByte(r)
		return Byte(b), err
	case TagShort:
		n, err := readInt16(r)
		return Short(n), err
	case TagInt:
		n, err := readInt32(r)
		return Int(n), err
	case TagLong:
		n, err := readInt64(r)
		return Long(n), err
	case TagFloat:
		n, err := readInt32(r)
		return Float(math.Float32frombits(uint32(n))), err
	case TagDouble:
		n, err := readInt64(r)
		return Double(math.Float64frombits(uint64(n))), err
	case TagByteArray:
		count, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, ErrInvalidLength
		}
		// Grow while reading rather than trusting the declared count with an
		// up-front allocation.
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, int64(count)); err != nil {
			return nil, incomplete(err)
		}
		return ByteArray(buf.Bytes()), nil
	case TagString:
		strLen, err := readInt16(r)
		if err != nil {
			return nil, err
		}
		s, err := readString(r, int(uint16(strLen)))
		return String(s), err
	case TagList:
		eltID, err := readByte(r)
		if err != nil {
			return nil, err
		}
		count, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, ErrInvalidLength
		}
		list := make(List, 0, min(int(count), 4096))
		for i := int32(0); i < count; i++ {
			elt, err := readPayload(r, eltID)
			if err != nil {
				return nil, err
			}
			list = append(list, elt)
		}
		return list, nil
	case TagCompound:
		compound := make(Compound)
		for {
			id, name, err := readHeader(r)
			if err != nil {
				return nil, err
			}
			if id == TagEnd {
				return compound, nil
			}
			elt, err := readPayload(r, id)
			if err != nil {
				return nil, err
			}
			compound[name] = elt
		}
	case TagIntArray:
		count, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, ErrInvalidLength
		}
		ints := make(IntArray, 0, min(int(count), 4096))
		for i := int32(0); i < count; i++ {
			n, err := readInt32(r)
			if err != nil {
				return nil, err
			}
			ints = append(ints, n)
		}
		return ints, nil
	default:
		return nil, &TypeError{ID: id}
	}
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeInt16(w io.Writer, n int16) error {
	_, err := w.Write([]byte{byte(n >> 8), byte(n)})
	return err
}

func writeInt32(w io.Writer, n int32) error {
	_, err := w.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func writeInt64(w io.Writer, n int64) error {
	_, err := w.Write([]byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return incomplete(err)
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	err := readFull(r, buf[:])
	return buf[0], err
}

func readInt16(r io.Reader) (int16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int16(buf[0])<<8 | int16(buf[1]), nil
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(buf[0])<<24 | int32(buf[1])<<16 | int32(buf[2])<<8 | int32(buf[3]), nil
}

func readInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(buf[0])<<56 | int64(buf[1])<<48 | int64(buf[2])<<40 | int64(buf[3])<<32 |
		int64(buf[4])<<24 | int64(buf[5])<<16 | int64(buf[6])<<8 | int64(buf[7]), nil
}

func readString(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}
