package proto

import (
	"fmt"
	"io"
)

// Array pairs a length codec with an element codec. Nothing on the wire is
// self-delimiting without this wrapper: decode reads the length first, then
// exactly that many elements.
type Array[T any] struct {
	Len  Codec[int32]
	Elem Codec[T]
}

func (c Array[T]) Length(v []T) int {
	n := c.Len.Length(int32(len(v)))
	for _, elt := range v {
		n += c.Elem.Length(elt)
	}
	return n
}

func (c Array[T]) Encode(w io.Writer, v []T) error {
	if err := c.Len.Encode(w, int32(len(v))); err != nil {
		return err
	}
	for _, elt := range v {
		if err := c.Elem.Encode(w, elt); err != nil {
			return err
		}
	}
	return nil
}

func (c Array[T]) Decode(r io.Reader) ([]T, error) {
	count, err := c.Len.Decode(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("proto: invalid array length %d", count)
	}
	out := make([]T, 0, min(int(count), 4096))
	for i := int32(0); i < count; i++ {
		elt, err := c.Elem.Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, elt)
	}
	return out, nil
}

// ShortLen is an Array length representation stored as a big-endian int16.
type ShortLen struct{}

func (ShortLen) Length(int32) int { return 2 }

func (ShortLen) Encode(w io.Writer, v int32) error {
	return Short{}.Encode(w, int16(v))
}

func (ShortLen) Decode(r io.Reader) (int32, error) {
	v, err := Short{}.Decode(r)
	return int32(v), err
}

// Option prefixes a boolean presence flag; the inner codec runs only when
// the flag is set. Absent values decode to nil.
type Option[T any] struct {
	Elem Codec[T]
}

func (c Option[T]) Length(v *T) int {
	if v == nil {
		return 1
	}
	return 1 + c.Elem.Length(*v)
}

func (c Option[T]) Encode(w io.Writer, v *T) error {
	if err := (Bool{}).Encode(w, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return c.Elem.Encode(w, *v)
}

func (c Option[T]) Decode(r io.Reader) (*T, error) {
	present, err := Bool{}.Decode(r)
	if err != nil || !present {
		return nil, err
	}
	v, err := c.Elem.Decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Triple is a fixed-size coordinate triple, always in x, y, z order.
type Triple[T any] struct {
	Elem Codec[T]
}

func (c Triple[T]) Length(v [3]T) int {
	return c.Elem.Length(v[0]) + c.Elem.Length(v[1]) + c.Elem.Length(v[2])
}

func (c Triple[T]) Encode(w io.Writer, v [3]T) error {
	for _, elt := range v {
		if err := c.Elem.Encode(w, elt); err != nil {
			return err
		}
	}
	return nil
}

func (c Triple[T]) Decode(r io.Reader) (v [3]T, err error) {
	for i := range v {
		if v[i], err = c.Elem.Decode(r); err != nil {
			return v, err
		}
	}
	return v, nil
}
