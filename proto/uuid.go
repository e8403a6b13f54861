package proto

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// UUID is the raw 16-byte form.
type UUID struct{}

func (UUID) Length(uuid.UUID) int { return 16 }

func (UUID) Encode(w io.Writer, v uuid.UUID) error {
	_, err := w.Write(v[:])
	return err
}

func (UUID) Decode(r io.Reader) (uuid.UUID, error) {
	var buf [16]byte
	if err := readFull(r, buf[:]); err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(buf[:])
}

// UUIDString is the hyphenated text form carried as a protocol string, used
// by the login success packet.
type UUIDString struct{}

func (UUIDString) Length(v uuid.UUID) int {
	return String{}.Length(v.String())
}

func (UUIDString) Encode(w io.Writer, v uuid.UUID) error {
	return String{}.Encode(w, v.String())
}

func (UUIDString) Decode(r io.Reader) (uuid.UUID, error) {
	s, err := String{}.Decode(r)
	if err != nil {
		return uuid.Nil, err
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("proto: invalid UUID %q: %w", s, err)
	}
	return v, nil
}
