// Package proto implements the network protocol's codec framework: one
// generic length/encode/decode contract implemented by every primitive wire
// type and composed into codecs for structured values.
//
// All codecs are stateless values; calls are pure functions of the stream and
// the argument, so a single codec value may be shared across connections
// without locking.
package proto

import (
	"errors"
	"io"
)

// Codec encodes and decodes one wire type. Length reports the exact number
// of bytes Encode will write for v, computed without encoding.
type Codec[T any] interface {
	Length(v T) int
	Encode(w io.Writer, v T) error
	Decode(r io.Reader) (T, error)
}

var ErrVarIntTooBig = errors.New("proto: VarInt is too big")
var ErrVarLongTooBig = errors.New("proto: VarLong is too big")
var ErrInvalidString = errors.New("proto: string is not valid UTF-8")

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

func readOne(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
