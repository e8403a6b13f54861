package proto

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// String is a UTF-8 string prefixed with its byte count as a VarInt.
type String struct{}

func (String) Length(v string) int {
	return VarInt{}.Length(int32(len(v))) + len(v)
}

func (String) Encode(w io.Writer, v string) error {
	if err := (VarInt{}).Encode(w, int32(len(v))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

func (String) Decode(r io.Reader) (string, error) {
	strLen, err := VarInt{}.Decode(r)
	if err != nil {
		return "", err
	}
	if strLen < 0 {
		return "", fmt.Errorf("proto: invalid string length %d", strLen)
	}
	buf := make([]byte, int(strLen))
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w (%d bytes)", ErrInvalidString, strLen)
	}
	return string(buf), nil
}
