package nbt

import (
	"errors"
	"fmt"
	"io"
)

var ErrHeterogeneousList = errors.New("nbt: list values must be homogeneous")
var ErrInvalidLength = errors.New("nbt: negative length prefix")
var ErrNoRootCompound = errors.New("nbt: root value must be a compound")
var ErrInvalidUTF8 = errors.New("nbt: string is not valid UTF-8")

// ErrIncomplete reports a stream that ended in the middle of a value. It is
// kept distinct from plain I/O errors so callers that stream partial data can
// treat the two differently.
var ErrIncomplete = errors.New("nbt: data does not describe a complete value")

// TypeError reports a tag discriminant outside the valid 0x01-0x0b range.
type TypeError struct {
	ID byte
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("nbt: invalid tag type %#02x", e.ID)
}

// incomplete promotes short-read errors to ErrIncomplete; everything else is
// a stream-level failure and passes through untouched.
func incomplete(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrIncomplete
	}
	return err
}
