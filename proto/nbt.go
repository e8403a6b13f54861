package proto

import (
	"bytes"
	"io"

	"github.com/hollowstone/mcwire/nbt"
)

// Nbt embeds a complete NBT document in a packet body, uncompressed.
type Nbt struct{}

func (Nbt) Length(v *nbt.Blob) int { return v.Len() }

func (Nbt) Encode(w io.Writer, v *nbt.Blob) error {
	return v.Write(w)
}

func (Nbt) Decode(r io.Reader) (*nbt.Blob, error) {
	return nbt.Read(r)
}

// Slot is an inventory item stack. A nil Tag means the stack carries no NBT
// data, which the wire marks with a single end byte.
type Slot struct {
	ID     int16
	Count  uint8
	Damage int16
	Tag    *nbt.Blob
}

// OptSlot encodes an optional Slot. The empty slot is not bool-prefixed like
// Option values; it is the id sentinel -1.
type OptSlot struct{}

func (OptSlot) Length(v *Slot) int {
	if v == nil {
		return 2
	}
	n := 2 + 1 + 2
	if v.Tag == nil {
		return n + 1
	}
	return n + v.Tag.Len()
}

func (OptSlot) Encode(w io.Writer, v *Slot) error {
	if v == nil {
		return Short{}.Encode(w, -1)
	}
	if err := (Short{}).Encode(w, v.ID); err != nil {
		return err
	}
	if err := (UByte{}).Encode(w, v.Count); err != nil {
		return err
	}
	if err := (Short{}).Encode(w, v.Damage); err != nil {
		return err
	}
	if v.Tag == nil {
		_, err := w.Write([]byte{nbt.TagEnd})
		return err
	}
	return v.Tag.Write(w)
}

func (OptSlot) Decode(r io.Reader) (*Slot, error) {
	id, err := Short{}.Decode(r)
	if err != nil {
		return nil, err
	}
	if id == -1 {
		return nil, nil
	}
	slot := &Slot{ID: id}
	if slot.Count, err = (UByte{}).Decode(r); err != nil {
		return nil, err
	}
	if slot.Damage, err = (Short{}).Decode(r); err != nil {
		return nil, err
	}
	first, err := readOne(r)
	if err != nil {
		return nil, err
	}
	if first == nbt.TagEnd {
		return slot, nil
	}
	// The byte we just consumed is the blob's type id; stitch it back in
	// front of the remaining stream.
	slot.Tag, err = nbt.Read(io.MultiReader(bytes.NewReader([]byte{first}), r))
	if err != nil {
		return nil, err
	}
	return slot, nil
}
