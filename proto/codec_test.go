package proto

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hollowstone/mcwire/nbt"
)

// checkCodec encodes v, compares the bytes and the reported length, then
// decodes them back and compares the value.
func checkCodec[T any](t *testing.T, c Codec[T], v T, encoded []byte) {
	t.Helper()
	r := require.New(t)

	var buf bytes.Buffer
	r.NoError(c.Encode(&buf, v))
	r.Equal(encoded, buf.Bytes())
	r.Equal(len(encoded), c.Length(v))

	decoded, err := c.Decode(&buf)
	r.NoError(err)
	r.Equal(v, decoded)
}

func TestPrimitives(t *testing.T) {
	checkCodec[int8](t, Byte{}, -5, []byte{0xfb})
	checkCodec[uint8](t, UByte{}, 200, []byte{0xc8})
	checkCodec[int16](t, Short{}, -300, []byte{0xfe, 0xd4})
	checkCodec[uint16](t, UShort{}, 65535, []byte{0xff, 0xff})
	checkCodec[int32](t, Int{}, -1, []byte{0xff, 0xff, 0xff, 0xff})
	checkCodec[int64](t, Long{}, 1, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	checkCodec[float32](t, Float{}, 1.0, []byte{0x3f, 0x80, 0x00, 0x00})
	checkCodec[float64](t, Double{}, 2.0, []byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	checkCodec(t, Bool{}, true, []byte{0x01})
	checkCodec(t, Bool{}, false, []byte{0x00})
}

func TestBoolRejectsOtherBytes(t *testing.T) {
	_, err := Bool{}.Decode(bytes.NewReader([]byte{0x02}))
	require.Error(t, err)
}

func TestString(t *testing.T) {
	checkCodec(t, String{}, "", []byte{0x00})
	checkCodec(t, String{}, "hello", []byte{0x05, 'h', 'e', 'l', 'l', 'o'})
	// The prefix counts bytes, not runes.
	checkCodec(t, String{}, "héllo", []byte{0x06, 'h', 0xc3, 0xa9, 'l', 'l', 'o'})
}

func TestStringRejectsInvalidUTF8(t *testing.T) {
	_, err := String{}.Decode(bytes.NewReader([]byte{0x02, 0xc3, 0x28}))
	require.ErrorIs(t, err, ErrInvalidString)
}

func TestArray(t *testing.T) {
	byteArr := Array[uint8]{Len: VarInt{}, Elem: UByte{}}
	checkCodec(t, byteArr, []uint8{1, 2, 3}, []byte{0x03, 0x01, 0x02, 0x03})

	intArr := Array[int32]{Len: ShortLen{}, Elem: Int{}}
	checkCodec(t, intArr, []int32{-1},
		[]byte{0x00, 0x01, 0xff, 0xff, 0xff, 0xff})
}

func TestArrayEmpty(t *testing.T) {
	r := require.New(t)
	byteArr := Array[uint8]{Len: VarInt{}, Elem: UByte{}}

	var buf bytes.Buffer
	r.NoError(byteArr.Encode(&buf, nil))
	r.Equal([]byte{0x00}, buf.Bytes())

	decoded, err := byteArr.Decode(&buf)
	r.NoError(err)
	r.Len(decoded, 0)
}

func TestArrayNegativeCount(t *testing.T) {
	intArr := Array[int32]{Len: ShortLen{}, Elem: Int{}}
	_, err := intArr.Decode(bytes.NewReader([]byte{0xff, 0xff}))
	require.Error(t, err)
}

func TestOption(t *testing.T) {
	opt := Option[int64]{Elem: Long{}}
	five := int64(5)
	checkCodec(t, opt, &five, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05})
	checkCodec[*int64](t, opt, nil, []byte{0x00})
}

func TestTriple(t *testing.T) {
	tri := Triple[int8]{Elem: Byte{}}
	checkCodec(t, tri, [3]int8{1, -1, 2}, []byte{0x01, 0xff, 0x02})
}

func TestUUID(t *testing.T) {
	id := uuid.MustParse("f84c6a79-0a4e-45e0-879b-cd49ebd4c4e2")
	checkCodec(t, UUID{}, id, id[:])

	var buf bytes.Buffer
	r := require.New(t)
	r.NoError(UUIDString{}.Encode(&buf, id))
	r.Equal(append([]byte{0x24}, id.String()...), buf.Bytes())

	decoded, err := UUIDString{}.Decode(&buf)
	r.NoError(err)
	r.Equal(id, decoded)
}

func TestUUIDStringRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, String{}.Encode(&buf, "not-a-uuid"))
	_, err := UUIDString{}.Decode(&buf)
	require.Error(t, err)
}

func TestOptSlotEmpty(t *testing.T) {
	checkCodec[*Slot](t, OptSlot{}, nil, []byte{0xff, 0xff})
}

func TestOptSlotNoTag(t *testing.T) {
	slot := &Slot{ID: 276, Count: 1, Damage: 3}
	checkCodec(t, OptSlot{}, slot, []byte{0x01, 0x14, 0x01, 0x00, 0x03, 0x00})
}

func TestOptSlotWithTag(t *testing.T) {
	r := require.New(t)

	tag := nbt.New("")
	r.NoError(tag.Insert("Unbreakable", nbt.Byte(1)))
	slot := &Slot{ID: 276, Count: 1, Tag: tag}

	var buf bytes.Buffer
	r.NoError(OptSlot{}.Encode(&buf, slot))
	r.Equal(OptSlot{}.Length(slot), buf.Len())

	decoded, err := OptSlot{}.Decode(&buf)
	r.NoError(err)
	r.Equal(slot.ID, decoded.ID)
	r.NotNil(decoded.Tag)
	if diff := cmp.Diff(tag.Root(), decoded.Tag.Root()); diff != "" {
		t.Errorf("decoded tag differs (-want +got):\n%s", diff)
	}
}
