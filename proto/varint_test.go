package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

var varIntCases = []struct {
	value   int32
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{2, []byte{0x02}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{300, []byte{0xac, 0x02}},
	{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
	{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
}

var varLongCases = []struct {
	value   int64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{300, []byte{0xac, 0x02}},
	{9223372036854775807, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{-1, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
}

func TestVarIntEncode(t *testing.T) {
	r := require.New(t)
	for _, tc := range varIntCases {
		var buf bytes.Buffer
		r.NoError(VarInt{}.Encode(&buf, tc.value))
		r.Equal(tc.encoded, buf.Bytes(), "value %d", tc.value)
		r.Equal(len(tc.encoded), VarInt{}.Length(tc.value), "Length for %d", tc.value)
	}
}

func TestVarIntDecode(t *testing.T) {
	r := require.New(t)
	for _, tc := range varIntCases {
		v, err := VarInt{}.Decode(bytes.NewReader(tc.encoded))
		r.NoError(err)
		r.Equal(tc.value, v)
	}
}

func TestVarLongEncode(t *testing.T) {
	r := require.New(t)
	for _, tc := range varLongCases {
		var buf bytes.Buffer
		r.NoError(VarLong{}.Encode(&buf, tc.value))
		r.Equal(tc.encoded, buf.Bytes(), "value %d", tc.value)
		r.Equal(len(tc.encoded), VarLong{}.Length(tc.value), "Length for %d", tc.value)
	}
}

func TestVarLongDecode(t *testing.T) {
	r := require.New(t)
	for _, tc := range varLongCases {
		v, err := VarLong{}.Decode(bytes.NewReader(tc.encoded))
		r.NoError(err)
		r.Equal(tc.value, v)
	}
}

func TestVarIntTooBig(t *testing.T) {
	// A continuation bit on the fifth byte means a sixth group would follow,
	// which no 32-bit value needs.
	_, err := VarInt{}.Decode(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}))
	require.ErrorIs(t, err, ErrVarIntTooBig)

	_, err = VarInt{}.Decode(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff}))
	require.ErrorIs(t, err, ErrVarIntTooBig)
}

func TestVarLongTooBig(t *testing.T) {
	raw := bytes.Repeat([]byte{0x80}, 11)
	_, err := VarLong{}.Decode(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrVarLongTooBig)
}

func TestVarIntShortRead(t *testing.T) {
	_, err := VarInt{}.Decode(bytes.NewReader([]byte{0x80}))
	require.Error(t, err)
}
