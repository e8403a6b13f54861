package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionBytes(t *testing.T) {
	checkCodec(t, Position{}, BlockPos{},
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	// 1<<38 | 2<<26 | 3
	checkCodec(t, Position{}, BlockPos{X: 1, Y: 2, Z: 3},
		[]byte{0x00, 0x00, 0x00, 0x40, 0x08, 0x00, 0x00, 0x03})
}

func TestPositionRoundTrip(t *testing.T) {
	for _, pos := range []BlockPos{
		{X: 100, Y: 64, Z: -100},
		{X: -1, Y: -1, Z: -1},
		{X: 1<<25 - 1, Y: 1<<11 - 1, Z: 1<<25 - 1},
		{X: -(1 << 25), Y: -(1 << 11), Z: -(1 << 25)},
	} {
		var buf bytes.Buffer
		r := require.New(t)
		r.NoError(Position{}.Encode(&buf, pos))
		r.Equal(8, buf.Len())

		decoded, err := Position{}.Decode(&buf)
		r.NoError(err)
		r.Equal(pos, decoded, "pos %+v", pos)
	}
}

func TestPositionOutOfBounds(t *testing.T) {
	cases := []struct {
		pos  BlockPos
		axis string
	}{
		{BlockPos{X: 1 << 25}, "x"},
		{BlockPos{X: -(1 << 25) - 1}, "x"},
		{BlockPos{Y: 1 << 11}, "y"},
		{BlockPos{Y: -(1 << 11) - 1}, "y"},
		{BlockPos{Z: 1 << 25}, "z"},
		{BlockPos{Z: -(1 << 25) - 1}, "z"},
	}
	for _, tc := range cases {
		err := Position{}.Encode(&bytes.Buffer{}, tc.pos)

		var coordErr *CoordError
		require.ErrorAs(t, err, &coordErr, "pos %+v", tc.pos)
		require.Equal(t, tc.axis, coordErr.Axis)
	}
}
