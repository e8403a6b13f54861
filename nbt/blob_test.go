package nbt

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestBlob(t *testing.T) *Blob {
	t.Helper()
	r := require.New(t)

	blob := New("")
	r.NoError(blob.Insert("name", String("Herobrine")))
	r.NoError(blob.Insert("health", Byte(100)))
	r.NoError(blob.Insert("food", Float(20.0)))
	r.NoError(blob.Insert("emeralds", Short(12345)))
	r.NoError(blob.Insert("timestamp", Int(1424778774)))
	return blob
}

func roundTrip(t *testing.T, blob *Blob) {
	t.Helper()
	r := require.New(t)

	var buf bytes.Buffer
	r.NoError(blob.Write(&buf))
	r.Equal(blob.Len(), buf.Len(), "Len disagrees with the bytes written")

	decoded, err := Read(&buf)
	r.NoError(err)
	r.Equal(blob.Title, decoded.Title)
	if diff := cmp.Diff(blob.Root(), decoded.Root()); diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	blob := newTestBlob(t)
	require.Equal(t, 72, blob.Len())
	roundTrip(t, blob)
}

// The canonical encoding of the fixture. Our own encoder may emit the
// entries in any order, so this only drives the decoder.
func TestKnownBytesDecode(t *testing.T) {
	r := require.New(t)

	raw := []byte{
		0x0a, 0x00, 0x00,
		0x08, 0x00, 0x04, 'n', 'a', 'm', 'e',
		0x00, 0x09, 'H', 'e', 'r', 'o', 'b', 'r', 'i', 'n', 'e',
		0x01, 0x00, 0x06, 'h', 'e', 'a', 'l', 't', 'h', 0x64,
		0x05, 0x00, 0x04, 'f', 'o', 'o', 'd', 0x41, 0xa0, 0x00, 0x00,
		0x02, 0x00, 0x08, 'e', 'm', 'e', 'r', 'a', 'l', 'd', 's', 0x30, 0x39,
		0x03, 0x00, 0x09, 't', 'i', 'm', 'e', 's', 't', 'a', 'm', 'p', 0x54, 0xec, 0x66, 0x16,
		0x00,
	}
	want := newTestBlob(t)
	r.Equal(len(raw), want.Len())

	decoded, err := Read(bytes.NewReader(raw))
	r.NoError(err)
	if diff := cmp.Diff(want.Root(), decoded.Root()); diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}

func TestEmptyBlobBytes(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	r.NoError(New("").Write(&buf))
	r.Equal([]byte{0x0a, 0x00, 0x00, 0x00}, buf.Bytes())
}

func TestStringEntryBytes(t *testing.T) {
	r := require.New(t)

	blob := New("hello world")
	r.NoError(blob.Insert("name", String("Bananrama")))

	want := []byte{
		0x0a, 0x00, 0x0b, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd',
		0x08, 0x00, 0x04, 'n', 'a', 'm', 'e',
		0x00, 0x09, 'B', 'a', 'n', 'a', 'n', 'r', 'a', 'm', 'a',
		0x00,
	}
	var buf bytes.Buffer
	r.NoError(blob.Write(&buf))
	r.Equal(want, buf.Bytes())
	r.Equal(len(want), blob.Len())
}

func TestEmptyListBytes(t *testing.T) {
	r := require.New(t)

	blob := New("")
	r.NoError(blob.Insert("list", List{}))

	// An empty list still carries an element type; TagByte is the
	// conventional filler.
	want := []byte{
		0x0a, 0x00, 0x00,
		0x09, 0x00, 0x04, 'l', 'i', 's', 't',
		0x01, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}
	var buf bytes.Buffer
	r.NoError(blob.Write(&buf))
	r.Equal(want, buf.Bytes())

	decoded, err := Read(bytes.NewReader(want))
	r.NoError(err)
	v, ok := decoded.Get("list")
	r.True(ok)
	r.Len(v.(List), 0)
}

func TestNestedCompoundBytes(t *testing.T) {
	r := require.New(t)

	blob := New("")
	r.NoError(blob.Insert("inner", Compound{"x": Byte(1)}))

	want := []byte{
		0x0a, 0x00, 0x00,
		0x0a, 0x00, 0x05, 'i', 'n', 'n', 'e', 'r',
		0x01, 0x00, 0x01, 'x', 0x01,
		0x00,
		0x00,
	}
	var buf bytes.Buffer
	r.NoError(blob.Write(&buf))
	r.Equal(want, buf.Bytes())
	roundTrip(t, blob)
}

func TestRoundTripAllTypes(t *testing.T) {
	r := require.New(t)

	blob := New("everything")
	r.NoError(blob.Insert("byte", Byte(-1)))
	r.NoError(blob.Insert("short", Short(-300)))
	r.NoError(blob.Insert("int", Int(-100000)))
	r.NoError(blob.Insert("long", Long(-1234567890123)))
	r.NoError(blob.Insert("float", Float(3.5)))
	r.NoError(blob.Insert("double", Double(-2.25)))
	r.NoError(blob.Insert("bytes", ByteArray{0x00, 0x7f, 0xff}))
	r.NoError(blob.Insert("string", String("héllo")))
	r.NoError(blob.Insert("list", List{Long(1), Long(2), Long(3)}))
	r.NoError(blob.Insert("compound", Compound{"nested": List{Compound{"k": String("v")}}}))
	r.NoError(blob.Insert("ints", IntArray{1, -2, 3}))
	roundTrip(t, blob)
}

func TestNoRootCompound(t *testing.T) {
	for _, raw := range [][]byte{
		{0x00},                               // end marker at the top level
		{0x08, 0x00, 0x00, 0x00, 0x00},       // string root
		{0x01, 0x00, 0x01, 'a', 0x2a, 0x00},  // byte root
	} {
		_, err := Read(bytes.NewReader(raw))
		require.ErrorIs(t, err, ErrNoRootCompound)
	}
}

func TestIncompleteValue(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	r.NoError(newTestBlob(t).Write(&buf))
	raw := buf.Bytes()

	// Every possible truncation point fails the same way; a short read is
	// never surfaced as a bare EOF.
	for n := 0; n < len(raw); n++ {
		_, err := Read(bytes.NewReader(raw[:n]))
		r.ErrorIs(err, ErrIncomplete, "truncated at %d bytes", n)
	}
}

// A hostile count must come back as an error, never reach make.
func TestNegativeLengthPrefix(t *testing.T) {
	for _, raw := range [][]byte{
		{0x0a, 0x00, 0x00, 0x07, 0x00, 0x01, 'b', 0xff, 0xff, 0xff, 0xff, 0x00},
		{0x0a, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x01, 0xff, 0xff, 0xff, 0xff, 0x00},
		{0x0a, 0x00, 0x00, 0x0b, 0x00, 0x01, 'i', 0xff, 0xff, 0xff, 0xff, 0x00},
	} {
		_, err := Read(bytes.NewReader(raw))
		require.ErrorIs(t, err, ErrInvalidLength, "tag %#02x", raw[3])
	}
}

// A huge claimed count fails on the short read, without reserving the claimed
// size first.
func TestHugeClaimedByteArray(t *testing.T) {
	raw := []byte{0x0a, 0x00, 0x00, 0x07, 0x00, 0x01, 'b', 0x7f, 0xff, 0xff, 0xff, 0x00}
	_, err := Read(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrIncomplete)
}

func TestInvalidTypeID(t *testing.T) {
	raw := []byte{
		0x0a, 0x00, 0x00,
		0x0f, 0x00, 0x00,
		0x00,
	}
	_, err := Read(bytes.NewReader(raw))

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, byte(0x0f), typeErr.ID)
}

func TestHeterogeneousListInsert(t *testing.T) {
	r := require.New(t)

	blob := New("")
	err := blob.Insert("mixed", List{Byte(1), Short(2)})
	r.ErrorIs(err, ErrHeterogeneousList)

	// The rejected value must not land in the document.
	_, ok := blob.Get("mixed")
	r.False(ok)
}

func TestHeterogeneousListEncode(t *testing.T) {
	r := require.New(t)

	// Root gives direct access past the Insert check, so the encoder has to
	// catch it too.
	blob := New("")
	blob.Root()["mixed"] = List{Byte(1), Short(2)}
	err := blob.Write(&bytes.Buffer{})
	r.ErrorIs(err, ErrHeterogeneousList)
}

func TestGzipRoundTrip(t *testing.T) {
	r := require.New(t)

	blob := newTestBlob(t)
	var buf bytes.Buffer
	r.NoError(blob.WriteGzip(&buf))

	decoded, err := ReadGzip(&buf)
	r.NoError(err)
	if diff := cmp.Diff(blob.Root(), decoded.Root()); diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}

func TestZlibRoundTrip(t *testing.T) {
	r := require.New(t)

	blob := newTestBlob(t)
	var buf bytes.Buffer
	r.NoError(blob.WriteZlib(&buf))

	decoded, err := ReadZlib(&buf)
	r.NoError(err)
	if diff := cmp.Diff(blob.Root(), decoded.Root()); diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}

func TestBadCompression(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef}
	_, err := ReadGzip(bytes.NewReader(garbage))
	require.Error(t, err)
	_, err = ReadZlib(bytes.NewReader(garbage))
	require.Error(t, err)
}

func TestInvalidUTF8String(t *testing.T) {
	raw := []byte{
		0x0a, 0x00, 0x00,
		0x08, 0x00, 0x01, 's',
		0x00, 0x02, 0xc3, 0x28,
		0x00,
	}
	_, err := Read(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrInvalidUTF8)
}
