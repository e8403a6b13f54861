// Package nbt implements the Named Binary Tag format: a self-describing
// binary tree of typed values used for save data and for structures embedded
// inside network packets.
//
// A Blob is the only legal top-level shape: a titled compound. It can be
// built incrementally with Insert or materialized from a stream with Read,
// and written raw or under gzip/zlib compression.
package nbt

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Blob is a complete NBT document: a title paired with a root compound.
type Blob struct {
	Title string
	root  Compound
}

// New creates an empty Blob with the given title.
func New(title string) *Blob {
	return &Blob{Title: title, root: make(Compound)}
}

// Insert adds a named value to the root compound, overwriting any previous
// value under that name. A heterogeneous list is rejected here, before any
// encode is attempted, and the compound is left unchanged.
func (b *Blob) Insert(name string, value Value) error {
	if list, ok := value.(List); ok && !list.homogeneous() {
		return ErrHeterogeneousList
	}
	b.root[name] = value
	return nil
}

// Get returns the value stored under name in the root compound.
func (b *Blob) Get(name string) (Value, bool) {
	v, ok := b.root[name]
	return v, ok
}

// Root returns the root compound. Mutating it bypasses the Insert checks.
func (b *Blob) Root() Compound {
	return b.root
}

// Len returns the uncompressed encoded size of the document in bytes.
func (b *Blob) Len() int {
	return 3 + len(b.Title) + b.root.Len()
}

// Write encodes the document to w in its raw binary form.
func (b *Blob) Write(w io.Writer) error {
	if err := writeHeader(w, TagCompound, b.Title); err != nil {
		return err
	}
	return b.root.encodePayload(w)
}

// WriteGzip encodes the document under a gzip stream.
func (b *Blob) WriteGzip(w io.Writer) error {
	zw := gzip.NewWriter(w)
	if err := b.Write(zw); err != nil {
		return err
	}
	return zw.Close()
}

// WriteZlib encodes the document under a zlib stream.
func (b *Blob) WriteZlib(w io.Writer) error {
	zw := zlib.NewWriter(w)
	if err := b.Write(zw); err != nil {
		return err
	}
	return zw.Close()
}

// Read decodes one document from r. Any stream whose top-level value is not
// a compound fails with ErrNoRootCompound.
func Read(r io.Reader) (*Blob, error) {
	id, title, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if id != TagCompound {
		return nil, ErrNoRootCompound
	}
	root, err := readPayload(r, TagCompound)
	if err != nil {
		return nil, err
	}
	return &Blob{Title: title, root: root.(Compound)}, nil
}

// ReadGzip decodes one document from a gzip-compressed stream.
func ReadGzip(r io.Reader) (*Blob, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return Read(zr)
}

// ReadZlib decodes one document from a zlib-compressed stream.
func ReadZlib(r io.Reader) (*Blob, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	return Read(zr)
}
