// Package byteview provides an immutable window over a byte slice.
package byteview

import (
	"io"

	"github.com/CodisLabs/codis/pkg/utils/errors"

	"github.com/CodisLabs/iostream/pkg/iolib/codec"
)

var ErrOutOfRange = errors.New("byteview: offset or length out of range")

// ByteView is an immutable view of b[off:off+n]. The backing slice is
// never written through a view, copies are made on the way out.
type ByteView struct {
	b   []byte
	off int
	n   int
}

// Serializer is implemented by values that can be written to a stream.
type Serializer interface {
	ByteView(charset string) (ByteView, error)
}

func New(b []byte) ByteView {
	return ByteView{b: b, n: len(b)}
}

// Slice returns a view of b[off:off+n].
func Slice(b []byte, off, n int) (ByteView, error) {
	if off < 0 || n < 0 || off+n > len(b) {
		return ByteView{}, errors.Trace(ErrOutOfRange)
	}
	return ByteView{b: b, off: off, n: n}, nil
}

func (v ByteView) Len() int {
	return v.n
}

func (v ByteView) Offset() int {
	return v.off
}

func (v ByteView) At(i int) byte {
	return v.b[v.off+i]
}

// Slice narrows the view to [i, j), relative to the view.
func (v ByteView) Slice(i, j int) (ByteView, error) {
	if i < 0 || j < i || j > v.n {
		return ByteView{}, errors.Trace(ErrOutOfRange)
	}
	return ByteView{b: v.b, off: v.off + i, n: j - i}, nil
}

// Bytes returns a copy of the viewed bytes.
func (v ByteView) Bytes() []byte {
	return cloneBytes(v.b[v.off : v.off+v.n])
}

func (v ByteView) String() string {
	return string(v.b[v.off : v.off+v.n])
}

func (v ByteView) Equal(b []byte) bool {
	return string(v.b[v.off:v.off+v.n]) == string(b)
}

// Decode converts the viewed bytes into text.
func (v ByteView) Decode(charset string) (string, error) {
	return codec.Decode(v.b[v.off:v.off+v.n], charset)
}

// WriteTo writes the viewed bytes without copying them first.
func (v ByteView) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(v.b[v.off : v.off+v.n])
	return int64(n), errors.Trace(err)
}

// ByteView lets a view be written back to a stream, charset is ignored.
func (v ByteView) ByteView(charset string) (ByteView, error) {
	return v, nil
}

// Bytes is a Serializer for raw bytes.
type Bytes []byte

func (b Bytes) ByteView(charset string) (ByteView, error) {
	return New(b), nil
}

// Text is a Serializer that encodes itself with the requested charset.
type Text string

func (s Text) ByteView(charset string) (ByteView, error) {
	b, err := codec.Encode(string(s), charset)
	if err != nil {
		return ByteView{}, err
	}
	return New(b), nil
}

func cloneBytes(b []byte) []byte {
	dup := make([]byte, len(b))
	copy(dup, b)
	return dup
}
