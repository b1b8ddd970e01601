package pipe

import (
	"io"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/errors"
)

const memPageSize = int(bytesize.KB * 4)

// memStore keeps the ring in a byte slice. An elastic store reallocates
// whenever a write does not fit, a fixed one fills up.
type memStore struct {
	ring
	buf []byte

	elastic bool
}

// newMemStore returns a fixed store of size bytes rounded up to whole
// pages, or an elastic one if size <= 0.
func newMemStore(size int) *memStore {
	if size <= 0 {
		return &memStore{ring: ring{size: memPageSize}, buf: make([]byte, memPageSize), elastic: true}
	}
	size = roundUp(size, memPageSize)
	return &memStore{ring: ring{size: size}, buf: make([]byte, size)}
}

func (m *memStore) released() bool {
	return m.buf == nil
}

func (m *memStore) ReadSome(b []byte) (int, error) {
	if m.released() {
		return 0, errors.Trace(io.ErrClosedPipe)
	}
	var n int
	for n < len(b) {
		offset, length := m.readable(len(b) - n)
		if length == 0 {
			break
		}
		n += copy(b[n:], m.buf[offset:offset+length])
		m.consume(length)
	}
	return n, nil
}

func (m *memStore) WriteSome(b []byte) (int, error) {
	if m.released() {
		return 0, errors.Trace(io.ErrClosedPipe)
	}
	if m.elastic && m.room() < len(b) {
		m.resize(m.used() + len(b))
	}
	var n int
	for n < len(b) {
		offset, length := m.writable(len(b) - n)
		if length == 0 {
			break
		}
		n += copy(m.buf[offset:offset+length], b[n:])
		m.produce(length)
	}
	return n, nil
}

// resize moves the stored bytes to the front of a new slice holding at
// least want bytes.
func (m *memStore) resize(want int) {
	size := roundUp(max(want, len(m.buf)*2), memPageSize)
	buf := make([]byte, size)
	n := copy(buf, m.snapshot())
	m.buf, m.ring = buf, ring{size: size, tail: uint64(n)}
}

// snapshot returns the stored bytes in order without consuming them.
func (m *memStore) snapshot() []byte {
	var b = make([]byte, 0, m.used())
	var r = m.ring
	for r.used() != 0 {
		offset, length := r.readable(r.used())
		b = append(b, m.buf[offset:offset+length]...)
		r.head += uint64(length)
	}
	return b
}

func (m *memStore) Buffered() int {
	if m.released() {
		return 0
	}
	return m.used()
}

func (m *memStore) Available() int {
	if m.released() {
		return 0
	}
	return m.room()
}

func (m *memStore) Release() error {
	m.buf, m.ring = nil, ring{}
	return nil
}
