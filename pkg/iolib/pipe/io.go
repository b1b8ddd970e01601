// Package pipe links a writer to a reader through a memory or file
// backed ring. It serves both as a channel between goroutines and, in
// Drain mode, as the storage of a single-owner byte buffer.
package pipe

import (
	"io"
	"os"
)

// Reader is the input end of a pipe.
type Reader interface {
	io.ReadCloser
	// Buffered returns the number of bytes that can be read without
	// blocking. Once the writer is closed and nothing is left, the error
	// the writer was closed with is returned, io.EOF by default.
	Buffered() (int, error)
	CloseWithError(err error) error
}

// Writer is the output end of a pipe.
type Writer interface {
	io.WriteCloser
	Available() (int, error)
	CloseWithError(err error) error
}

type readEnd struct {
	l *link
}

func (r readEnd) Read(b []byte) (int, error)     { return r.l.read(b) }
func (r readEnd) Buffered() (int, error)         { return r.l.buffered() }
func (r readEnd) Close() error                   { return r.l.closeRead(nil) }
func (r readEnd) CloseWithError(err error) error { return r.l.closeRead(err) }

type writeEnd struct {
	l *link
}

func (w writeEnd) Write(b []byte) (int, error)    { return w.l.write(b) }
func (w writeEnd) Available() (int, error)        { return w.l.available() }
func (w writeEnd) Close() error                   { return w.l.closeWrite(nil) }
func (w writeEnd) CloseWithError(err error) error { return w.l.closeWrite(err) }

func open(store Store, mode Mode) (Reader, Writer) {
	l := newLink(store, mode)
	return readEnd{l}, writeEnd{l}
}

// New returns a Wait pipe over elastic memory: writes never block, reads
// wait for bytes or for the writer to close.
func New() (Reader, Writer) {
	return open(newMemStore(0), Wait)
}

// NewSize returns a Wait pipe over a fixed ring of size bytes, writers
// wait for readers once it is full.
func NewSize(size int) (Reader, Writer) {
	return open(newMemStore(size), Wait)
}

// NewFile returns a Wait pipe spooled through a ring of size bytes in file.
func NewFile(file *os.File, size int) (Reader, Writer) {
	return open(newFileStore(file, size), Wait)
}

// NewBuffer returns a Drain pipe over elastic memory.
func NewBuffer() (Reader, Writer) {
	return open(newMemStore(0), Drain)
}

// NewBufferFile returns a Drain pipe spooled through a ring of size bytes
// in file. Writes beyond size bytes that were not read back fail with
// io.ErrShortWrite.
func NewBufferFile(file *os.File, size int) (Reader, Writer) {
	return open(newFileStore(file, size), Drain)
}
