// Package channel provides file backed channels for streams.
package channel

import (
	"io"
	"os"

	"github.com/CodisLabs/codis/pkg/utils/errors"
)

// File adapts an *os.File to the input and output channel interfaces
// of package stream. Regular files are seekable, pipes and terminals are
// not.
type File struct {
	*os.File
}

func NewFile(f *os.File) *File {
	return &File{f}
}

// Buffered returns the number of bytes between the current offset and
// the end of a regular file. For other files it is always zero, reads
// on them block.
func (f *File) Buffered() (int, error) {
	s, err := f.Stat()
	if err != nil {
		return 0, errors.Trace(err)
	}
	if !s.Mode().IsRegular() {
		return 0, nil
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Trace(err)
	}
	if n := s.Size() - pos; n > 0 {
		return int(n), nil
	}
	return 0, nil
}

// Flush commits the file contents to stable storage.
func (f *File) Flush() error {
	s, err := f.Stat()
	if err != nil {
		return errors.Trace(err)
	}
	if !s.Mode().IsRegular() {
		return nil
	}
	return errors.Trace(f.Sync())
}

func OpenRead(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &File{f}, nil
}

func OpenWrite(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &File{f}, nil
}

func OpenAppend(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &File{f}, nil
}

// Stdin and Stdout wrap the process standard streams. Closing them
// closes the process descriptors.
func Stdin() *File {
	return &File{os.Stdin}
}

func Stdout() *File {
	return &File{os.Stdout}
}
