package pipe

import (
	"io"
	"os"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/errors"
)

const defaultFileStoreSize = int(bytesize.MB)

// fileStore spools the ring into a file. The file is truncated each time
// the reader catches up, so it never grows past the ring size.
type fileStore struct {
	ring
	file *os.File
}

// newFileStore returns a store of size bytes rounded up to whole pages,
// defaultFileStoreSize if size <= 0.
func newFileStore(file *os.File, size int) *fileStore {
	if size <= 0 {
		size = defaultFileStoreSize
	}
	return &fileStore{ring: ring{size: roundUp(size, memPageSize)}, file: file}
}

func (f *fileStore) ReadSome(b []byte) (int, error) {
	if f.file == nil {
		return 0, errors.Trace(io.ErrClosedPipe)
	}
	var n int
	for n < len(b) {
		offset, length := f.readable(len(b) - n)
		if length == 0 {
			break
		}
		nn, err := f.file.ReadAt(b[n:n+length], int64(offset))
		if err == io.EOF && nn == length {
			err = nil
		}
		n += nn
		if f.consume(nn) && err == nil {
			err = f.file.Truncate(0)
		}
		if err != nil {
			return n, errors.Trace(err)
		}
	}
	return n, nil
}

func (f *fileStore) WriteSome(b []byte) (int, error) {
	if f.file == nil {
		return 0, errors.Trace(io.ErrClosedPipe)
	}
	var n int
	for n < len(b) {
		offset, length := f.writable(len(b) - n)
		if length == 0 {
			break
		}
		nn, err := f.file.WriteAt(b[n:n+length], int64(offset))
		n += nn
		f.produce(nn)
		if err != nil {
			return n, errors.Trace(err)
		}
	}
	return n, nil
}

func (f *fileStore) Buffered() int {
	if f.file == nil {
		return 0
	}
	return f.used()
}

func (f *fileStore) Available() int {
	if f.file == nil {
		return 0
	}
	return f.room()
}

// Release truncates the file, closing it is left to the caller.
func (f *fileStore) Release() error {
	file := f.file
	if file == nil {
		return nil
	}
	f.file, f.ring = nil, ring{}
	return errors.Trace(file.Truncate(0))
}
