package stream

import (
	"os"

	"github.com/CodisLabs/codis/pkg/utils/errors"
	"github.com/CodisLabs/codis/pkg/utils/log"
	"go.uber.org/multierr"

	"github.com/CodisLabs/iostream/pkg/iolib/byteview"
	"github.com/CodisLabs/iostream/pkg/iolib/codec"
	"github.com/CodisLabs/iostream/pkg/iolib/pipe"
)

// ByteBuffer is a Raw stream whose output is linked back to its input
// through a drain mode pipe. Reads and writes share that single pipe:
// reading drains what was written and flushed, and a buffer with nothing
// left to read reports io.EOF while staying writable.
type ByteBuffer struct {
	*Raw
}

// NewByteBuffer returns a buffer preloaded with payload, which is
// written and flushed so it can be read back immediately.
func NewByteBuffer(payload []byte) (*ByteBuffer, error) {
	r, w := pipe.NewBuffer()
	return newByteBuffer(r, w, DefaultBufferSize, payload)
}

// NewByteBufferFile is like NewByteBuffer but spools the bytes through
// file. At most size bytes can be held at a time, the same size is used
// for the stream's own buffers.
func NewByteBufferFile(file *os.File, size int, payload []byte) (*ByteBuffer, error) {
	r, w := pipe.NewBufferFile(file, size)
	return newByteBuffer(r, w, size, payload)
}

func newByteBuffer(r pipe.Reader, w pipe.Writer, size int, payload []byte) (*ByteBuffer, error) {
	b := &ByteBuffer{NewRawSize(r, w, size)}
	if len(payload) != 0 {
		if err := b.WriteValue(byteview.Bytes(payload), ""); err != nil {
			b.Close()
			return nil, err
		}
		if err := b.Flush(); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

// Len returns the byte count of the most recent write.
func (b *ByteBuffer) Len() int {
	return b.LastWriteLen()
}

// ToByteView drains the bytes that are currently readable. Writes still
// sitting in the buffered writer are not visible until flushed.
func (b *ByteBuffer) ToByteView() (byteview.ByteView, error) {
	return b.ReadAvailable()
}

// ByteView makes a ByteBuffer writable to other streams. It drains the
// buffer like ToByteView.
func (b *ByteBuffer) ByteView(charset string) (byteview.ByteView, error) {
	return b.ReadAvailable()
}

// DecodeText drains the readable bytes and decodes them with charset,
// codec.Default if empty.
func (b *ByteBuffer) DecodeText(charset string) (string, error) {
	v, err := b.ReadAvailable()
	if err != nil {
		return "", err
	}
	if charset == "" {
		charset = codec.Default
	}
	s, err := v.Decode(charset)
	if err != nil {
		return "", errors.Trace(err)
	}
	return s, nil
}

// Close flushes pending writes while the shared pipe is still open, then
// closes the stream like Raw.Close.
func (b *ByteBuffer) Close() error {
	var errs error
	if b.bw != nil && b.input != nil {
		if err := b.bw.Flush(); err != nil {
			log.WarnErrorf(err, "stream: close writer failed")
			errs = writeError(err)
		}
		b.bw = nil
	}
	return multierr.Append(errs, b.Raw.Close())
}
