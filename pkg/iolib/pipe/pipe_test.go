package pipe

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/CodisLabs/codis/pkg/utils/assert"
	"github.com/CodisLabs/codis/pkg/utils/errors"
)

func TestPipeSingleGoroutine(t *testing.T) {
	r, w := New()
	var payload = bytes.Repeat([]byte("0123456789"), 10000)
	n, err := w.Write(payload)
	assert.MustNoError(err)
	assert.Must(n == len(payload))

	buffered, err := r.Buffered()
	assert.MustNoError(err)
	assert.Must(buffered == len(payload))

	var b = make([]byte, len(payload))
	_, err = io.ReadFull(r, b)
	assert.MustNoError(err)
	assert.Must(bytes.Equal(b, payload))
}

func TestPipeWriterClose(t *testing.T) {
	r, w := New()
	_, err := w.Write([]byte("tail"))
	assert.MustNoError(err)
	assert.MustNoError(w.Close())
	assert.MustNoError(w.Close())

	b, err := io.ReadAll(r)
	assert.MustNoError(err)
	assert.Must(string(b) == "tail")

	n, err := r.Buffered()
	assert.Must(n == 0 && err == io.EOF)

	_, err = w.Write([]byte("x"))
	assert.Must(errors.Equal(err, io.ErrClosedPipe))
}

func TestPipeWriterCloseWithError(t *testing.T) {
	r, w := New()
	var failed = errors.New("upstream failed")
	assert.MustNoError(w.CloseWithError(failed))
	_, err := r.Read(make([]byte, 1))
	assert.Must(err == failed)
}

func TestPipeReaderClose(t *testing.T) {
	r, w := New()
	assert.MustNoError(r.Close())
	assert.MustNoError(r.Close())

	_, err := r.Read(make([]byte, 1))
	assert.Must(errors.Equal(err, io.ErrClosedPipe))
	_, err = w.Write([]byte("x"))
	assert.Must(errors.Equal(err, io.ErrClosedPipe))
	_, err = w.Available()
	assert.Must(errors.Equal(err, io.ErrClosedPipe))
}

func TestPipeWaitsForWriter(t *testing.T) {
	r, w := NewSize(memPageSize)
	var payload = bytes.Repeat([]byte{'z'}, memPageSize*4)
	go func() {
		_, err := w.Write(payload)
		assert.MustNoError(err)
		assert.MustNoError(w.Close())
	}()
	b, err := io.ReadAll(r)
	assert.MustNoError(err)
	assert.Must(bytes.Equal(b, payload))
}

func TestPipeFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "pipe")
	assert.MustNoError(err)
	defer f.Close()

	r, w := NewFile(f, 0)
	_, err = w.Write([]byte("spooled"))
	assert.MustNoError(err)

	var b = make([]byte, 7)
	_, err = io.ReadFull(r, b)
	assert.MustNoError(err)
	assert.Must(string(b) == "spooled")
}

func TestDrainReadsEmptyAsEOF(t *testing.T) {
	r, w := NewBuffer()
	n, err := r.Read(make([]byte, 8))
	assert.Must(n == 0 && err == io.EOF)

	_, err = w.Write([]byte("abc"))
	assert.MustNoError(err)
	buffered, err := r.Buffered()
	assert.MustNoError(err)
	assert.Must(buffered == 3)

	b, err := io.ReadAll(r)
	assert.MustNoError(err)
	assert.Must(string(b) == "abc")

	buffered, err = r.Buffered()
	assert.MustNoError(err)
	assert.Must(buffered == 0)

	_, err = w.Write([]byte("def"))
	assert.MustNoError(err)
	b, err = io.ReadAll(r)
	assert.MustNoError(err)
	assert.Must(string(b) == "def")
}

func TestDrainFileShortWrite(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "drain")
	assert.MustNoError(err)
	defer f.Close()

	r, w := NewBufferFile(f, memPageSize)
	n, err := w.Write(make([]byte, memPageSize+10))
	assert.Must(n == memPageSize)
	assert.Must(errors.Equal(err, io.ErrShortWrite))

	b, err := io.ReadAll(r)
	assert.MustNoError(err)
	assert.Must(len(b) == memPageSize)

	n, err = w.Write(make([]byte, 10))
	assert.MustNoError(err)
	assert.Must(n == 10)
}
