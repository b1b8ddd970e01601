package stream

import (
	"io"
	"os"
	"testing"

	"github.com/CodisLabs/codis/pkg/utils/assert"
	"github.com/CodisLabs/codis/pkg/utils/errors"
	"pgregory.net/rapid"

	"github.com/CodisLabs/iostream/pkg/iolib/byteview"
	"github.com/CodisLabs/iostream/pkg/iolib/codec"
)

func TestByteBufferRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 1<<17).Draw(t, "payload")
		b, err := NewByteBuffer(payload)
		if err != nil {
			t.Fatalf("new byte buffer: %v", err)
		}
		defer b.Close()
		if b.Len() != len(payload) {
			t.Fatalf("len = %d, want %d", b.Len(), len(payload))
		}
		v, err := b.ToByteView()
		if err != nil {
			t.Fatalf("to byte view: %v", err)
		}
		if !v.Equal(payload) {
			t.Fatalf("round trip mismatch, got %d bytes, want %d", v.Len(), len(payload))
		}
	})
}

func TestByteBufferEmpty(t *testing.T) {
	b, err := NewByteBuffer(nil)
	assert.MustNoError(err)
	assert.Must(b.Len() == 0)
	v, err := b.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.Len() == 0)
	assert.MustNoError(b.Close())
}

func TestByteBufferLenIsLastWrite(t *testing.T) {
	b, err := NewByteBuffer([]byte("0123456789"))
	assert.MustNoError(err)
	assert.Must(b.Len() == 10)

	_, err = b.WriteString("abc")
	assert.MustNoError(err)
	assert.Must(b.Len() == 3)
}

func TestByteBufferSharedPipe(t *testing.T) {
	b, err := NewByteBuffer([]byte("ab"))
	assert.MustNoError(err)

	_, err = b.WriteString("cd")
	assert.MustNoError(err)

	v, err := b.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.String() == "ab")

	v, err = b.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.Len() == 0)

	assert.MustNoError(b.Flush())
	v, err = b.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.String() == "cd")
}

func TestByteBufferDecodeText(t *testing.T) {
	latin, err := codec.Encode("héllo", "ISO-8859-1")
	assert.MustNoError(err)
	b, err := NewByteBuffer(latin)
	assert.MustNoError(err)
	s, err := b.DecodeText("ISO-8859-1")
	assert.MustNoError(err)
	assert.Must(s == "héllo")

	b, err = NewByteBuffer([]byte("héllo"))
	assert.MustNoError(err)
	s, err = b.DecodeText("")
	assert.MustNoError(err)
	assert.Must(s == "héllo")

	b, err = NewByteBuffer([]byte("x"))
	assert.MustNoError(err)
	_, err = b.DecodeText("no-such-charset")
	assert.Must(errors.Equal(err, codec.ErrUnknownCharset))
}

func TestByteBufferAsValue(t *testing.T) {
	src, err := NewByteBuffer([]byte("nested"))
	assert.MustNoError(err)
	dst, err := NewByteBuffer(nil)
	assert.MustNoError(err)

	var _ byteview.Serializer = src
	assert.MustNoError(dst.WriteValue(src, ""))
	assert.Must(dst.Len() == len("nested"))
	assert.MustNoError(dst.Flush())

	v, err := dst.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.String() == "nested")
}

func TestByteBufferFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "spool")
	assert.MustNoError(err)
	defer f.Close()

	b, err := NewByteBufferFile(f, 0, []byte("spooled payload"))
	assert.MustNoError(err)
	v, err := b.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.String() == "spooled payload")
}

func TestByteBufferLinesStayWritable(t *testing.T) {
	b, err := NewByteBuffer([]byte("a\nb\nc"))
	assert.MustNoError(err)

	var lines []string
	assert.MustNoError(b.ForEach(func(line string) error {
		lines = append(lines, line)
		return nil
	}))
	assert.Must(len(lines) == 3)
	assert.Must(lines[0] == "a" && lines[1] == "b" && lines[2] == "c")

	_, err = b.Next()
	assert.Must(err == io.EOF)
	line, err := b.ReadLine()
	assert.MustNoError(err)
	assert.Must(line == "")

	_, err = b.WriteString("d\n")
	assert.MustNoError(err)
	assert.MustNoError(b.Flush())
	line, err = b.Next()
	assert.MustNoError(err)
	assert.Must(line == "d")
	assert.MustNoError(b.Close())
}

func TestByteBufferReadNDrained(t *testing.T) {
	b, err := NewByteBuffer([]byte("abc"))
	assert.MustNoError(err)

	v, err := b.ReadN(10)
	assert.MustNoError(err)
	assert.Must(v.String() == "abc")

	v, err = b.ReadN(10)
	assert.Must(err == io.EOF)
	assert.Must(v.Len() == 0)

	assert.MustNoError(b.WriteValue(byteview.Text("more"), ""))
	assert.MustNoError(b.Flush())
	v, err = b.ReadN(0)
	assert.MustNoError(err)
	assert.Must(v.String() == "more")
}

func TestByteBufferCloseFlushesFirst(t *testing.T) {
	b, err := NewByteBuffer(nil)
	assert.MustNoError(err)
	_, err = b.WriteString("x")
	assert.MustNoError(err)
	assert.MustNoError(b.Close())
	assert.Must(b.Input() == nil && b.Output() == nil)
	assert.MustNoError(b.Close())
}

func TestByteBufferFileCapacity(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "spool")
	assert.MustNoError(err)
	defer f.Close()

	const size = 4096
	b, err := NewByteBufferFile(f, size, make([]byte, size))
	assert.MustNoError(err)
	assert.Must(b.Len() == size)

	_, err = b.WriteString("overflow")
	assert.MustNoError(err)
	assert.Must(errors.Equal(b.Flush(), io.ErrShortWrite))

	v, err := b.ToByteView()
	assert.MustNoError(err)
	assert.Must(v.Len() == size)
}
