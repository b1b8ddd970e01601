package strbuf

import (
	"io"
	"strings"
	"testing"

	"github.com/CodisLabs/codis/pkg/utils/assert"
	"github.com/CodisLabs/codis/pkg/utils/errors"
	"pgregory.net/rapid"

	"github.com/CodisLabs/iostream/pkg/iolib/stream"
	"github.com/CodisLabs/iostream/pkg/iolib/text"
)

func TestWriteRead(t *testing.T) {
	b := New()
	assert.Must(b.Append("a").Append("b").Read() == "ab")
	assert.Must(b.Len() == 0)
	assert.Must(b.Read() == "")
}

func TestReadNClearsWholeBuffer(t *testing.T) {
	b := New("hello")
	assert.Must(b.ReadN(1) == "h")
	assert.Must(b.Len() == 0)
	assert.Must(b.String() == "")

	b = New("hello")
	assert.Must(b.ReadN(100) == "hello")
	assert.Must(b.Len() == 0)

	b = New(strings.Repeat("x", 2000))
	assert.Must(len(b.ReadN(0)) == DefaultReadSize)
	assert.Must(b.Len() == 0)
}

func TestLenCountsRunes(t *testing.T) {
	b := New("héllo", " ", "wörld")
	assert.Must(b.Len() == 11)
	assert.Must(b.ReadN(2) == "hé")
}

func TestNextLines(t *testing.T) {
	var testcase = func(s string, expected []string) {
		b := New(s)
		var lines []string
		assert.MustNoError(b.ForEach(func(line string) error {
			lines = append(lines, line)
			return nil
		}))
		assert.Must(strings.Join(lines, "|") == strings.Join(expected, "|"))
		assert.Must(len(lines) == len(expected))
		_, err := b.Next()
		assert.Must(err == io.EOF)
		assert.Must(b.Len() == 0)
	}
	testcase("a\nb\nc", []string{"a", "b", "c"})
	testcase("a\nb\n", []string{"a", "b"})
	testcase("\n\n", []string{"", ""})
	testcase("", nil)
}

func TestReadLine(t *testing.T) {
	b := New("one\ntwo")
	for _, expected := range []string{"one\n", "two", "", ""} {
		line, err := b.ReadLine()
		assert.MustNoError(err)
		assert.Must(line == expected)
	}
}

func TestForEachError(t *testing.T) {
	b := New("a\nb\nc")
	var stop = errors.New("stop")
	err := b.ForEach(func(line string) error {
		if line == "b" {
			return stop
		}
		return nil
	})
	assert.Must(err == stop)
	assert.Must(b.String() == "c")
}

func TestPrint(t *testing.T) {
	b := New()
	assert.MustNoError(b.Print("x"))
	assert.MustNoError(b.Print("y"))
	assert.Must(b.String() == "x\ny\n")
	assert.MustNoError(b.Flush())
	assert.MustNoError(b.Close())
	assert.Must(b.Len() == 4)
}

func TestCopy(t *testing.T) {
	src, dst := New("moved"), New("pre-")
	assert.MustNoError(src.Copy(dst))
	assert.Must(src.Len() == 0)
	assert.Must(dst.String() == "pre-moved")

	assert.Must(errors.Equal(src.Copy(nil), stream.ErrInvalidArgument))
}

func TestCopyToTextWriter(t *testing.T) {
	buf, err := stream.NewByteBuffer(nil)
	assert.MustNoError(err)
	w, err := text.NewWriter(buf.Raw, text.Options{Charset: "UTF-16LE"})
	assert.MustNoError(err)

	assert.MustNoError(New("line\n").Copy(w))
	s, err := buf.DecodeText("UTF-16LE")
	assert.MustNoError(err)
	assert.Must(s == "line\n")
}

func TestViews(t *testing.T) {
	b := New("hello world")

	assert.Must(b.Substring(0, 5) == "hello")
	assert.Must(b.Substring(5, 0) == "hello")
	assert.Must(b.Substring(-3, 2) == "he")
	assert.Must(b.Substring(6, 100) == "world")

	assert.Must(b.Slice(0, 5) == "hello")
	assert.Must(b.Slice(-5, 11) == "world")
	assert.Must(b.Slice(-5, -1) == "worl")
	assert.Must(b.Slice(5, 0) == "")

	assert.Must(b.Substr(6, 3) == "wor")
	assert.Must(b.Substr(-5, 2) == "wo")
	assert.Must(b.Substr(6, -1) == "")
	assert.Must(b.Substr(6, 100) == "world")

	assert.Must(b.String() == "hello world")
	assert.Must(b.Len() == 11)
}

func TestWriteThenReadProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOf(rapid.String()).Draw(t, "parts")
		b := New()
		for _, s := range parts {
			if _, err := b.WriteString(s); err != nil {
				t.Fatalf("write: %v", err)
			}
		}
		expected := strings.Join(parts, "")
		if got := b.String(); got != string([]rune(expected)) {
			t.Fatalf("string = %q, want %q", got, expected)
		}
		if got := b.Read(); got != string([]rune(expected)) {
			t.Fatalf("read = %q, want %q", got, expected)
		}
		if b.Len() != 0 {
			t.Fatalf("len = %d after read", b.Len())
		}
	})
}
