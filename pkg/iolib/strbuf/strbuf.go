// Package strbuf implements an in-memory text stream.
package strbuf

import (
	"io"
	"strings"

	"github.com/CodisLabs/codis/pkg/utils/errors"

	"github.com/CodisLabs/iostream/pkg/iolib/stream"
)

const DefaultReadSize = 1024

// Destination receives the contents of a Buffer in Copy.
type Destination interface {
	io.StringWriter
	Flush() error
}

// Buffer holds text as a sequence of characters. Lengths and indexes are
// counted in runes.
type Buffer struct {
	runes []rune
}

var (
	_ stream.Stream       = (*Buffer)(nil)
	_ stream.LineIterator = (*Buffer)(nil)
	_ Destination         = (*Buffer)(nil)
	_ io.Writer           = (*Buffer)(nil)
)

// New returns a buffer holding the concatenation of initial.
func New(initial ...string) *Buffer {
	return &Buffer{runes: []rune(strings.Join(initial, ""))}
}

func (b *Buffer) Len() int {
	return len(b.runes)
}

// Read returns the whole buffer and clears it.
func (b *Buffer) Read() string {
	s := string(b.runes)
	b.runes = nil
	return s
}

// ReadN returns the first n characters, DefaultReadSize if n < 1, and
// then clears the whole buffer, including what was not returned.
func (b *Buffer) ReadN(n int) string {
	if n < 1 {
		n = DefaultReadSize
	}
	if n > len(b.runes) {
		n = len(b.runes)
	}
	s := string(b.runes[:n])
	b.runes = nil
	return s
}

func (b *Buffer) WriteString(s string) (int, error) {
	b.runes = append(b.runes, []rune(s)...)
	return len(s), nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// Append writes s and returns b, for chaining.
func (b *Buffer) Append(s string) *Buffer {
	b.WriteString(s)
	return b
}

// Copy drains the buffer into dst and flushes dst.
func (b *Buffer) Copy(dst Destination) error {
	if dst == nil {
		return errors.Trace(stream.ErrInvalidArgument)
	}
	if _, err := dst.WriteString(b.Read()); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(dst.Flush())
}

func (b *Buffer) indexNewline() int {
	for i, r := range b.runes {
		if r == '\n' {
			return i
		}
	}
	return -1
}

// take removes and returns the first n characters.
func (b *Buffer) take(n int) string {
	s := string(b.runes[:n])
	b.runes = b.runes[n:]
	if len(b.runes) == 0 {
		b.runes = nil
	}
	return s
}

// ReadLine removes and returns the next line with its terminator, or the
// rest of the buffer if there is no terminator. It returns "" once the
// buffer is empty.
func (b *Buffer) ReadLine() (string, error) {
	pos := b.indexNewline()
	if pos == -1 {
		pos = len(b.runes) - 1
	}
	return b.take(pos + 1), nil
}

// Next removes and returns the next line without its terminator, or
// io.EOF when the buffer is empty.
func (b *Buffer) Next() (string, error) {
	if len(b.runes) == 0 {
		return "", io.EOF
	}
	pos := b.indexNewline()
	if pos == -1 {
		return b.take(len(b.runes)), nil
	}
	line := b.take(pos)
	b.take(1)
	return line, nil
}

func (b *Buffer) ForEach(fn func(line string) error) error {
	return stream.ForEach(b.Next, fn)
}

// Print writes line and a newline.
func (b *Buffer) Print(line string) error {
	b.WriteString(line + "\n")
	return b.Flush()
}

func (b *Buffer) Flush() error {
	return nil
}

func (b *Buffer) Close() error {
	return nil
}

func (b *Buffer) String() string {
	return string(b.runes)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Substring returns the characters between start and end. Both are
// clamped to the buffer and swapped if start > end.
func (b *Buffer) Substring(start, end int) string {
	n := len(b.runes)
	start, end = clamp(start, n), clamp(end, n)
	if start > end {
		start, end = end, start
	}
	return string(b.runes[start:end])
}

// Slice returns the characters between start and end, negative indexes
// count from the end. An empty string is returned if start >= end.
func (b *Buffer) Slice(start, end int) string {
	n := len(b.runes)
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	start, end = clamp(start, n), clamp(end, n)
	if start >= end {
		return ""
	}
	return string(b.runes[start:end])
}

// Substr returns up to length characters from start, a negative start
// counts from the end.
func (b *Buffer) Substr(start, length int) string {
	n := len(b.runes)
	if start < 0 {
		start += n
	}
	start = clamp(start, n)
	end := clamp(start+clamp(length, n), n)
	return string(b.runes[start:end])
}
