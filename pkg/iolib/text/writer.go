package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/CodisLabs/codis/pkg/utils/errors"

	"github.com/CodisLabs/iostream/pkg/iolib/codec"
	"github.com/CodisLabs/iostream/pkg/iolib/stream"
)

// Writer encodes text into the output channel of a raw stream.
type Writer struct {
	raw *stream.Raw

	enc io.WriteCloser
	bw  *bufio.Writer

	lineBuffered bool
}

var (
	_ stream.Stream   = (*Writer)(nil)
	_ io.StringWriter = (*Writer)(nil)
)

func NewWriter(raw *stream.Raw, opts Options) (*Writer, error) {
	if raw == nil || raw.Output() == nil {
		return nil, errors.Trace(stream.ErrChannelWrite)
	}
	enc, err := codec.NewEncoder(raw.Output(), opts.Charset)
	if err != nil {
		return nil, err
	}
	return &Writer{
		raw: raw, enc: enc,
		bw:           bufio.NewWriterSize(enc, opts.bufferSize()),
		lineBuffered: opts.LineBuffered,
	}, nil
}

func (w *Writer) Raw() *stream.Raw {
	return w.raw
}

func (w *Writer) WriteString(s string) (int, error) {
	if w.bw == nil {
		return 0, errors.Trace(stream.ErrChannelWrite)
	}
	n, err := w.bw.WriteString(s)
	if err != nil {
		return n, errors.Trace(err)
	}
	if w.lineBuffered && strings.IndexByte(s, '\n') >= 0 {
		return n, w.Flush()
	}
	return n, nil
}

// Write writes UTF-8 text in p.
func (w *Writer) Write(p []byte) (int, error) {
	return w.WriteString(string(p))
}

// WriteStrings writes every part in order.
func (w *Writer) WriteStrings(parts ...string) error {
	for _, s := range parts {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) WriteLine(line string) error {
	_, err := w.WriteString(line + "\n")
	return err
}

func (w *Writer) WriteLines(lines []string) error {
	for _, line := range lines {
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Print writes values separated by single spaces and a newline, then
// flushes.
func (w *Writer) Print(values ...interface{}) error {
	var parts = make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	if err := w.WriteLine(strings.Join(parts, " ")); err != nil {
		return err
	}
	return w.Flush()
}

func (w *Writer) Flush() error {
	if w.bw == nil {
		return errors.Trace(stream.ErrChannelWrite)
	}
	if err := w.bw.Flush(); err != nil {
		return errors.Trace(err)
	}
	if f, ok := w.raw.Output().(stream.Flusher); ok {
		return errors.Trace(f.Flush())
	}
	return nil
}

// Close flushes and releases the encoder. The raw stream and its
// channels stay open.
func (w *Writer) Close() error {
	if w.bw == nil {
		return nil
	}
	err := w.bw.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		if f, ok := w.raw.Output().(stream.Flusher); ok {
			err = f.Flush()
		}
	}
	w.bw, w.enc = nil, nil
	return errors.Trace(err)
}
