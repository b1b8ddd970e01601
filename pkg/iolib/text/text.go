// Package text decodes and encodes the channels of a raw stream with a
// charset, and reads them line by line.
package text

import (
	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/errors"

	"github.com/CodisLabs/iostream/pkg/iolib/stream"
)

var ErrInvalidMode = errors.New("text: stream must be opened for read, write, or append")

const (
	DefaultBufferSize = int(bytesize.KB * 8)
	ChunkSize         = 4096
)

type Options struct {
	// Charset of the underlying bytes, codec.Default if empty.
	Charset string
	// LineBuffered writers flush every write that contains a newline.
	LineBuffered bool
	BufferSize   int
}

func (o Options) bufferSize() int {
	if o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

// Mode selects which side of a raw stream Open wraps.
type Mode struct {
	Read, Write, Append, Update bool
}

// ParseMode parses fopen style modes such as "r", "w", "a", "r+" or
// "rb". The binary flag is accepted and ignored.
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, c := range s {
		switch c {
		case 'r':
			m.Read = true
		case 'w':
			m.Write = true
		case 'a':
			m.Append = true
		case '+':
			m.Update = true
		case 'b', 't':
		default:
			return Mode{}, errors.Trace(ErrInvalidMode)
		}
	}
	if m == (Mode{}) {
		return Mode{}, errors.Trace(ErrInvalidMode)
	}
	return m, nil
}

// Open wraps raw according to mode: a ReadWriter for update, a Writer for
// write or append, a Reader for read.
func Open(raw *stream.Raw, mode Mode, opts Options) (stream.Stream, error) {
	var s stream.Stream
	var err error
	switch {
	case mode.Update:
		var rw *ReadWriter
		if rw, err = NewReadWriter(raw, opts); err == nil {
			s = rw
		}
	case mode.Write || mode.Append:
		var w *Writer
		if w, err = NewWriter(raw, opts); err == nil {
			s = w
		}
	case mode.Read:
		var r *Reader
		if r, err = NewReader(raw, opts); err == nil {
			s = r
		}
	default:
		err = errors.Trace(ErrInvalidMode)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
