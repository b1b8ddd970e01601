// Package stream layers a read/write/seek contract over raw byte channels.
//
// A Raw stream owns one input and one output channel, either may be
// absent. ByteBuffer is a Raw stream over an in-memory pipe. Text and
// in-memory string streams live in the text and strbuf packages and
// share the Stream and LineIterator interfaces defined here.
package stream

import (
	"io"

	"github.com/CodisLabs/codis/pkg/utils/errors"
)

var (
	ErrChannelRead     = errors.New("stream: input channel is missing or closed")
	ErrInvalidArgument = errors.New("stream: argument must be byte-serializable")
	ErrNotSeekable     = errors.New("stream: channel is not seekable")
)

// InputChannel is the readable end a Raw stream is built on.
type InputChannel interface {
	io.ReadCloser
	// Buffered reports how many bytes can be read without blocking.
	// io.EOF means nothing more will ever arrive.
	Buffered() (int, error)
}

// OutputChannel is the writable end a Raw stream is built on. If it also
// implements Flusher, Flush is forwarded to it.
type OutputChannel interface {
	io.WriteCloser
}

type Flusher interface {
	Flush() error
}

// Stream is the surface shared by every stream variant.
type Stream interface {
	Flush() error
	Close() error
}

// LineIterator is implemented by streams that can be read line by line.
//
// ReadLine returns the next line with its terminator and "" once the
// input is exhausted. Next returns the line without the terminator and
// io.EOF once the input is exhausted. ForEach calls fn for every line
// until the input is exhausted or fn fails.
type LineIterator interface {
	ReadLine() (string, error)
	Next() (string, error)
	ForEach(fn func(line string) error) error
}

// ForEach drives next until io.EOF, which is not reported as an error.
func ForEach(next func() (string, error), fn func(line string) error) error {
	for {
		line, err := next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := fn(line); err != nil {
			return err
		}
	}
}
