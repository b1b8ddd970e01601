package text

import (
	"go.uber.org/multierr"

	"github.com/CodisLabs/iostream/pkg/iolib/stream"
)

// ReadWriter reads and writes the same raw stream, as opened in update
// mode.
type ReadWriter struct {
	*Reader
	*Writer
}

var (
	_ stream.Stream       = (*ReadWriter)(nil)
	_ stream.LineIterator = (*ReadWriter)(nil)
)

func NewReadWriter(raw *stream.Raw, opts Options) (*ReadWriter, error) {
	r, err := NewReader(raw, opts)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(raw, opts)
	if err != nil {
		return nil, err
	}
	return &ReadWriter{r, w}, nil
}

func (rw *ReadWriter) Raw() *stream.Raw {
	return rw.Reader.Raw()
}

func (rw *ReadWriter) Flush() error {
	return rw.Writer.Flush()
}

func (rw *ReadWriter) Close() error {
	return multierr.Append(rw.Writer.Close(), rw.Reader.Close())
}
