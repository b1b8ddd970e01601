package main

import (
	"io"

	"github.com/CodisLabs/codis/pkg/utils/errors"
	"github.com/CodisLabs/codis/pkg/utils/sync2/atomic2"

	"github.com/CodisLabs/iostream/pkg/iolib/stream"
)

// CountInput counts the bytes read from an input channel. Seek is
// forwarded when the channel supports it.
type CountInput struct {
	stream.InputChannel
	N *atomic2.Int64
}

func (r *CountInput) Read(b []byte) (int, error) {
	n, err := r.InputChannel.Read(b)
	r.N.Add(int64(n))
	return n, err
}

func (r *CountInput) Seek(offset int64, whence int) (int64, error) {
	if s, ok := r.InputChannel.(io.Seeker); ok {
		return s.Seek(offset, whence)
	}
	return 0, errors.Trace(stream.ErrNotSeekable)
}

// CountOutput counts the bytes written to an output channel. Seek and
// Flush are forwarded when the channel supports them.
type CountOutput struct {
	stream.OutputChannel
	N *atomic2.Int64
}

func (w *CountOutput) Write(b []byte) (int, error) {
	n, err := w.OutputChannel.Write(b)
	w.N.Add(int64(n))
	return n, err
}

func (w *CountOutput) Seek(offset int64, whence int) (int64, error) {
	if s, ok := w.OutputChannel.(io.Seeker); ok {
		return s.Seek(offset, whence)
	}
	return 0, errors.Trace(stream.ErrNotSeekable)
}

func (w *CountOutput) Flush() error {
	if f, ok := w.OutputChannel.(stream.Flusher); ok {
		return f.Flush()
	}
	return nil
}
