package stream

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/errors"
	"github.com/CodisLabs/codis/pkg/utils/log"
	"go.uber.org/multierr"

	"github.com/CodisLabs/iostream/pkg/iolib/byteview"
)

var ErrChannelWrite = errors.New("stream: output channel is missing or closed")

const (
	DefaultBufferSize = int(bytesize.KB * 4)
	DefaultReadSize   = 1024
)

// Raw is a binary stream over an input and an output channel. The
// buffered reader and writer on top of the channels are created on first
// use and kept until Close.
type Raw struct {
	input  InputChannel
	output OutputChannel

	br   *bufio.Reader
	bw   *bufio.Writer
	size int

	seekable bool

	n int
}

var (
	_ Stream       = (*Raw)(nil)
	_ LineIterator = (*Raw)(nil)
	_ io.Reader    = (*Raw)(nil)
	_ io.Writer    = (*Raw)(nil)
)

// NewRaw returns a stream over input and output, either may be nil.
func NewRaw(input InputChannel, output OutputChannel) *Raw {
	return NewRawSize(input, output, DefaultBufferSize)
}

func NewRawSize(input InputChannel, output OutputChannel, size int) *Raw {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Raw{input: input, output: output, size: size}
}

// Input returns the input channel, nil once the stream is closed.
func (s *Raw) Input() InputChannel {
	return s.input
}

// Output returns the output channel, nil once the stream is closed.
func (s *Raw) Output() OutputChannel {
	return s.output
}

func (s *Raw) reader() (*bufio.Reader, error) {
	if s.input == nil {
		return nil, errors.Trace(ErrChannelRead)
	}
	if s.br == nil {
		s.br = bufio.NewReaderSize(s.input, s.size)
	}
	return s.br, nil
}

func (s *Raw) writer() (*bufio.Writer, error) {
	if s.output == nil {
		return nil, errors.Trace(ErrChannelWrite)
	}
	if s.bw == nil {
		s.bw = bufio.NewWriterSize(s.output, s.size)
	}
	return s.bw, nil
}

func isClosed(err error) bool {
	switch cause := errors.Cause(err); {
	case cause == io.ErrClosedPipe:
		return true
	case cause == os.ErrClosed:
		return true
	}
	if e, ok := errors.Cause(err).(*os.PathError); ok {
		return e.Err == os.ErrClosed
	}
	return false
}

func readError(err error) error {
	if isClosed(err) {
		return errors.Trace(ErrChannelRead)
	}
	return errors.Trace(err)
}

func writeError(err error) error {
	if isClosed(err) {
		return errors.Trace(ErrChannelWrite)
	}
	return errors.Trace(err)
}

// Available returns the number of bytes that can be read without
// blocking.
func (s *Raw) Available() (int, error) {
	br, err := s.reader()
	if err != nil {
		return 0, err
	}
	n, err := s.input.Buffered()
	if err != nil {
		if errors.Cause(err) != io.EOF {
			return 0, readError(err)
		}
		n = 0
	}
	return br.Buffered() + n, nil
}

// Read implements io.Reader on top of the buffered reader.
func (s *Raw) Read(p []byte) (int, error) {
	br, err := s.reader()
	if err != nil {
		return 0, err
	}
	n, err := br.Read(p)
	if err != nil && err != io.EOF {
		return n, readError(err)
	}
	return n, err
}

// ReadAvailable returns every byte that can be read without blocking.
func (s *Raw) ReadAvailable() (byteview.ByteView, error) {
	n, err := s.Available()
	if err != nil {
		return byteview.ByteView{}, err
	}
	var b = make([]byte, n)
	if _, err := io.ReadFull(s.br, b); err != nil {
		return byteview.ByteView{}, readError(err)
	}
	return byteview.New(b), nil
}

// ReadN returns up to n bytes, DefaultReadSize if n <= 0. It waits for
// the first byte, then takes whatever is available up to n. An exhausted
// input returns an empty view and io.EOF.
func (s *Raw) ReadN(n int) (byteview.ByteView, error) {
	if n <= 0 {
		n = DefaultReadSize
	}
	br, err := s.reader()
	if err != nil {
		return byteview.ByteView{}, err
	}
	var b = make([]byte, n)
	nn, err := br.Read(b)
	if nn == 0 && err != nil {
		if err == io.EOF {
			return byteview.ByteView{}, io.EOF
		}
		return byteview.ByteView{}, readError(err)
	}
	for nn < n {
		avail, err := s.Available()
		if err != nil {
			return byteview.ByteView{}, err
		}
		if avail == 0 {
			break
		}
		if avail > n-nn {
			avail = n - nn
		}
		m, err := io.ReadFull(br, b[nn:nn+avail])
		nn += m
		if err != nil {
			return byteview.ByteView{}, readError(err)
		}
	}
	return byteview.New(b[:nn]), nil
}

// Write implements io.Writer on top of the buffered writer.
func (s *Raw) Write(p []byte) (int, error) {
	bw, err := s.writer()
	if err != nil {
		return 0, err
	}
	n, err := bw.Write(p)
	s.n = n
	if err != nil {
		return n, writeError(err)
	}
	return n, nil
}

func (s *Raw) WriteString(str string) (int, error) {
	bw, err := s.writer()
	if err != nil {
		return 0, err
	}
	n, err := bw.WriteString(str)
	s.n = n
	if err != nil {
		return n, writeError(err)
	}
	return n, nil
}

// WriteValue serializes v with charset and writes the bytes.
func (s *Raw) WriteValue(v byteview.Serializer, charset string) error {
	if v == nil {
		return errors.Trace(ErrInvalidArgument)
	}
	view, err := v.ByteView(charset)
	if err != nil {
		return err
	}
	bw, err := s.writer()
	if err != nil {
		return err
	}
	if _, err := view.WriteTo(bw); err != nil {
		return writeError(err)
	}
	s.n = view.Len()
	return nil
}

// LastWriteLen returns the length of the most recent write.
func (s *Raw) LastWriteLen() int {
	return s.n
}

// Copy moves every available input byte into the buffered writer of dst.
func (s *Raw) Copy(dst *Raw) error {
	if dst == nil {
		return errors.Trace(ErrInvalidArgument)
	}
	n, err := s.Available()
	if err != nil {
		return err
	}
	bw, err := dst.writer()
	if err != nil {
		return err
	}
	nn, err := io.CopyN(bw, s.br, int64(n))
	dst.n = int(nn)
	if err != nil {
		return errors.Trace(err)
	}
	return nil
}

// Flush pushes buffered output to the channel. A stream without an
// output channel has nothing to flush.
func (s *Raw) Flush() error {
	if s.output == nil {
		return nil
	}
	if s.bw != nil {
		if err := s.bw.Flush(); err != nil {
			return writeError(err)
		}
	}
	if f, ok := s.output.(Flusher); ok {
		return errors.Trace(f.Flush())
	}
	return nil
}

// Close releases the reader, the input, the writer and the output in that
// order. Every step is attempted even if an earlier one failed.
func (s *Raw) Close() error {
	var errs error
	var step = func(name string, err error) {
		if err != nil {
			log.WarnErrorf(err, "stream: close %s failed", name)
			errs = multierr.Append(errs, err)
		}
	}
	s.br = nil
	if s.input != nil {
		step("input", s.input.Close())
		s.input = nil
	}
	if s.bw != nil {
		step("writer", s.bw.Flush())
		s.bw = nil
	}
	if s.output != nil {
		step("output", s.output.Close())
		s.output = nil
	}
	return errs
}

func (s *Raw) IsTerminal() bool {
	return false
}

func (s *Raw) ensureSeekable() error {
	if s.seekable {
		return nil
	}
	var check = func(ch interface{}) error {
		sk, ok := ch.(io.Seeker)
		if !ok {
			return errors.Trace(ErrNotSeekable)
		}
		if _, err := sk.Seek(0, io.SeekCurrent); err != nil {
			log.Debugf("stream: seek check failed: %s", err)
			return errors.Trace(ErrNotSeekable)
		}
		return nil
	}
	if s.input != nil {
		if err := check(s.input); err != nil {
			return err
		}
	}
	if s.output != nil {
		if err := check(s.output); err != nil {
			return err
		}
	}
	s.seekable = true
	return nil
}

// Seek moves each direction present in both the stream and c.
func (s *Raw) Seek(c Cookie) error {
	if err := s.ensureSeekable(); err != nil {
		return err
	}
	if s.input != nil && c.Input.Valid {
		offset, whence := c.Input.whence()
		if _, err := s.input.(io.Seeker).Seek(offset, whence); err != nil {
			return errors.Trace(err)
		}
		if s.br != nil {
			s.br.Reset(s.input)
		}
	}
	if s.output != nil && c.Output.Valid {
		if s.bw != nil {
			if err := s.bw.Flush(); err != nil {
				return writeError(err)
			}
		}
		offset, whence := c.Output.whence()
		if _, err := s.output.(io.Seeker).Seek(offset, whence); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Tell returns the logical position of each direction, bytes held by the
// buffered reader are not counted as consumed.
func (s *Raw) Tell() (Cookie, error) {
	var c Cookie
	if err := s.ensureSeekable(); err != nil {
		return c, err
	}
	if s.input != nil {
		pos, err := s.input.(io.Seeker).Seek(0, io.SeekCurrent)
		if err != nil {
			return c, errors.Trace(err)
		}
		if s.br != nil {
			pos -= int64(s.br.Buffered())
		}
		c.Input = Position{Offset: pos, Valid: true}
	}
	if s.output != nil {
		if s.bw != nil {
			if err := s.bw.Flush(); err != nil {
				return c, writeError(err)
			}
		}
		pos, err := s.output.(io.Seeker).Seek(0, io.SeekCurrent)
		if err != nil {
			return c, errors.Trace(err)
		}
		c.Output = Position{Offset: pos, Valid: true}
	}
	return c, nil
}

// NextLine reads a line from r and strips its terminator. A final line
// without terminator is returned once, then io.EOF.
func NextLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		if line == "" {
			return "", io.EOF
		}
		return line, nil
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// ReadLine reads a line from r and returns it with a "\n" terminator,
// or "" once r is exhausted.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := NextLine(r)
	if err != nil {
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return line + "\n", nil
}

func (s *Raw) ReadLine() (string, error) {
	br, err := s.reader()
	if err != nil {
		return "", err
	}
	line, err := ReadLine(br)
	if err != nil {
		return "", readError(err)
	}
	return line, nil
}

func (s *Raw) Next() (string, error) {
	br, err := s.reader()
	if err != nil {
		return "", err
	}
	line, err := NextLine(br)
	if err != nil && err != io.EOF {
		return "", readError(err)
	}
	return line, err
}

func (s *Raw) ForEach(fn func(line string) error) error {
	return ForEach(s.Next, fn)
}
