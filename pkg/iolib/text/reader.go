package text

import (
	"bufio"
	"io"
	"strings"

	"github.com/CodisLabs/codis/pkg/utils/errors"

	"github.com/CodisLabs/iostream/pkg/iolib/codec"
	"github.com/CodisLabs/iostream/pkg/iolib/stream"
)

// Reader decodes the input channel of a raw stream. It reads the channel
// directly, bytes already pulled into the raw stream's own buffer are not
// seen by it.
type Reader struct {
	raw     *stream.Raw
	charset string

	br *bufio.Reader
}

var (
	_ stream.Stream       = (*Reader)(nil)
	_ stream.LineIterator = (*Reader)(nil)
)

func NewReader(raw *stream.Raw, opts Options) (*Reader, error) {
	if raw == nil || raw.Input() == nil {
		return nil, errors.Trace(stream.ErrChannelRead)
	}
	dec, err := codec.NewDecoder(raw.Input(), opts.Charset)
	if err != nil {
		return nil, err
	}
	charset := opts.Charset
	if charset == "" {
		charset = codec.Default
	}
	return &Reader{
		raw: raw, charset: charset,
		br: bufio.NewReaderSize(dec, opts.bufferSize()),
	}, nil
}

func (r *Reader) Raw() *stream.Raw {
	return r.raw
}

// Charset returns the charset the input is decoded from.
func (r *Reader) Charset() string {
	return r.charset
}

func (r *Reader) reader() (*bufio.Reader, error) {
	if r.br == nil {
		return nil, errors.Trace(stream.ErrChannelRead)
	}
	return r.br, nil
}

// ReadLine returns the next line with its terminator, a final line
// without one gets "\n" appended. It returns "" once the input is
// exhausted.
func (r *Reader) ReadLine() (string, error) {
	br, err := r.reader()
	if err != nil {
		return "", err
	}
	line, err := stream.ReadLine(br)
	return line, errors.Trace(err)
}

// Next returns the next line without its terminator, or io.EOF.
func (r *Reader) Next() (string, error) {
	br, err := r.reader()
	if err != nil {
		return "", err
	}
	line, err := stream.NextLine(br)
	if err != nil && err != io.EOF {
		return "", errors.Trace(err)
	}
	return line, err
}

func (r *Reader) ForEach(fn func(line string) error) error {
	return stream.ForEach(r.Next, fn)
}

// ReadLines returns every remaining line, each ending with "\n".
func (r *Reader) ReadLines() ([]string, error) {
	var lines []string
	err := r.ForEach(func(line string) error {
		lines = append(lines, line+"\n")
		return nil
	})
	return lines, err
}

// Read returns the remaining text, decoded ChunkSize bytes at a time.
func (r *Reader) Read() (string, error) {
	br, err := r.reader()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var chunk = make([]byte, ChunkSize)
	for {
		n, err := br.Read(chunk)
		sb.Write(chunk[:n])
		if err != nil {
			if err == io.EOF {
				return sb.String(), nil
			}
			return sb.String(), errors.Trace(err)
		}
	}
}

func (r *Reader) Flush() error {
	return nil
}

// Close releases the decoder. The raw stream and its channels stay open.
func (r *Reader) Close() error {
	r.br = nil
	return nil
}
