// Package codec maps charset names to text encodings.
package codec

import (
	"io"
	"strings"
	"sync"

	"github.com/CodisLabs/codis/pkg/utils/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Default is the charset used when none is given.
const Default = "UTF-8"

var ErrUnknownCharset = errors.New("unknown charset")

var registry struct {
	sync.RWMutex
	m map[string]encoding.Encoding
}

func key(charset string) string {
	return strings.ToLower(strings.TrimSpace(charset))
}

// Register makes enc available under charset, taking precedence over
// the IANA and WHATWG names.
func Register(charset string, enc encoding.Encoding) {
	registry.Lock()
	defer registry.Unlock()
	if registry.m == nil {
		registry.m = make(map[string]encoding.Encoding)
	}
	registry.m[key(charset)] = enc
}

// Lookup returns the encoding for charset, an empty name selects Default.
func Lookup(charset string) (encoding.Encoding, error) {
	name := key(charset)
	if name == "" {
		return unicode.UTF8, nil
	}
	registry.RLock()
	enc, ok := registry.m[name]
	registry.RUnlock()
	if ok {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, errors.Trace(ErrUnknownCharset)
}

func Encode(text, charset string) ([]byte, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	b, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return b, nil
}

func Decode(b []byte, charset string) (string, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return "", err
	}
	s, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", errors.Trace(err)
	}
	return string(s), nil
}

// NewDecoder returns a reader that decodes r into UTF-8.
func NewDecoder(r io.Reader, charset string) (io.Reader, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// NewEncoder returns a writer that encodes UTF-8 text into w. Close
// flushes a trailing partial sequence, it does not close w.
func NewEncoder(w io.Writer, charset string) (io.WriteCloser, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}
