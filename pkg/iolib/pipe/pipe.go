package pipe

import (
	"io"
	"sync"

	"github.com/CodisLabs/codis/pkg/utils/errors"
)

// Mode decides what an end does when it cannot make progress.
type Mode int

const (
	// Wait blocks readers on an empty store and writers on a full one
	// until the other end catches up or closes.
	Wait Mode = iota
	// Drain never blocks. Reading an empty store returns io.EOF while the
	// writer is still open, so a single goroutine can write bytes and read
	// them back. Writing to a full store stops with io.ErrShortWrite.
	Drain
)

// link is the shared state behind a Reader and a Writer. Each end is
// meant to be used by one goroutine at a time.
type link struct {
	mu    sync.Mutex
	rcond *sync.Cond
	wcond *sync.Cond

	store Store
	mode  Mode

	// rerr is set once the reader closes, werr once the writer does.
	rerr, werr error
}

func newLink(store Store, mode Mode) *link {
	l := &link{store: store, mode: mode}
	l.rcond = sync.NewCond(&l.mu)
	l.wcond = sync.NewCond(&l.mu)
	return l
}

func (l *link) read(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for {
		if l.rerr != nil {
			return 0, errors.Trace(io.ErrClosedPipe)
		}
		if len(b) == 0 {
			return 0, nil
		}
		n, err := l.store.ReadSome(b)
		if n != 0 || err != nil {
			l.wcond.Signal()
			return n, errors.Trace(err)
		}
		switch {
		case l.werr != nil:
			return 0, l.werr
		case l.mode == Drain:
			return 0, io.EOF
		}
		l.rcond.Wait()
	}
}

func (l *link) buffered() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rerr != nil {
		return 0, l.rerr
	}
	if n := l.store.Buffered(); n != 0 || l.werr == nil {
		return n, nil
	}
	return 0, l.werr
}

func (l *link) write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var nn int
	for nn < len(b) {
		switch {
		case l.werr != nil:
			return nn, errors.Trace(io.ErrClosedPipe)
		case l.rerr != nil:
			return nn, l.rerr
		}
		n, err := l.store.WriteSome(b[nn:])
		if n != 0 {
			nn += n
			l.rcond.Signal()
		}
		if err != nil {
			return nn, errors.Trace(err)
		}
		if n == 0 {
			if l.mode == Drain {
				return nn, errors.Trace(io.ErrShortWrite)
			}
			l.wcond.Wait()
		}
	}
	return nn, nil
}

func (l *link) available() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.werr != nil:
		return 0, errors.Trace(io.ErrClosedPipe)
	case l.rerr != nil:
		return 0, l.rerr
	}
	return l.store.Available(), nil
}

// closeRead releases the store, the writer gets err from then on.
func (l *link) closeRead(err error) error {
	if err == nil {
		err = errors.Trace(io.ErrClosedPipe)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rerr != nil {
		return nil
	}
	l.rerr = err
	l.rcond.Broadcast()
	l.wcond.Broadcast()
	return l.store.Release()
}

// closeWrite lets the reader drain the store and then get err, io.EOF if
// err is nil. io.EOF is kept untraced, the standard library compares it
// by identity.
func (l *link) closeWrite(err error) error {
	if err == nil {
		err = io.EOF
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.werr != nil {
		return nil
	}
	l.werr = err
	l.rcond.Broadcast()
	l.wcond.Broadcast()
	return nil
}
