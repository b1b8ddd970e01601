package pipe

// Store holds the bytes in flight between the two ends of a pipe. Calls
// are serialized by the pipe.
type Store interface {
	// ReadSome moves stored bytes into b, 0 when the store is empty.
	ReadSome(b []byte) (int, error)
	// WriteSome stores as much of b as fits, 0 when the store is full.
	WriteSome(b []byte) (int, error)

	Buffered() int
	Available() int

	// Release drops whatever is stored. Later reads and writes fail with
	// io.ErrClosedPipe.
	Release() error
}
