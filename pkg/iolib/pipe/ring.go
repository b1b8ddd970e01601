package pipe

// ring tracks the cursors of a circular store holding size bytes. The
// cursors only move forward, offsets into the store are taken modulo size.
type ring struct {
	size int

	head uint64
	tail uint64
}

func (r *ring) used() int {
	return int(r.tail - r.head)
}

func (r *ring) room() int {
	return r.size - r.used()
}

// readable returns the offset and length of the longest contiguous run of
// at most n stored bytes.
func (r *ring) readable(n int) (offset, length int) {
	offset = int(r.head % uint64(r.size))
	return offset, min(n, r.used(), r.size-offset)
}

// writable returns the offset and length of the longest contiguous free
// run of at most n bytes.
func (r *ring) writable(n int) (offset, length int) {
	offset = int(r.tail % uint64(r.size))
	return offset, min(n, r.room(), r.size-offset)
}

// consume marks n bytes as read. Once the ring is empty both cursors are
// rewound, and consume reports true.
func (r *ring) consume(n int) bool {
	r.head += uint64(n)
	if r.head != r.tail {
		return false
	}
	r.head, r.tail = 0, 0
	return true
}

func (r *ring) produce(n int) {
	r.tail += uint64(n)
}

func roundUp(n, unit int) int {
	if n <= unit {
		return unit
	}
	return (n + unit - 1) / unit * unit
}
