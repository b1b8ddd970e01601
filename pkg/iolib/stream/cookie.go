package stream

import (
	"fmt"
	"io"
)

// Position is one direction of a Cookie. Offsets below zero count from
// the end of the channel.
type Position struct {
	Offset int64
	Valid  bool
}

func (p Position) whence() (int64, int) {
	if p.Offset < 0 {
		return p.Offset, io.SeekEnd
	}
	return p.Offset, io.SeekStart
}

func (p Position) String() string {
	if !p.Valid {
		return "null"
	}
	return fmt.Sprintf("%d", p.Offset)
}

// Cookie describes the position of both directions of a stream, as
// returned by Tell and accepted by Seek.
type Cookie struct {
	Input  Position
	Output Position
}

// At returns a cookie that moves both directions to offset.
func At(offset int64) Cookie {
	var p = Position{Offset: offset, Valid: true}
	return Cookie{Input: p, Output: p}
}

func (c Cookie) String() string {
	return fmt.Sprintf("{input: %s, output: %s}", c.Input, c.Output)
}
