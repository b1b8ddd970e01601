package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/errors"
	"github.com/CodisLabs/codis/pkg/utils/log"

	docopt "github.com/docopt/docopt-go"
)

const (
	DefaultBufferSize = int(bytesize.KB * 128)
	MaxBufferSize     = int(bytesize.MB * 64)
)

type Flags struct {
	Source, Target string

	From, To string

	BufferSize int

	Offset struct {
		Valid bool
		Value int64
	}
	Lines bool

	TmpFile string
}

// Binary reports whether bytes can be copied without decoding.
func (f *Flags) Binary() bool {
	return !f.Lines && f.From == f.To
}

var ErrSpoolText = errors.New("--tmpfile spools raw bytes, it can't be combined with --lines or a charset change")

func (f *Flags) validate() error {
	if f.TmpFile != "" && !f.Binary() {
		return errors.Trace(ErrSpoolText)
	}
	return nil
}

func parseFlags(usage string) *Flags {
	var flags = parseFlagsFromArgs(usage, os.Args[1:])
	if err := flags.validate(); err != nil {
		log.PanicErrorf(err, "invalid arguments")
	}
	return flags
}

func parseFlagsFromArgs(usage string, args []string) *Flags {
	d, err := docopt.Parse(usage, args, true, "", false)
	if err != nil {
		log.PanicErrorf(err, "parse arguments failed")
	}
	if v, ok := d["--version"].(bool); ok && v {
		fmt.Println("version:", Version)
		fmt.Println("compile:", Compile)
		os.Exit(0)
	}

	if s, ok := d["--ncpu"].(string); ok && s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			log.PanicErrorf(err, "parse --ncpu=%q failed", s)
		}
		if n <= 0 || n > 1024 {
			log.Panicf("parse --ncpu=%q failed, invalid", s)
		}
		runtime.GOMAXPROCS(n)
	}

	var flags Flags
	for _, key := range []string{"INPUT", "--input"} {
		if s, ok := d[key].(string); ok && s != "" {
			flags.Source = s
		}
	}
	if s, ok := d["--output"].(string); ok && s != "" {
		flags.Target = s
	}

	if s, ok := d["--from"].(string); ok {
		flags.From = s
	}
	if s, ok := d["--to"].(string); ok && s != "" {
		flags.To = s
	} else {
		flags.To = flags.From
	}

	if s, ok := d["--buffer"].(string); ok && s != "" {
		n, err := bytesize.Parse(s)
		if err != nil {
			log.PanicErrorf(err, "parse --buffer=%q failed", s)
		}
		if n <= 0 || n > int64(MaxBufferSize) {
			log.Panicf("parse --buffer=%q failed, out of range", s)
		}
		flags.BufferSize = int(n)
	} else {
		flags.BufferSize = DefaultBufferSize
	}

	if s, ok := d["--offset"].(string); ok && s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			log.PanicErrorf(err, "parse --offset=%q failed", s)
		}
		flags.Offset.Valid, flags.Offset.Value = true, n
	}

	if v, ok := d["--lines"].(bool); ok {
		flags.Lines = v
	}
	if s, ok := d["--tmpfile"].(string); ok {
		flags.TmpFile = s
	}
	return &flags
}
