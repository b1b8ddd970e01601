package main

import (
	"io"
	"time"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/log"
	"github.com/CodisLabs/codis/pkg/utils/sync2/atomic2"

	"github.com/CodisLabs/iostream/pkg/iolib/strbuf"
	"github.com/CodisLabs/iostream/pkg/iolib/stream"
	"github.com/CodisLabs/iostream/pkg/iolib/text"
)

type cmdCat struct {
	rbytes, wbytes atomic2.Int64
	lines          atomic2.Int64
}

func (cmd *cmdCat) Main(flags *Flags) {
	file, size := openInput(flags.Source)
	input := stream.NewRawSize(&CountInput{file, &cmd.rbytes}, nil, flags.BufferSize)
	defer func() {
		if err := input.Close(); err != nil {
			log.WarnErrorf(err, "close input failed")
		}
	}()
	if flags.Offset.Valid {
		var c = stream.Cookie{Input: stream.Position{Offset: flags.Offset.Value, Valid: true}}
		if err := input.Seek(c); err != nil {
			log.PanicErrorf(err, "seek input to %d failed", flags.Offset.Value)
		}
		c, err := input.Tell()
		if err != nil {
			log.PanicErrorf(err, "tell input failed")
		}
		log.Infof("iocat: input offset = %s", c)
	}

	output := stream.NewRawSize(nil, &CountOutput{openOutput(flags.Target), &cmd.wbytes}, flags.BufferSize)

	var done = make(chan struct{})
	go cmd.report(size, done)

	switch {
	case flags.TmpFile != "":
		cmd.spool(flags, input, output)
	case flags.Binary():
		cmd.copyBinary(flags, input, output)
	default:
		cmd.copyText(flags, input, output)
	}

	if err := output.Close(); err != nil {
		log.PanicErrorf(err, "close output failed")
	}
	close(done)
	log.Infof("iocat: done, read = %d, write = %d, lines = %d",
		cmd.rbytes.Int64(), cmd.wbytes.Int64(), cmd.lines.Int64())
}

func (cmd *cmdCat) copyBinary(flags *Flags, input, output *stream.Raw) {
	for {
		v, err := input.ReadN(flags.BufferSize)
		if err == io.EOF {
			return
		}
		if err != nil {
			log.PanicErrorf(err, "read input failed")
		}
		if err := output.WriteValue(v, ""); err != nil {
			log.PanicErrorf(err, "write output failed")
		}
	}
}

// spool moves every chunk through a file backed byte buffer before it
// reaches the output.
func (cmd *cmdCat) spool(flags *Flags, input, output *stream.Raw) {
	var file = openTmpFile(flags.TmpFile)
	defer file.Close()

	buf, err := stream.NewByteBufferFile(file, flags.BufferSize, nil)
	if err != nil {
		log.PanicErrorf(err, "create spool buffer failed")
	}
	defer buf.Close()

	for {
		v, err := input.ReadN(flags.BufferSize)
		if err == io.EOF {
			return
		}
		if err != nil {
			log.PanicErrorf(err, "read input failed")
		}
		if err := buf.WriteValue(v, ""); err != nil {
			log.PanicErrorf(err, "write spool failed")
		}
		if err := buf.Flush(); err != nil {
			log.PanicErrorf(err, "flush spool failed")
		}
		if err := buf.Copy(output); err != nil {
			log.PanicErrorf(err, "copy spool failed")
		}
	}
}

func (cmd *cmdCat) copyText(flags *Flags, input, output *stream.Raw) {
	r, err := text.NewReader(input, text.Options{Charset: flags.From, BufferSize: flags.BufferSize})
	if err != nil {
		log.PanicErrorf(err, "open text reader failed")
	}
	defer r.Close()

	w, err := text.NewWriter(output, text.Options{Charset: flags.To, BufferSize: flags.BufferSize})
	if err != nil {
		log.PanicErrorf(err, "open text writer failed")
	}

	if !flags.Lines {
		s, err := r.Read()
		if err != nil {
			log.PanicErrorf(err, "read text failed")
		}
		if _, err := w.WriteString(s); err != nil {
			log.PanicErrorf(err, "write text failed")
		}
	} else {
		var batch = strbuf.New()
		err := r.ForEach(func(line string) error {
			cmd.lines.Incr()
			if err := batch.Print(line); err != nil {
				return err
			}
			if batch.Len() < flags.BufferSize {
				return nil
			}
			return batch.Copy(w)
		})
		if err != nil {
			log.PanicErrorf(err, "copy lines failed")
		}
		if err := batch.Copy(w); err != nil {
			log.PanicErrorf(err, "copy lines failed")
		}
	}
	if err := w.Close(); err != nil {
		log.PanicErrorf(err, "close text writer failed")
	}
}

func (cmd *cmdCat) report(size int64, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-time.After(time.Second):
		}
		var rbytes, wbytes = cmd.rbytes.Int64(), cmd.wbytes.Int64()
		var percent float64
		if size != 0 {
			percent = float64(rbytes) * 100 / float64(size)
		}
		log.Infof("iocat: file = %d - [%6.2f%%]   (r,w,l)=%s  -  (%s,%s)",
			size, percent, formatAlign(4, "(%d,%d,%d)", rbytes, wbytes, cmd.lines.Int64()),
			bytesize.Int64(rbytes).HumanString(), bytesize.Int64(wbytes).HumanString())
	}
}
