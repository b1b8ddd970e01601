// Copyright 2014 Wandoujia Inc. All Rights Reserved.
// Licensed under the MIT (MIT-LICENSE.txt) license.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/CodisLabs/codis/pkg/utils/log"

	"github.com/CodisLabs/iostream/pkg/iolib/channel"
)

func openInput(name string) (*channel.File, int64) {
	if name == "" || name == "/dev/stdin" {
		return channel.Stdin(), 0
	}
	f, err := channel.OpenRead(name)
	if err != nil {
		log.PanicErrorf(err, "can't open file %q", name)
	}
	s, err := f.Stat()
	if err != nil {
		log.PanicErrorf(err, "can't stat file %q", name)
	}
	return f, s.Size()
}

func openOutput(name string) *channel.File {
	if name == "" || name == "/dev/stdout" {
		return channel.Stdout()
	}
	f, err := channel.OpenWrite(name)
	if err != nil {
		log.PanicErrorf(err, "can't open file %q", name)
	}
	return f
}

func openTmpFile(name string) *os.File {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0666)
	if err != nil {
		log.PanicErrorf(err, "can't open file %q", name)
	}
	return f
}

func formatAlign(align int, format string, args ...interface{}) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, format, args...)
	for b.Len()%align != 0 {
		b.WriteByte(' ')
	}
	return b.String()
}
