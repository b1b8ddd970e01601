// Copyright 2016 CodisLabs. All Rights Reserved.
// Licensed under the MIT (MIT-LICENSE.txt) license.

package main

import (
	"github.com/CodisLabs/codis/pkg/utils/log"
)

func main() {
	const usage = `
Usage:
	iocat [--ncpu=N] [--input=INPUT|INPUT] [--output=OUTPUT] [--from=CHARSET] [--to=CHARSET] [--buffer=SIZE] [--offset=OFFSET] [--lines] [--tmpfile=FILE]
	iocat  --version

Options:
	-n N, --ncpu=N                    Set runtime.GOMAXPROCS to N.
	-i INPUT, --input=INPUT           Set input file, default is '/dev/stdin'.
	-o OUTPUT, --output=OUTPUT        Set output file, default is '/dev/stdout'.
	-f CHARSET, --from=CHARSET        Set charset of the input, default is UTF-8.
	-t CHARSET, --to=CHARSET          Set charset of the output, default is the input charset.
	-b SIZE, --buffer=SIZE            Set buffer size, default is 128kb.
	--offset=OFFSET                   Start reading at OFFSET, negative counts from the end.
	--lines                           Copy line by line, rewriting line endings to '\n'.
	--tmpfile=FILE                    Spool bytes through FILE.

Examples:
	$ iocat -i latin1.txt -o utf8.txt --from=ISO-8859-1 --to=UTF-8
	$ iocat --offset=-1024 app.log
	$ cat dump.txt | iocat --lines > normalized.txt
`
	var flags = parseFlags(usage)

	log.Infof("iocat: input = %q, output = %q, from = %q, to = %q\n",
		flags.Source, flags.Target, flags.From, flags.To)

	new(cmdCat).Main(flags)
}
