// Command fsadict looks words up in a compressed dictionary file.
//
// Usage:
//
//	fsadict -dict pl.dict -encoding ISO8859-2 -coder PREFIX zapytanie ...
//	fsadict -dict pl.dict -dump
//	fsadict -dict pl.dict -stats
//
// Words are taken from the command line, or from stdin (one per line)
// when none are given. Each result row is printed as
// word<TAB>stem<TAB>tag.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/az-ai-labs/fsadict/dict"
	"github.com/az-ai-labs/fsadict/fsa"
)

func main() {
	var (
		dictPath  = flag.String("dict", "", "path to the automaton dictionary file (required)")
		encName   = flag.String("encoding", "", "IANA name of the dictionary byte encoding (default: UTF-8)")
		separator = flag.String("separator", "+", "entry separator character")
		coderName = flag.String("coder", "SUFFIX", "stem coder: NONE, SUFFIX, PREFIX or INFIX")
		dump      = flag.Bool("dump", false, "print every dictionary entry and exit")
		stats     = flag.Bool("stats", false, "print automaton statistics and exit")
	)
	flag.Parse()

	if *dictPath == "" {
		fmt.Fprintln(os.Stderr, "fsadict: -dict is required")
		flag.Usage()
		os.Exit(2)
	}
	if len(*separator) != 1 {
		fmt.Fprintf(os.Stderr, "fsadict: separator must be a single byte, got %q\n", *separator)
		os.Exit(2)
	}

	coder, err := dict.ParseEncoderType(*coderName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fsadict: %v\n", err)
		os.Exit(2)
	}

	var enc encoding.Encoding
	if *encName != "" {
		enc, err = ianaindex.IANA.Encoding(*encName)
		if err != nil || enc == nil {
			fmt.Fprintf(os.Stderr, "fsadict: unknown encoding %q\n", *encName)
			os.Exit(2)
		}
	}

	d, err := dict.LoadFile(*dictPath, dict.Metadata{
		Separator: (*separator)[0],
		Encoding:  enc,
		Encoder:   coder,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fsadict: %v\n", err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch {
	case *stats:
		info := fsa.Stat(d.FSA)
		fmt.Fprintf(out, "nodes\t%d\narcs\t%d\nfinal arcs\t%d\nsequences\t%d\n",
			info.Nodes, info.Arcs, info.FinalArcs, info.Sequences)
	case *dump:
		it := dict.NewIterator(d)
		for row, ok := it.Next(); ok; row, ok = it.Next() {
			fmt.Fprintf(out, "%s\t%s\t%s\n", row.Word(), row.Stem(), row.Tag())
		}
	default:
		lookup := dict.NewLookup(d)
		if words := flag.Args(); len(words) > 0 {
			for _, w := range words {
				printRows(out, lookup, w)
			}
			return
		}
		in := bufio.NewScanner(os.Stdin)
		for in.Scan() {
			printRows(out, lookup, in.Text())
		}
		if err := in.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "fsadict: reading stdin: %v\n", err)
			os.Exit(1)
		}
	}
}

func printRows(out *bufio.Writer, lookup *dict.Lookup, word string) {
	rows := lookup.Lookup(word)
	if len(rows) == 0 {
		fmt.Fprintf(out, "%s\t-\t-\n", word)
		return
	}
	for i := range rows {
		fmt.Fprintf(out, "%s\t%s\t%s\n", rows[i].Word(), rows[i].Stem(), rows[i].Tag())
	}
}
