// Command tabular reads a delimited file, guesses its column types,
// and prints the guessed schema plus any parse warnings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shapestone/shape-tabular/internal/source"
	"github.com/shapestone/shape-tabular/pkg/tabular"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tabular", flag.ContinueOnError)
	var (
		delim    string
		quote    string
		comment  string
		nmax     int
		guessRow int
		skip     int
		header   bool
	)
	fs.StringVar(&delim, "delim", ",", "field delimiter, one byte")
	fs.StringVar(&quote, "quote", "\"", "quote character, one byte")
	fs.StringVar(&comment, "comment", "", "comment-line prefix, empty disables")
	fs.IntVar(&nmax, "n", 0, "max data rows to read, 0 for unlimited")
	fs.IntVar(&guessRow, "guess-rows", 0, "rows to sample for type guessing, 0 for all")
	fs.IntVar(&skip, "skip", 0, "extra header lines to skip before the column header row")
	fs.BoolVar(&header, "header", true, "treat the first non-skipped line as column names")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tabular [flags] <file>")
		return 2
	}

	if len(delim) != 1 || len(quote) != 1 {
		fmt.Fprintln(os.Stderr, "tabular: -delim and -quote must each be exactly one byte")
		return 2
	}

	dialect := tabular.DefaultDialect()
	dialect.Delim = delim[0]
	dialect.Quote = quote[0]
	dialect.Comment = comment
	dialect.Skip = skip

	src, closeFn, err := source.OpenFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabular: %v\n", err)
		return 1
	}
	defer closeFn()

	ctx := context.Background()

	var colNames []string
	if header {
		lines, err := tabular.ReadLines(ctx, src, dialect.Skip+1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tabular: %v\n", err)
			return 1
		}
		if len(lines) < dialect.Skip+1 {
			fmt.Fprintln(os.Stderr, "tabular: file has no header row")
			return 1
		}
		colNames = splitHeader(lines[dialect.Skip], dialect)
		dialect.Skip++
	}

	types, err := tabular.GuessTypes(ctx, src, dialect, guessRow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabular: %v\n", err)
		return 1
	}

	specs := make([]tabular.ColumnSpec, len(types))
	for i, t := range types {
		specs[i] = tabular.ColumnSpec{Type: t}
	}

	opts := tabular.DefaultOptions()
	opts.NMax = nmax

	result, err := tabular.ReadTokens(ctx, src, dialect, specs, colNames, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabular: %v\n", err)
		return 1
	}

	fmt.Printf("session %s: %d rows, %d columns\n", result.SessionID, result.Rows, len(specs))
	for i, t := range types {
		fmt.Printf("  column %d (%s): %s\n", i, result.ColumnNames[i], t)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "%d warning(s):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  %s\n", w)
		}
	}
	return 0
}

// splitHeader breaks a header line into column names on dialect's
// delimiter, trimming surrounding whitespace and a matching pair of
// quote characters from each name. It does not handle an embedded
// delimiter or newline inside a quoted header field; real field
// quoting is the tokenizer's job, not the header line's.
func splitHeader(line string, dialect tabular.Dialect) []string {
	fields := strings.Split(line, string(dialect.Delim))
	names := make([]string, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && f[0] == dialect.Quote && f[len(f)-1] == dialect.Quote {
			f = f[1 : len(f)-1]
		}
		names[i] = f
	}
	return names
}
