package tabular

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shapestone/shape-tabular/internal/collector"
	"github.com/shapestone/shape-tabular/internal/diag"
	"github.com/shapestone/shape-tabular/internal/guess"
	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/source"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/tokenizer"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// progressPollCells is how many cells the driver consumes between
// progress/cancellation polls.
const progressPollCells = 250000

// minGrowthStep is the smallest row-count increase a single resize
// performs, even when the bytes-consumed fraction used to re-estimate
// the total row count would otherwise call for a smaller one.
const minGrowthStep = 1024

const initialCapacity = 1024

// ReadFile returns a Source's bytes verbatim — an identity byte-range
// copy, never tokenized. It exists so a caller can treat "read the raw
// file" and "read tokens from it" as two calls against the same
// Source/ctx shape.
func ReadFile(ctx context.Context, src *source.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", diag.ErrSource, err)
	}
	out := make([]byte, len(src.Data))
	copy(out, src.Data)
	return out, nil
}

// ReadLines splits src into physical lines, stripping trailing \r\n,
// up to nMax lines (0 means unlimited). It never interprets quoting.
func ReadLines(ctx context.Context, src *source.Source, nMax int) ([]string, error) {
	lt := tokenizer.NewLine(src)
	var lines []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", diag.ErrSource, err)
		}
		tok := lt.Next()
		if tok.Kind == token.KindEOF {
			break
		}
		lines = append(lines, tok.String())
		if nMax > 0 && len(lines) >= nMax {
			break
		}
	}
	return lines, nil
}

// GuessTypes classifies the first n rows of src (0 means all rows)
// without requiring a pre-declared column count: the column count is
// discovered from the widest row seen, matching the original's
// on-demand guess-collector growth.
func GuessTypes(ctx context.Context, src *source.Source, dialect Dialect, n int) ([]string, error) {
	if err := dialect.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", diag.ErrColumnCountMismatch, err)
	}
	tok, err := tokenizer.New(src, dialect.toTokenizer(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", diag.ErrSource, err)
	}

	var columns [][]string
	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", diag.ErrSource, err)
		}
		t := tok.Next()
		if t.Kind == token.KindEOF {
			break
		}
		if t.Col == 0 {
			row++
			if n > 0 && row > n {
				break
			}
		}
		for t.Col >= len(columns) {
			columns = append(columns, nil)
		}
		switch t.Kind {
		case token.KindMissing, token.KindEmpty:
			columns[t.Col] = append(columns[t.Col], "")
		default:
			columns[t.Col] = append(columns[t.Col], t.String())
		}
	}

	types := make([]string, len(columns))
	for i, col := range columns {
		types[i] = guess.Column(col, dialect.NA)
	}
	return types, nil
}

// ReadTokens tokenizes src under dialect and drives one collector per
// entry in specs, reconciling colNames against either the collector
// count (including skipped columns) or the post-skip output column
// count, per the original's read_tokens contract. A count matching
// neither is a spec error (diag.ErrColumnCountMismatch); every other
// parse failure is recorded as a warning in the returned Result rather
// than aborting the read.
func ReadTokens(ctx context.Context, src *source.Source, dialect Dialect, specs []ColumnSpec, colNames []string, opts Options) (*Result, error) {
	if err := dialect.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", diag.ErrColumnCountMismatch, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", diag.ErrColumnCountMismatch, err)
	}

	names, err := reconcileNames(specs, colNames)
	if err != nil {
		return nil, err
	}

	warn := warnings.New()
	loc := opts.locale()

	cols := make([]collector.Collector, len(specs))
	for i, spec := range specs {
		c, err := buildCollector(spec, warn, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", diag.ErrBadFormatDirective, err)
		}
		cols[i] = c
	}

	tok, err := tokenizer.New(src, dialect.toTokenizer(), warn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", diag.ErrSource, err)
	}

	capacity := 0
	grow := func(need int) {
		if need <= capacity {
			return
		}
		estimate := need
		consumed, total := tok.Progress()
		if consumed > 0 && total > 0 {
			if scaled := int(float64(need) * float64(total) / float64(consumed) * 1.2); scaled > estimate {
				estimate = scaled
			}
		}
		if estimate < capacity+minGrowthStep {
			estimate = capacity + minGrowthStep
		}
		for _, c := range cols {
			c.Resize(estimate)
		}
		capacity = estimate
	}
	grow(initialCapacity)

	stream := &peekSource{tok: tok}
	row := 0
	cellsSincePoll := 0

	for {
		first := stream.peek()
		if first.Kind == token.KindEOF {
			break
		}
		if opts.NMax > 0 && row >= opts.NMax {
			break
		}
		grow(row + 1)

		startRow := first.Row
		for col := 0; col < len(cols); col++ {
			t := stream.peek()
			if t.Kind == token.KindEOF || t.Row != startRow {
				warn.Add(startRow, col, "column count", "row has fewer fields than declared")
				for ; col < len(cols); col++ {
					cols[col].SetValue(row, token.Token{Kind: token.KindMissing, Row: startRow, Col: col})
				}
				break
			}
			cols[col].SetValue(row, stream.next())

			cellsSincePoll++
			if cellsSincePoll >= progressPollCells {
				if opts.Progress != nil {
					c, tot := tok.Progress()
					opts.Progress(c, tot)
				}
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("%w: %v", diag.ErrSource, err)
				}
				cellsSincePoll = 0
			}
		}

		for {
			t := stream.peek()
			if t.Kind == token.KindEOF || t.Row != startRow {
				break
			}
			warn.Add(startRow, len(cols), "column count", "row has more fields than declared")
			stream.next()
		}
		row++
	}

	for _, c := range cols {
		c.Resize(row)
	}

	result := &Result{
		SessionID: uuid.New(),
		Rows:      row,
		Warnings:  warn.Drain(),
	}
	for i, spec := range specs {
		if spec.Type == TypeSkip {
			continue
		}
		result.Columns = append(result.Columns, cols[i].Finalize())
		result.ColumnNames = append(result.ColumnNames, names[i])
	}
	return result, nil
}

// reconcileNames accepts either one name per spec (including skipped
// ones) or one name per output (post-skip) column, returning the name
// assigned to each spec index (skipped specs get an empty string). A
// nil colNames generates positional "V1", "V2", ... names for each
// output column, matching a headerless read.
func reconcileNames(specs []ColumnSpec, colNames []string) ([]string, error) {
	names := make([]string, len(specs))

	if colNames == nil {
		n := 1
		for i, s := range specs {
			if s.Type == TypeSkip {
				continue
			}
			names[i] = fmt.Sprintf("V%d", n)
			n++
		}
		return names, nil
	}

	if len(colNames) == len(specs) {
		copy(names, colNames)
		return names, nil
	}

	outputCount := 0
	for _, s := range specs {
		if s.Type != TypeSkip {
			outputCount++
		}
	}
	if len(colNames) == outputCount {
		j := 0
		for i, s := range specs {
			if s.Type == TypeSkip {
				continue
			}
			names[i] = colNames[j]
			j++
		}
		return names, nil
	}

	return nil, fmt.Errorf("%w: got %d names for %d columns (%d after skips)",
		diag.ErrColumnCountMismatch, len(colNames), len(specs), outputCount)
}

func buildCollector(spec ColumnSpec, warn *warnings.Buffer, fallback *locale.Info) (collector.Collector, error) {
	loc := spec.Locale
	if loc == nil {
		loc = fallback
	}
	switch spec.Type {
	case TypeLogical:
		return collector.NewLogical(warn), nil
	case TypeInteger:
		return collector.NewInteger(warn), nil
	case TypeDouble:
		return collector.NewDouble(warn, loc.DecimalMark), nil
	case TypeDate:
		return collector.NewDate(warn, loc, spec.Format), nil
	case TypeDateTime:
		return collector.NewDateTime(warn, loc, spec.Format), nil
	case TypeTime:
		return collector.NewTime(warn, loc, spec.Format), nil
	case TypeFactor:
		return collector.NewFactor(warn, spec.Levels), nil
	case TypeSkip:
		return collector.NewSkip(), nil
	case TypeCharacter, "":
		return collector.NewCharacter(warn), nil
	default:
		return nil, fmt.Errorf("unknown column type %q", spec.Type)
	}
}

// peekSource adds a one-token lookahead to a Tokenizer so the driver
// loop can detect a row boundary before consuming the token that
// crosses it.
type peekSource struct {
	tok     *tokenizer.Tokenizer
	pending *token.Token
}

func (s *peekSource) peek() token.Token {
	if s.pending == nil {
		t := s.tok.Next()
		s.pending = &t
	}
	return *s.pending
}

func (s *peekSource) next() token.Token {
	t := s.peek()
	s.pending = nil
	return t
}
