// Package jsonspan extracts JSONPath-style sub-documents from columns
// of JSON text. A column is an ordered batch of rows with a parallel
// validity flag; the path expression is compiled once per call and the
// compiled query is applied to every valid row independently, yielding
// an output column of the same length.
//
// Path expressions select the document root with `$` and descend
// through object members with `.name`, `{name}`, or `['name']`
// accessors; see the pathexpr package for the grammar. Rows whose JSON
// is malformed or where the path does not resolve produce null output
// cells; they never fail the batch.
package jsonspan

import (
	"context"
	"fmt"
	"sync"

	"github.com/jlauro/jsonspan/internal/evaluator"
	"github.com/jlauro/jsonspan/internal/pathexpr"
	"github.com/jlauro/jsonspan/internal/scanner"
)

// ErrMalformedPath is returned by Extract and ValidPath when the path
// expression itself cannot be compiled. It fails the whole call before
// any row is processed.
var ErrMalformedPath = pathexpr.ErrMalformedPath

// checkEvery is how many rows a worker processes between context
// checks. Cancellation is coarse: an in-flight chunk always finishes.
const checkEvery = 1024

// Column is an ordered batch of text rows with parallel validity
// flags. Valid[i] reports whether Values[i] holds a present value; a
// nil Valid slice means every row is present. An invalid row's value
// text is meaningless and an empty valid string is distinct from an
// invalid row.
type Column struct {
	Values []string
	Valid  []bool
}

// Len returns the number of rows.
func (c Column) Len() int {
	return len(c.Values)
}

// IsValid reports whether row i holds a present value.
func (c Column) IsValid(i int) bool {
	return c.Valid == nil || c.Valid[i]
}

// Options configures one Extract call. The zero value is strict
// RFC-style quoting, verbatim output, and sequential evaluation.
type Options struct {
	// AllowSingleQuotes additionally accepts single-quoted JSON strings
	// in the row text: the opening quote character is the only
	// terminator and the opposite character is ordinary content.
	AllowSingleQuotes bool

	// StripWhitespace removes whitespace between JSON tokens in each
	// output cell, leaving string content untouched. Matching is
	// unaffected.
	StripWhitespace bool

	// Workers sets the number of goroutines partitioning the rows.
	// Values below two evaluate sequentially.
	Workers int
}

func (o Options) quoteMode() scanner.QuoteMode {
	if o.AllowSingleQuotes {
		return scanner.AllowSingleQuotes
	}
	return scanner.Strict
}

// ValidPath reports whether a path expression compiles, without
// evaluating any rows. The error wraps ErrMalformedPath when it does
// not.
func ValidPath(path string) error {
	_, err := pathexpr.Compile(path)
	return err
}

// Extract applies one path expression to every row of a column and
// returns the result column. Row i's output is invalid when the input
// row was invalid, the row's JSON is malformed, or the path does not
// resolve against it; otherwise it is the matched value's text,
// verbatim. A malformed path fails the whole call with no rows
// processed; a malformed row only nulls that row.
//
// The context is observed between row chunks only; no per-row
// operation blocks.
func Extract(ctx context.Context, col Column, path string, opts Options) (Column, error) {
	steps, err := pathexpr.Compile(path)
	if err != nil {
		return Column{}, err
	}
	if col.Valid != nil && len(col.Valid) != len(col.Values) {
		return Column{}, fmt.Errorf("jsonspan: validity length %d does not match %d rows", len(col.Valid), len(col.Values))
	}

	out := Column{
		Values: make([]string, col.Len()),
		Valid:  make([]bool, col.Len()),
	}

	if opts.Workers < 2 || col.Len() < 2 {
		if err := extractRange(ctx, steps, col, opts, out, 0, col.Len()); err != nil {
			return Column{}, err
		}
		return out, nil
	}

	workers := opts.Workers
	if workers > col.Len() {
		workers = col.Len()
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		groupErr error
	)
	chunk := (col.Len() + workers - 1) / workers
	for start := 0; start < col.Len(); start += chunk {
		end := min(start+chunk, col.Len())
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := extractRange(ctx, steps, col, opts, out, start, end); err != nil {
				errOnce.Do(func() { groupErr = err })
			}
		}()
	}
	wg.Wait()

	if groupErr != nil {
		return Column{}, groupErr
	}
	return out, nil
}

// extractRange evaluates rows [start, end). Each row touches only its
// own input text and output cell, so ranges run concurrently without
// locking.
func extractRange(ctx context.Context, steps []pathexpr.Step, col Column, opts Options, out Column, start, end int) error {
	mode := opts.quoteMode()
	for i := start; i < end; i++ {
		if (i-start)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if !col.IsValid(i) {
			continue
		}
		text, ok := evaluator.Extract(steps, col.Values[i], mode)
		if !ok {
			continue
		}
		if opts.StripWhitespace {
			text = evaluator.StripSpace(text, mode)
		}
		out.Values[i] = text
		out.Valid[i] = true
	}
	return nil
}
