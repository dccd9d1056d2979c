// Package runner drives one extraction run: it validates the path,
// reads each input file into a column, applies the extraction, writes
// the output rows, and reports a summary.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jlauro/jsonspan"
	"github.com/jlauro/jsonspan/internal/config"
	"github.com/jlauro/jsonspan/internal/input"
	"github.com/jlauro/jsonspan/internal/ratelimit"
	"github.com/jlauro/jsonspan/internal/results"
)

// progressPerSecond caps progress lines written to stderr; files that
// finish faster are folded into the summary silently.
const progressPerSecond = 4

type Runner struct {
	cfg       *config.Config
	output    io.Writer // overrides cfg.Output when set
	errOutput io.Writer
	progress  *ratelimit.Limiter
}

func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg:       cfg,
		errOutput: os.Stderr,
		progress:  ratelimit.New(progressPerSecond),
	}
}

// SetOutput redirects extracted rows, primarily for tests.
func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

// SetErrorOutput redirects progress and summary output.
func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) logf(format string, args ...any) {
	if r.cfg.Quiet {
		return
	}
	_, _ = fmt.Fprintf(r.errOutput, format, args...)
}

// Run executes the configured extraction and returns the process exit
// code. A malformed path fails the run before any input is read; a
// failing input file is reported and the remaining files still run.
func (r *Runner) Run(ctx context.Context) int {
	if err := jsonspan.ValidPath(r.cfg.Path); err != nil {
		fmt.Fprintf(r.errOutput, "jsonspan: %v\n", err)
		return 1
	}

	out, cleanup, err := r.openOutput()
	if err != nil {
		fmt.Fprintf(r.errOutput, "jsonspan: %v\n", err)
		return 1
	}
	defer cleanup()

	opts := jsonspan.Options{
		AllowSingleQuotes: r.cfg.AllowSingleQuotes,
		StripWhitespace:   r.cfg.StripWhitespace,
		Workers:           r.cfg.Workers,
	}

	summary := results.NewSummary(len(r.cfg.Inputs))
	w := bufio.NewWriter(out)
	for _, filename := range r.cfg.Inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(r.errOutput, "jsonspan: cancelled\n")
			return 1
		}
		result := r.processFile(ctx, filename, w, opts)
		summary.Add(result)
		if result.Err == nil && r.progress.Allow() {
			r.logf("%s: %d row(s), %d matched\n", filename, result.Rows, result.Matched)
		}
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(r.errOutput, "jsonspan: write output: %v\n", err)
		return 1
	}

	r.logf("%s", summary.Format())
	if summary.Failed() {
		return 1
	}
	return 0
}

// processFile extracts one input file and writes its output rows: the
// matched text for valid cells, the literal `null` for invalid ones.
func (r *Runner) processFile(ctx context.Context, filename string, w io.Writer, opts jsonspan.Options) results.FileResult {
	start := time.Now()

	col, err := input.ReadFile(filename)
	if err != nil {
		return results.FileResult{Filename: filename, Err: err}
	}

	extracted, err := jsonspan.Extract(ctx, col, r.cfg.Path, opts)
	if err != nil {
		return results.FileResult{Filename: filename, Err: err}
	}

	result := results.FileResult{Filename: filename, Rows: extracted.Len()}
	for i := range extracted.Values {
		if extracted.Valid[i] {
			result.Matched++
			fmt.Fprintln(w, extracted.Values[i])
		} else {
			result.Nulls++
			fmt.Fprintln(w, "null")
		}
	}
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) openOutput() (io.Writer, func(), error) {
	if r.output != nil {
		return r.output, func() {}, nil
	}
	if r.cfg.Output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(r.cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
