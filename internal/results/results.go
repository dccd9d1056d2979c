// Package results accumulates per-file extraction outcomes into a run
// summary.
package results

import (
	"time"

	"github.com/google/uuid"
)

// FileResult records the outcome of extracting one input file.
type FileResult struct {
	Filename string
	Rows     int // rows read from the file
	Matched  int // rows with a valid output cell
	Nulls    int // rows with a null output cell
	Duration time.Duration
	Err      error // read or extraction failure for the whole file
}

// Summary aggregates the results of one run across all input files.
// RunID uniquely identifies the run in logs and reports.
type Summary struct {
	RunID         string
	FileResults   []FileResult
	Rows          int
	Matched       int
	Nulls         int
	FailedFiles   int
	TotalDuration time.Duration
}

func NewSummary(expectedFiles int) *Summary {
	return &Summary{
		RunID:       uuid.NewString(),
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

// Add folds one file's result into the summary totals.
func (s *Summary) Add(result FileResult) {
	s.FileResults = append(s.FileResults, result)
	s.Rows += result.Rows
	s.Matched += result.Matched
	s.Nulls += result.Nulls
	s.TotalDuration += result.Duration
	if result.Err != nil {
		s.FailedFiles++
	}
}

// Failed reports whether any file failed outright.
func (s *Summary) Failed() bool {
	return s.FailedFiles > 0
}
