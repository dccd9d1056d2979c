// Package jobfile parses YAML job files describing an extraction run:
// the path expression, quoting and output options, and the input
// files to process.
package jobfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// ErrJobFile is the sentinel error for all job file failures, checked
// with errors.Is().
var ErrJobFile = errors.New("invalid job file")

// Job describes one extraction run.
//
//	path: $.store.bicycle
//	allow_single_quotes: true
//	strip_whitespace: false
//	workers: 4
//	inputs:
//	  - logs/**/*.jsonl.xz
//	output: out.jsonl
type Job struct {
	Path              string   `yaml:"path"`
	AllowSingleQuotes bool     `yaml:"allow_single_quotes,omitempty"`
	StripWhitespace   bool     `yaml:"strip_whitespace,omitempty"`
	Workers           int      `yaml:"workers,omitempty"`
	Inputs            []string `yaml:"inputs"`
	Output            string   `yaml:"output,omitempty"`
}

// Parse decodes and validates a job read from r.
func Parse(r io.Reader) (*Job, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobFile, err)
	}

	var job Job
	if err := yaml.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobFile, err)
	}
	if job.Path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrJobFile)
	}
	if len(job.Inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one input is required", ErrJobFile)
	}
	if job.Workers < 0 {
		return nil, fmt.Errorf("%w: workers cannot be negative", ErrJobFile)
	}
	return &job, nil
}

// Load reads and parses a job file from disk.
func Load(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobFile, err)
	}
	defer f.Close()
	return Parse(f)
}
