// Package config assembles a run configuration from command-line
// flags and an optional YAML job file. Explicit flags win over job
// file settings; input arguments may be doublestar glob patterns.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jlauro/jsonspan/internal/exit"
	"github.com/jlauro/jsonspan/internal/jobfile"
)

var (
	ErrNoPath   = errors.New("no path expression provided")
	ErrNoInputs = errors.New("no input files specified")
)

// Config is the complete configuration for one jsonspan run.
type Config struct {
	Path              string   // path expression to apply
	AllowSingleQuotes bool     // permissive string quoting for row JSON
	StripWhitespace   bool     // strip inter-token whitespace from output cells
	Workers           int      // extraction goroutines (0 = sequential)
	Output            string   // output file, empty for stdout
	Quiet             bool     // suppress progress and summary
	Inputs            []string // input files after glob expansion
}

// Parse builds a Config from os.Args-style arguments. It returns a
// non-nil exit result for bad invocations instead of an error so main
// can terminate with the conventional code.
func Parse(args []string) (*Config, *exit.Result) {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	var usage strings.Builder
	fs.SetOutput(&usage)
	fs.Usage = func() {
		fmt.Fprintf(&usage, "usage: %s [flags] [input files...]\n", args[0])
		fs.PrintDefaults()
	}

	var cfg Config
	fs.StringVar(&cfg.Path, "path", "", "path expression to apply, e.g. $.store.bicycle")
	fs.BoolVar(&cfg.AllowSingleQuotes, "single-quotes", false, "allow single-quoted strings in row JSON")
	fs.BoolVar(&cfg.StripWhitespace, "strip-space", false, "strip whitespace between JSON tokens in output cells")
	fs.IntVar(&cfg.Workers, "workers", 0, "number of extraction goroutines (0 = sequential)")
	fs.StringVar(&cfg.Output, "o", "", "write extracted rows to this file instead of stdout")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress progress and summary output")
	jobPath := fs.String("job", "", "YAML job file describing the run")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(usage.String())
		}
		return nil, exit.Usage(usage.String())
	}

	inputs := fs.Args()

	if *jobPath != "" {
		job, err := jobfile.Load(*jobPath)
		if err != nil {
			return nil, exit.Errorf("jsonspan: %v\n", err)
		}
		applyJob(&cfg, fs, job)
		inputs = append(inputs, job.Inputs...)
	}

	if cfg.Path == "" {
		return nil, exit.Errorf("jsonspan: %v\n", ErrNoPath)
	}

	expanded, err := ExpandInputs(inputs)
	if err != nil {
		return nil, exit.Errorf("jsonspan: %v\n", err)
	}
	if len(expanded) == 0 {
		return nil, exit.Errorf("jsonspan: %v\n", ErrNoInputs)
	}
	cfg.Inputs = expanded

	return &cfg, nil
}

// applyJob fills configuration values from the job file, except those
// the user set explicitly on the command line.
func applyJob(cfg *Config, fs *flag.FlagSet, job *jobfile.Job) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["path"] {
		cfg.Path = job.Path
	}
	if !set["single-quotes"] {
		cfg.AllowSingleQuotes = job.AllowSingleQuotes
	}
	if !set["strip-space"] {
		cfg.StripWhitespace = job.StripWhitespace
	}
	if !set["workers"] {
		cfg.Workers = job.Workers
	}
	if !set["o"] {
		cfg.Output = job.Output
	}
}

// ExpandInputs resolves glob patterns to file paths, keeping literal
// paths as-is. A pattern that matches nothing is an error rather than
// a silently empty run.
func ExpandInputs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input pattern %q matched no files", pattern)
		}
		files = append(files, matches...)
	}
	return files, nil
}
