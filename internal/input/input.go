// Package input reads line-delimited JSON files into columns. Each
// line is one row; a blank line or the bare word `null` is a null row.
// Files ending in .xz are decompressed transparently.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jlauro/jsonspan"
)

// maxLineSize bounds a single row's text. Rows are whole JSON
// documents, so the default bufio limit is far too small.
const maxLineSize = 64 * 1024 * 1024

// ReadFile reads one input file into a column, decompressing .xz
// files on the fly.
func ReadFile(path string) (jsonspan.Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return jsonspan.Column{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			return jsonspan.Column{}, fmt.Errorf("open xz input %s: %w", path, err)
		}
		r = xr
	}
	return Read(r)
}

// Read reads rows from r until EOF, one document per line.
func Read(r io.Reader) (jsonspan.Column, error) {
	col := jsonspan.Column{
		Values: []string{},
		Valid:  []bool{},
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := sc.Text()
		if trimmed := strings.TrimSpace(line); trimmed == "" || trimmed == "null" {
			col.Values = append(col.Values, "")
			col.Valid = append(col.Valid, false)
			continue
		}
		col.Values = append(col.Values, line)
		col.Valid = append(col.Valid, true)
	}
	if err := sc.Err(); err != nil {
		return jsonspan.Column{}, fmt.Errorf("read input: %w", err)
	}
	return col, nil
}
