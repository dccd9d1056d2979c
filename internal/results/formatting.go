package results

import (
	"fmt"
	"strings"
	"time"
)

// Format renders the summary as a short human-readable report.
func (s *Summary) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s: %d file(s), %d row(s), %d matched, %d null\n",
		s.RunID, len(s.FileResults), s.Rows, s.Matched, s.Nulls)

	for _, r := range s.FileResults {
		if r.Err != nil {
			fmt.Fprintf(&b, "  %s: failed: %v\n", r.Filename, r.Err)
			continue
		}
		fmt.Fprintf(&b, "  %s: %d row(s), %d matched, %d null in %s\n",
			r.Filename, r.Rows, r.Matched, r.Nulls, r.Duration.Round(time.Millisecond))
	}

	if s.FailedFiles > 0 {
		fmt.Fprintf(&b, "%d file(s) failed\n", s.FailedFiles)
	}
	return b.String()
}
