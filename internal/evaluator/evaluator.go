// Package evaluator applies a compiled path query to one row's JSON
// text, producing the matched sub-document's text or reporting that
// the row has no match. Evaluation is a pure function of its inputs:
// the compiled query is shared read-only across rows and each call
// owns nothing beyond its own scan cursor.
package evaluator

import (
	"github.com/jlauro/jsonspan/internal/pathexpr"
	"github.com/jlauro/jsonspan/internal/scanner"
)

// Extract applies a compiled query to one row and returns the matched
// text exactly as it appears in the input, delimiters and interior
// whitespace included. It reports false when the path does not resolve
// or the row's JSON is malformed; there is no partial-path fallback.
// An empty string result can be a legitimate match (for example an
// empty JSON string's ""), so presence is reported separately.
func Extract(steps []pathexpr.Step, text string, mode scanner.QuoteMode) (string, bool) {
	sc := scanner.New(text, mode)
	span, ok := lookup(steps, sc)
	if !ok {
		return "", false
	}
	return sc.Text(span), true
}

// lookup walks the query steps. The root step scans and validates the
// single top-level value; each member step scans the current object's
// members in document order and descends into the first whose name
// matches. Member names are compared byte-for-byte after quote
// stripping; the emitted value itself is never quote-stripped.
func lookup(steps []pathexpr.Step, sc *scanner.Scanner) (scanner.Span, bool) {
	if len(steps) == 0 || steps[0].Kind != pathexpr.StepRoot {
		return scanner.Span{}, false
	}

	current, ok := sc.Document()
	if !ok {
		return scanner.Span{}, false
	}

	for _, step := range steps[1:] {
		if current.Kind != scanner.KindObject {
			return scanner.Span{}, false
		}
		current, ok = findMember(sc, current, step.Name)
		if !ok {
			return scanner.Span{}, false
		}
	}
	return current.Span, true
}

// findMember scans an object's members left to right and returns the
// value of the first member named name.
func findMember(sc *scanner.Scanner, obj scanner.Value, name string) (scanner.Value, bool) {
	o := sc.SkipSpace(obj.Span.Start + 1)
	if b, ok := sc.At(o); !ok || b == '}' {
		return scanner.Value{}, false
	}

	for {
		member, next, ok := sc.ScanMember(o)
		if !ok {
			return scanner.Value{}, false
		}
		if sc.Text(member.Name) == name {
			return member.Value, true
		}

		o = sc.SkipSpace(next)
		b, ok := sc.At(o)
		if !ok || b != ',' {
			// '}' here means the object ended without a match; anything
			// else is a malformed separator. Both are a non-match.
			return scanner.Value{}, false
		}
		o++
	}
}
