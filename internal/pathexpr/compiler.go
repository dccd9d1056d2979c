// Package pathexpr compiles restricted JSONPath-style expressions into
// ordered step lists. The grammar covers the root marker `$`, dotted
// member access `.name`, and bracketed member access in both `{name}`
// and `['name']` spellings; names may be bare, single-quoted, or
// double-quoted. A quoted name selects the member whose name equals the
// quoted text as a whole, so `$.'a.b'` addresses one member named
// `a.b`, never `a` then `b`.
package pathexpr

import "fmt"

// StepKind discriminates the compiled step variants.
type StepKind uint8

const (
	// StepRoot selects the document's single top-level value.
	StepRoot StepKind = iota
	// StepMember selects the named member of the current object.
	StepMember
)

// Step is one operation of a compiled query. A valid query is a
// non-empty sequence beginning with a StepRoot step, followed by zero
// or more StepMember steps. Steps are immutable once compiled and safe
// to share across concurrent evaluations.
type Step struct {
	Kind StepKind
	Name string // member name, quotes already stripped
}

// Compile parses a path expression into its step list. It fails with an
// error wrapping ErrMalformedPath when the expression is empty, does
// not start with '$', contains an unterminated quoted name, a dangling
// accessor, or an unclosed bracket/brace.
func Compile(expr string) ([]Step, error) {
	tokens, err := lex(expr)
	if err != nil {
		return nil, err
	}

	steps := []Step{{Kind: StepRoot}}
	i := 1 // tokens[0] is the root marker
	for i < len(tokens) {
		switch tokens[i].kind {
		case tokenDot:
			if i+1 >= len(tokens) || tokens[i+1].kind != tokenIdent {
				return nil, fmt.Errorf("%w: '.' accessor missing a member name", ErrMalformedPath)
			}
			steps = append(steps, Step{Kind: StepMember, Name: tokens[i+1].text})
			i += 2
		case tokenBraceOpen, tokenBracketOpen:
			step, next, err := compileBracket(tokens, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
			i = next
		default:
			return nil, fmt.Errorf("%w: accessor expected, got stray %s", ErrMalformedPath, tokens[i].kind.describe())
		}
	}
	return steps, nil
}

// compileBracket consumes one bracketed accessor: an opening brace or
// bracket, a member name, and the matching closer.
func compileBracket(tokens []token, i int) (Step, int, error) {
	open := tokens[i].kind
	if i+1 >= len(tokens) || tokens[i+1].kind != tokenIdent {
		return Step{}, i, fmt.Errorf("%w: bracketed accessor missing a member name", ErrMalformedPath)
	}
	closer := tokenBraceClose
	if open == tokenBracketOpen {
		closer = tokenBracketClose
	}
	if i+2 >= len(tokens) || tokens[i+2].kind != closer {
		return Step{}, i, fmt.Errorf("%w: unclosed bracketed accessor", ErrMalformedPath)
	}
	return Step{Kind: StepMember, Name: tokens[i+1].text}, i + 3, nil
}
