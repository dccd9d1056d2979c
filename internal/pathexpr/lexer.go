package pathexpr

import (
	"fmt"
	"strings"
)

type tokenKind uint8

func (k tokenKind) describe() string {
	switch k {
	case tokenRoot:
		return "'$'"
	case tokenDot:
		return "'.'"
	case tokenBracketOpen:
		return "'['"
	case tokenBracketClose:
		return "']'"
	case tokenBraceOpen:
		return "'{'"
	case tokenBraceClose:
		return "'}'"
	default:
		return "name"
	}
}

const (
	tokenRoot tokenKind = iota
	tokenDot
	tokenBracketOpen
	tokenBracketClose
	tokenBraceOpen
	tokenBraceClose
	tokenIdent
)

type quoteChar uint8

const (
	quoteNone quoteChar = iota
	quoteSingle
	quoteDouble
)

// token is one lexical element of a path expression.
type token struct {
	kind  tokenKind
	text  string    // identifier text with delimiting quotes stripped
	quote quoteChar // which quote delimited the identifier, if any
}

// identTerminators are the bytes that end a bare identifier. A quoted
// identifier ends only at its matching quote character.
const identTerminators = ".{[}]"

// lex scans a path expression into tokens. The expression must start
// with the root marker '$'; everything after it is a sequence of dot
// and bracket/brace accessors.
func lex(expr string) ([]token, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrMalformedPath)
	}
	if expr[0] != '$' {
		return nil, fmt.Errorf("%w: expression must start with '$'", ErrMalformedPath)
	}

	tokens := []token{{kind: tokenRoot}}
	i := 1
	for i < len(expr) {
		switch expr[i] {
		case '.':
			tokens = append(tokens, token{kind: tokenDot})
			i++
		case '{':
			tokens = append(tokens, token{kind: tokenBraceOpen})
			i++
		case '}':
			tokens = append(tokens, token{kind: tokenBraceClose})
			i++
		case '[':
			tokens = append(tokens, token{kind: tokenBracketOpen})
			i++
		case ']':
			tokens = append(tokens, token{kind: tokenBracketClose})
			i++
		default:
			if !identPosition(tokens) {
				return nil, fmt.Errorf("%w: unexpected character %q at position %d", ErrMalformedPath, expr[i], i)
			}
			tok, next, err := lexIdent(expr, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		}
	}
	return tokens, nil
}

// identPosition reports whether an identifier may start here, which is
// only directly after a dot or an opening bracket/brace.
func identPosition(tokens []token) bool {
	switch tokens[len(tokens)-1].kind {
	case tokenDot, tokenBraceOpen, tokenBracketOpen:
		return true
	default:
		return false
	}
}

// lexIdent scans one identifier starting at i and returns the token and
// the index just past it. A quoted identifier runs to the next
// occurrence of the same quote character; the opposite quote character
// is ordinary content. A bare identifier runs to the next accessor
// delimiter or the end of the expression.
func lexIdent(expr string, i int) (token, int, error) {
	if c := expr[i]; c == '\'' || c == '"' {
		start := i + 1
		end := strings.IndexByte(expr[start:], c)
		if end < 0 {
			return token{}, i, fmt.Errorf("%w: unterminated %c-quoted name at position %d", ErrMalformedPath, c, i)
		}
		q := quoteSingle
		if c == '"' {
			q = quoteDouble
		}
		return token{kind: tokenIdent, text: expr[start : start+end], quote: q}, start + end + 1, nil
	}

	end := i
	for end < len(expr) && strings.IndexByte(identTerminators, expr[end]) < 0 {
		end++
	}
	return token{kind: tokenIdent, text: expr[i:end]}, end, nil
}
