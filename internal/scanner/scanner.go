// Package scanner provides a forward-only lexical scanner over a single
// JSON text. It locates value boundaries as byte spans into the
// original text and never materializes a document tree, which keeps
// per-row extraction allocation-free.
//
// The scanner supports two quoting modes. Strict follows RFC-style
// JSON, where strings are delimited by double quotes only. In
// AllowSingleQuotes a string may open with either quote character; the
// opening character is then the only terminator and the opposite
// character is ordinary string content, so `'A"'` is the three-byte
// string `A"`.
package scanner

import (
	"strings"

	"github.com/jlauro/jsonspan/internal/stack"
)

// QuoteMode controls how string literals are delimited. It is fixed
// for the lifetime of a Scanner.
type QuoteMode uint8

const (
	// Strict accepts only double-quoted strings.
	Strict QuoteMode = iota
	// AllowSingleQuotes additionally accepts single-quoted strings.
	AllowSingleQuotes
)

// Kind tags the lexical class of a scanned value.
type Kind uint8

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindLiteral // true, false, or null
)

// Span is a half-open byte range [Start, End) into the scanned text,
// covering exactly one complete JSON value or member name.
type Span struct {
	Start int
	End   int
}

// Value is a scanned JSON value: its lexical class and textual extent.
type Value struct {
	Kind Kind
	Span Span
}

// Member is one scanned object member. Name covers the name's content
// with its delimiting quotes already stripped; Value is the member's
// value.
type Member struct {
	Name  Span
	Value Value
}

// Scanner reads one row's JSON text. It borrows the text for the
// duration of the row's evaluation and holds no other state, so any
// number of scanners may run concurrently over different rows.
type Scanner struct {
	text string
	mode QuoteMode
}

func New(text string, mode QuoteMode) *Scanner {
	return &Scanner{text: text, mode: mode}
}

// Text returns the substring covered by a span.
func (s *Scanner) Text(span Span) string {
	return s.text[span.Start:span.End]
}

// At returns the byte at offset o, reporting false past the end.
func (s *Scanner) At(o int) (byte, bool) {
	if o >= len(s.text) {
		return 0, false
	}
	return s.text[o], true
}

// SkipSpace advances o past insignificant whitespace between tokens.
func (s *Scanner) SkipSpace(o int) int {
	for o < len(s.text) {
		switch s.text[o] {
		case ' ', '\t', '\n', '\r':
			o++
		default:
			return o
		}
	}
	return o
}

// Document scans the single top-level value and rejects any
// non-whitespace bytes after it. Trailing garbage makes the whole row
// malformed rather than being silently ignored.
func (s *Scanner) Document() (Value, bool) {
	value, ok := s.ScanValue(0)
	if !ok {
		return Value{}, false
	}
	if s.SkipSpace(value.Span.End) != len(s.text) {
		return Value{}, false
	}
	return value, true
}

// ScanValue scans the complete value beginning at the first
// non-whitespace byte at or after offset o. A scan that runs off the
// end of the text before the value's required terminator reports
// false; there are no partial spans.
func (s *Scanner) ScanValue(o int) (Value, bool) {
	o = s.SkipSpace(o)
	if o >= len(s.text) {
		return Value{}, false
	}
	switch c := s.text[o]; {
	case c == '{' || c == '[':
		return s.scanContainer(o)
	case c == '"' || c == '\'':
		end, ok := s.scanString(o)
		if !ok {
			return Value{}, false
		}
		return Value{Kind: KindString, Span: Span{Start: o, End: end}}, true
	case c == 't' || c == 'f' || c == 'n':
		end, ok := s.scanLiteral(o)
		if !ok {
			return Value{}, false
		}
		return Value{Kind: KindLiteral, Span: Span{Start: o, End: end}}, true
	case c == '-' || (c >= '0' && c <= '9'):
		end, ok := s.scanNumber(o)
		if !ok {
			return Value{}, false
		}
		return Value{Kind: KindNumber, Span: Span{Start: o, End: end}}, true
	default:
		return Value{}, false
	}
}

// ScanMember scans one `"name": value` pair starting inside an object
// body at offset o. It returns the member and the offset just past its
// value, where the enclosing object's ',' or '}' is expected next.
func (s *Scanner) ScanMember(o int) (Member, int, bool) {
	o = s.SkipSpace(o)
	if o >= len(s.text) {
		return Member{}, 0, false
	}
	nameEnd, ok := s.scanString(o)
	if !ok {
		return Member{}, 0, false
	}
	name := Span{Start: o + 1, End: nameEnd - 1}

	o = s.SkipSpace(nameEnd)
	if b, ok := s.At(o); !ok || b != ':' {
		return Member{}, 0, false
	}
	value, ok := s.ScanValue(o + 1)
	if !ok {
		return Member{}, 0, false
	}
	return Member{Name: name, Value: value}, value.Span.End, true
}

// frameState tracks what the grammar expects next inside one container.
type frameState uint8

const (
	stateFirstMember frameState = iota // member name or '}'
	stateMemberName                    // member name required
	stateColon
	stateMemberValue
	stateMemberNext   // ',' or '}'
	stateFirstElement // element value or ']'
	stateElement      // element value required
	stateElementNext  // ',' or ']'
)

type frame struct {
	kind  Kind
	state frameState
}

// scanContainer scans a complete object or array starting at the
// opening brace/bracket, walking nested containers with an explicit
// frame stack instead of recursion. The whole container must close
// cleanly: a dangling quote or an unterminated child anywhere inside
// fails the scan.
func (s *Scanner) scanContainer(start int) (Value, bool) {
	frames := stack.NewWithCapacity[frame](8)
	root := frame{kind: KindObject, state: stateFirstMember}
	if s.text[start] == '[' {
		root = frame{kind: KindArray, state: stateFirstElement}
	}
	frames.Push(root)

	o := start + 1
	for !frames.IsEmpty() {
		o = s.SkipSpace(o)
		if o >= len(s.text) {
			return Value{}, false
		}
		c := s.text[o]
		top := frames.PeekRef()

		switch top.state {
		case stateFirstMember, stateMemberName:
			if c == '}' && top.state == stateFirstMember {
				frames.Pop()
				o++
				continue
			}
			end, ok := s.scanString(o)
			if !ok {
				return Value{}, false
			}
			o = end
			top.state = stateColon

		case stateColon:
			if c != ':' {
				return Value{}, false
			}
			o++
			top.state = stateMemberValue

		case stateMemberValue, stateFirstElement, stateElement:
			if c == ']' && top.state == stateFirstElement {
				frames.Pop()
				o++
				continue
			}
			if top.state == stateMemberValue {
				top.state = stateMemberNext
			} else {
				top.state = stateElementNext
			}
			switch c {
			case '{':
				frames.Push(frame{kind: KindObject, state: stateFirstMember})
				o++
			case '[':
				frames.Push(frame{kind: KindArray, state: stateFirstElement})
				o++
			default:
				end, ok := s.scanScalar(o)
				if !ok {
					return Value{}, false
				}
				o = end
			}

		case stateMemberNext:
			switch c {
			case ',':
				top.state = stateMemberName
				o++
			case '}':
				frames.Pop()
				o++
			default:
				return Value{}, false
			}

		case stateElementNext:
			switch c {
			case ',':
				top.state = stateElement
				o++
			case ']':
				frames.Pop()
				o++
			default:
				return Value{}, false
			}
		}
	}

	return Value{Kind: root.kind, Span: Span{Start: start, End: o}}, true
}

func (s *Scanner) scanScalar(o int) (int, bool) {
	switch c := s.text[o]; {
	case c == '"' || c == '\'':
		return s.scanString(o)
	case c == 't' || c == 'f' || c == 'n':
		return s.scanLiteral(o)
	case c == '-' || (c >= '0' && c <= '9'):
		return s.scanNumber(o)
	default:
		return 0, false
	}
}

// scanString scans a string literal starting at its opening quote and
// returns the offset just past the closing quote. The byte at o must
// be a quote character valid for the scanner's mode; the string then
// extends to the next unescaped occurrence of that same character.
func (s *Scanner) scanString(o int) (int, bool) {
	delim := s.text[o]
	if delim != '"' && (delim != '\'' || s.mode != AllowSingleQuotes) {
		return 0, false
	}
	i := o + 1
	for i < len(s.text) {
		switch s.text[i] {
		case '\\':
			i += 2
		case delim:
			return i + 1, true
		default:
			i++
		}
	}
	return 0, false
}

func (s *Scanner) scanLiteral(o int) (int, bool) {
	for _, word := range []string{"true", "false", "null"} {
		if strings.HasPrefix(s.text[o:], word) {
			return o + len(word), true
		}
	}
	return 0, false
}

// scanNumber accepts a superset of the JSON number grammar; dubious
// shapes are caught by the enclosing container grammar or by the
// caller's trailing-byte check.
func (s *Scanner) scanNumber(o int) (int, bool) {
	i := o
	if s.text[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s.text) {
		c := s.text[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			if digits == 0 {
				return 0, false
			}
			return i, true
		}
		i++
	}
	if digits == 0 {
		return 0, false
	}
	return i, true
}
