package evaluator

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/theory/jsonpath"

	"github.com/jlauro/jsonspan/internal/pathexpr"
	"github.com/jlauro/jsonspan/internal/scanner"
)

// extractCases is the single fixture table driving TestExtract: one
// (mode, path, input, expected) row per behavior.
var extractCases = []struct {
	name    string
	mode    scanner.QuoteMode
	path    string
	input   string
	want    string
	noMatch bool
}{
	{
		name:  "root_is_identity",
		mode:  scanner.Strict,
		path:  "$",
		input: `{"A": 1}`,
		want:  `{"A": 1}`,
	},
	{
		name:  "dotted_member",
		mode:  scanner.Strict,
		path:  "$.A",
		input: `{"A": 1}`,
		want:  `1`,
	},
	{
		name:  "braced_member",
		mode:  scanner.Strict,
		path:  "${A}",
		input: `{"A": 1}`,
		want:  `1`,
	},
	{
		name:  "bracket_quoted_member",
		mode:  scanner.Strict,
		path:  "$['A']",
		input: `{"A": 1}`,
		want:  `1`,
	},
	{
		name:  "member_with_surrounding_whitespace",
		mode:  scanner.Strict,
		path:  "$.A",
		input: "{ \"A\" :\n\t1 }",
		want:  `1`,
	},
	{
		name:  "quoted_path_name_matches_whole_member_name",
		mode:  scanner.Strict,
		path:  "$.'A.B'",
		input: `{"A.B": "'A"}`,
		want:  `"'A"`,
	},
	{
		name:    "dotted_path_does_not_resplit_member_names",
		mode:    scanner.Strict,
		path:    "$.A.B",
		input:   `{"A.B": 1}`,
		noMatch: true,
	},
	{
		name:  "nested_members",
		mode:  scanner.Strict,
		path:  "$.a.b",
		input: `{"a": {"b": 2}}`,
		want:  `2`,
	},
	{
		name:  "first_member_in_document_order_wins",
		mode:  scanner.Strict,
		path:  "$.a",
		input: `{"a": 1, "a": 2}`,
		want:  `1`,
	},
	{
		name:  "object_value_keeps_delimiters_and_whitespace",
		mode:  scanner.Strict,
		path:  "$.a",
		input: `{"x": 0, "a": [1,  2]}`,
		want:  `[1,  2]`,
	},
	{
		name:  "empty_string_value_is_a_match",
		mode:  scanner.Strict,
		path:  "$.a",
		input: `{"a": ""}`,
		want:  `""`,
	},
	{
		name:  "member_name_containing_single_quote",
		mode:  scanner.Strict,
		path:  `$."A'B"`,
		input: `{"A'B": 7}`,
		want:  `7`,
	},
	{
		name:    "absent_member",
		mode:    scanner.Strict,
		path:    "$.missing",
		input:   `{"a": 1}`,
		noMatch: true,
	},
	{
		name:    "member_access_on_array",
		mode:    scanner.Strict,
		path:    "$.a",
		input:   `[1, 2, 3]`,
		noMatch: true,
	},
	{
		name:    "member_access_on_scalar",
		mode:    scanner.Strict,
		path:    "$.a.b",
		input:   `{"a": 1}`,
		noMatch: true,
	},
	{
		name:    "malformed_row",
		mode:    scanner.Strict,
		path:    "$.a",
		input:   `{"a": 1`,
		noMatch: true,
	},
	{
		name:    "trailing_garbage_after_document",
		mode:    scanner.Strict,
		path:    "$",
		input:   `{"a": 1} x`,
		noMatch: true,
	},
	{
		name:  "single_quoted_string_with_embedded_double_quote",
		mode:  scanner.AllowSingleQuotes,
		path:  "$.a",
		input: `{'a': 'A"'}`,
		want:  `'A"'`,
	},
	{
		name:    "single_quotes_rejected_in_strict_mode",
		mode:    scanner.Strict,
		path:    "$.a",
		input:   `{'a': 'A"'}`,
		noMatch: true,
	},
	{
		name:    "dangling_quote_breaks_the_whole_row",
		mode:    scanner.AllowSingleQuotes,
		path:    "$.a",
		input:   `{'a': 'A''}`,
		noMatch: true,
	},
	{
		name:  "single_quoted_member_name",
		mode:  scanner.AllowSingleQuotes,
		path:  "$.a",
		input: `{'a': 1}`,
		want:  `1`,
	},
	{
		name:  "null_value_is_a_match",
		mode:  scanner.Strict,
		path:  "$.a",
		input: `{"a": null}`,
		want:  `null`,
	},
}

func TestExtract(t *testing.T) {
	t.Parallel()

	for _, tt := range extractCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			steps, err := pathexpr.Compile(tt.path)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.path, err)
			}

			got, ok := Extract(steps, tt.input, tt.mode)
			if tt.noMatch {
				if ok {
					t.Fatalf("Extract(%q, %q) = %q, want no match", tt.path, tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("Extract(%q, %q) found no match, want %q", tt.path, tt.input, tt.want)
			}
			if got != tt.want {
				t.Errorf("Extract(%q, %q) = %q, want %q", tt.path, tt.input, got, tt.want)
			}
		})
	}
}

// Re-running the same compiled query over the same row must always
// produce the same result; evaluation carries no hidden state.
func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	steps, err := pathexpr.Compile("$.a.b")
	if err != nil {
		t.Fatal(err)
	}
	input := `{"a": {"b": [1, {"c": "d"}]}}`

	first, okFirst := Extract(steps, input, scanner.Strict)
	for range 10 {
		got, ok := Extract(steps, input, scanner.Strict)
		if ok != okFirst || got != first {
			t.Fatalf("Extract() = %q, %t, want stable %q, %t", got, ok, first, okFirst)
		}
	}
}

// Strict-mode member lookups must agree with an independent JSONPath
// engine once both results are decoded.
func TestExtractAgreesWithReferenceEngine(t *testing.T) {
	t.Parallel()

	const doc = `{
		"store": {
			"bicycle": {"color": "red", "price": 399},
			"open": true
		},
		"count": 3
	}`

	paths := []string{
		"$.store",
		"$.store.bicycle",
		"$.store.bicycle.color",
		"$.store.open",
		"$.count",
	}

	var decoded any
	if err := json.Unmarshal([]byte(doc), &decoded); err != nil {
		t.Fatal(err)
	}

	for _, expr := range paths {
		steps, err := pathexpr.Compile(expr)
		if err != nil {
			t.Fatalf("Compile(%q) error = %v", expr, err)
		}
		raw, ok := Extract(steps, doc, scanner.Strict)
		if !ok {
			t.Fatalf("Extract(%q) found no match", expr)
		}
		var got any
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("Extract(%q) produced invalid JSON %q: %v", expr, raw, err)
		}

		ref, err := jsonpath.Parse(expr)
		if err != nil {
			t.Fatalf("reference engine rejected %q: %v", expr, err)
		}
		refResults := ref.Select(decoded)
		if len(refResults) != 1 {
			t.Fatalf("reference engine returned %d results for %q, want 1", len(refResults), expr)
		}
		if !reflect.DeepEqual(got, refResults[0]) {
			t.Errorf("Extract(%q) = %v, reference engine = %v", expr, got, refResults[0])
		}
	}
}

func TestStripSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode scanner.QuoteMode
		text string
		want string
	}{
		{
			name: "between_tokens",
			mode: scanner.Strict,
			text: "{ \"a\" :\n\t[1,  2] }",
			want: `{"a":[1,2]}`,
		},
		{
			name: "string_content_untouched",
			mode: scanner.Strict,
			text: `{"a": " x  y "}`,
			want: `{"a":" x  y "}`,
		},
		{
			name: "single_quoted_content_untouched_in_permissive_mode",
			mode: scanner.AllowSingleQuotes,
			text: `{'a': ' x '}`,
			want: `{'a':' x '}`,
		},
		{
			name: "scalar_unchanged",
			mode: scanner.Strict,
			text: `1`,
			want: `1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripSpace(tt.text, tt.mode); got != tt.want {
				t.Errorf("StripSpace(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
