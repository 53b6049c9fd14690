package panel

import (
	"reflect"
	"testing"
)

func TestTokenizeFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Pair
	}{
		{
			"single pair",
			`name="Alice"`,
			[]Pair{{"name", "Alice"}},
		},
		{
			"multiple pairs",
			`name="Alice", hp="10", mood="calm"`,
			[]Pair{{"name", "Alice"}, {"hp", "10"}, {"mood", "calm"}},
		},
		{
			"doubled quote is escaped literal",
			`text="a""b"`,
			[]Pair{{"text", `a"b`}},
		},
		{
			"embedded escaped quotes mid value",
			`f1="v1", f2="value with ""quoted"" text"`,
			[]Pair{{"f1", "v1"}, {"f2", `value with "quoted" text`}},
		},
		{
			"stray quote copied as content",
			`k="abc"def"`,
			[]Pair{{"k", `abc"def`}},
		},
		{
			"unquoted value skipped",
			`a=1, b="2"`,
			[]Pair{{"b", "2"}},
		},
		{
			"duplicate key last write wins",
			`k="first", k="second"`,
			[]Pair{{"k", "second"}},
		},
		{
			"value with comma inside quotes",
			`names="Alice, Bob"`,
			[]Pair{{"names", "Alice, Bob"}},
		},
		{
			"key whitespace trimmed",
			`  spaced  ="v"`,
			[]Pair{{"spaced", "v"}},
		},
		{
			"empty value kept by tokenizer",
			`k=""`,
			[]Pair{{"k", ""}},
		},
		{
			"trailing fragment without equals ignored",
			`k="v", garbage`,
			[]Pair{{"k", "v"}},
		},
		{
			"empty line",
			``,
			nil,
		},
		{
			"no pairs at all",
			`just some words`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeFields(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeFields(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestTokenizeFields_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Pair
	}{
		{"plain", []Pair{{"name", "Alice"}, {"hp", "10"}}},
		{"internal quote", []Pair{{"text", `a"b`}}},
		{"comma in value", []Pair{{"names", "Alice, Bob"}}},
		{"empty value", []Pair{{"k", ""}}},
		{"many quotes", []Pair{{"q", `""""`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := FormatFields(tt.pairs)
			got := TokenizeFields(line)
			if !reflect.DeepEqual(got, tt.pairs) {
				t.Errorf("round trip through %q = %v, want %v", line, got, tt.pairs)
			}
		})
	}
}

func TestTokenizeFields_UnescapeIdempotent(t *testing.T) {
	// "a""b" tokenizes to a"b; tokenizing the already-unescaped value
	// re-quoted without doubling must not strip further.
	got := TokenizeFields(`k="a""b"`)
	if len(got) != 1 || got[0].Value != `a"b` {
		t.Fatalf("first apply = %v, want [{k a\"b}]", got)
	}
	again := TokenizeFields(FormatFields(got))
	if !reflect.DeepEqual(again, got) {
		t.Errorf("second apply = %v, want %v", again, got)
	}
}

func TestFormatFields(t *testing.T) {
	got := FormatFields([]Pair{{"name", "Alice"}, {"note", `said "hi"`}})
	want := `name="Alice", note="said ""hi"""`
	if got != want {
		t.Errorf("FormatFields() = %q, want %q", got, want)
	}
}
