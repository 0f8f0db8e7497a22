package token

import (
	"reflect"
	"sort"
	"testing"
	"unicode/utf8"
)

func TestTokenizeEmpty(t *testing.T) {
	for _, in := range []string{"", " ", "\t\n", "a"} {
		if got := Tokenize(in); len(got) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", in, got)
		}
	}
}

func TestTokenizePrefixes(t *testing.T) {
	got := Tokenize("hello")
	want := []string{"he", "hel", "hell", "hello"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize(hello) = %v, want %v", got, want)
	}
	for _, tok := range got {
		if len(tok) < MinLength {
			t.Errorf("emitted token %q shorter than %d", tok, MinLength)
		}
	}
}

func TestTokenizeMultiWordDedupes(t *testing.T) {
	got := Tokenize("go go gone")
	want := []string{"go", "gon", "gone"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeCaseInsensitive(t *testing.T) {
	upper := Tokenize("HELLO World")
	lower := Tokenize("hello world")
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case sensitivity: %v vs %v", upper, lower)
	}
}

func TestTokenizeKeepsHyphenatedWords(t *testing.T) {
	got := Tokenize("PO-2024-001")
	i := sort.SearchStrings(got, "po-2024-001")
	if i == len(got) || got[i] != "po-2024-001" {
		t.Fatalf("expected full token po-2024-001 in %v", got)
	}
	// Only whitespace splits words, so nothing starts after the hyphen.
	for _, tok := range got {
		if tok[0] != 'p' {
			t.Errorf("unexpected token %q not prefixed from word start", tok)
		}
	}
}

func TestTokenizeMultiByteRunes(t *testing.T) {
	got := Tokenize("Café")
	want := []string{"ca", "caf", "café"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize(Café) = %v, want %v", got, want)
	}
	for _, tok := range got {
		if !utf8.ValidString(tok) {
			t.Errorf("token %q is not valid UTF-8", tok)
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	a := Tokenize("warehouse dock 7")
	b := Tokenize("warehouse dock 7")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls differ: %v vs %v", a, b)
	}
}

func TestQueryTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", nil},
		{"a b", nil},
		{"é po", []string{"po"}},
		{"Acme PO", []string{"acme", "po"}},
		{"  vendor   acme  ", []string{"vendor", "acme"}},
	}
	for _, tc := range tests {
		if got := QueryTokens(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("QueryTokens(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
