// Package token generates the prefix tokens that key the search index.
package token

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MinLength is the shortest token ever emitted or accepted, counted in
// runes. Single-rune prefixes are excluded to bound index size.
const MinLength = 2

// Tokenize lowercases text, splits it on whitespace, and emits each word plus
// every prefix of MinLength runes up to the full word. Prefixes are cut at
// rune boundaries so multi-byte text never yields partial-rune tokens. The
// result is a deduplicated, sorted set. Empty input yields nil.
//
// Hyphens and other punctuation are not separators: "PO-2024-001" is one
// word, so reference numbers stay searchable by prefix.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		runes := []rune(word)
		for i := MinLength; i <= len(runes); i++ {
			set[string(runes[:i])] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}

	out := make([]string, 0, len(set))
	for tok := range set {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// QueryTokens lowercases and splits a query on whitespace, dropping words
// shorter than MinLength runes. No prefixes are generated: query words are
// matched whole against the index.
func QueryTokens(query string) []string {
	var out []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(word) >= MinLength {
			out = append(out, word)
		}
	}
	return out
}
