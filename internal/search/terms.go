// Package search turns free-form search input into the structured pieces
// the store query compiler binds: a prefix-match expression for the
// full-text index, and any date fragments the text happens to contain.
// Keeping the heuristics here means the store never parses user text.
package search

import "strings"

// minTokenLen is the shortest token worth matching. One and two letter
// tokens produce too many prefix hits to rank usefully.
const minTokenLen = 3

// Tokens splits raw search input on whitespace and drops tokens shorter
// than three characters. An empty result means the full-text channel
// should be skipped entirely.
func Tokens(input string) []string {
	fields := strings.Fields(input)
	toks := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLen {
			continue
		}
		toks = append(toks, f)
	}
	return toks
}

// PrefixQuery converts raw search input into an FTS5 match expression
// where every surviving token is a quoted prefix term:
//
//	"golang concurrency" → `"golang"* "concurrency"*`
func PrefixQuery(input string) string {
	toks := Tokens(input)
	terms := make([]string, 0, len(toks))
	for _, tok := range toks {
		terms = append(terms, quoteTerm(tok)+"*")
	}
	return strings.Join(terms, " ")
}

// quoteTerm wraps a token in FTS5 string quotes so punctuation inside the
// token ("c++", "node.js") cannot be read as query syntax.
func quoteTerm(tok string) string {
	return `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
}

// LikeTerm prepares raw input for a case-insensitive LIKE comparison,
// escaping the LIKE wildcards so they match literally. Callers wrap the
// result in %...% themselves and pair it with ESCAPE '\'.
func LikeTerm(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
