package ast

import "strings"

var articles = map[string]struct{}{"the": {}, "a": {}, "an": {}}

// NormalizeName folds a phrase to the canonical variable spelling: words are
// lower-cased and single-spaced, a leading article is dropped when more words
// follow, and a trailing possessive is removed from the last word.
func NormalizeName(text string) Variable {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > 1 {
		if _, ok := articles[words[0]]; ok {
			words = words[1:]
		}
	}
	if n := len(words); n > 0 {
		last := words[n-1]
		for _, suffix := range []string{"'s", "’s", "'", "’"} {
			if trimmed := strings.TrimSuffix(last, suffix); trimmed != last && trimmed != "" {
				last = trimmed
				break
			}
		}
		words[n-1] = last
	}
	return Variable(strings.Join(words, " "))
}
