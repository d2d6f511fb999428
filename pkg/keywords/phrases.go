package keywords

import (
	"strings"
	"unicode"
)

// Phrase is a keyword spelled as one or more consecutive words.
type Phrase []string

// ParsePhrase splits text into lower-cased words. Hyphens and other
// non-word characters separate words, matching how the tokenizer sees them.
func ParsePhrase(text string) Phrase {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’')
	})
	if len(fields) == 0 {
		return nil
	}
	return Phrase(fields)
}

func (p Phrase) String() string { return strings.Join(p, " ") }

// matches reports whether p occurs in words starting at i.
func (p Phrase) matches(words []string, i int) bool {
	if len(p) == 0 || i < 0 || i+len(p) > len(words) {
		return false
	}
	for j, w := range p {
		if words[i+j] != w {
			return false
		}
	}
	return true
}

// Phrases is an unordered vocabulary of keyword phrases.
type Phrases struct {
	list []Phrase
	seen map[string]struct{}
}

// NewPhrases builds a vocabulary from phrase texts; empty and duplicate
// entries are ignored.
func NewPhrases(texts ...string) Phrases {
	var p Phrases
	p.add(texts...)
	return p
}

func (p *Phrases) add(texts ...string) {
	if p.seen == nil {
		p.seen = make(map[string]struct{}, len(texts))
	}
	for _, text := range texts {
		phrase := ParsePhrase(text)
		if phrase == nil {
			continue
		}
		key := phrase.String()
		if _, ok := p.seen[key]; ok {
			continue
		}
		p.seen[key] = struct{}{}
		p.list = append(p.list, phrase)
	}
}

func (p Phrases) clone() Phrases {
	out := Phrases{
		list: append([]Phrase(nil), p.list...),
		seen: make(map[string]struct{}, len(p.seen)),
	}
	for k := range p.seen {
		out.seen[k] = struct{}{}
	}
	return out
}

// Len returns the number of distinct phrases.
func (p Phrases) Len() int { return len(p.list) }

// List returns the phrases in insertion order.
func (p Phrases) List() []Phrase { return append([]Phrase(nil), p.list...) }

// Contains reports whether text, parsed as a phrase, is in the vocabulary.
func (p Phrases) Contains(text string) bool {
	phrase := ParsePhrase(text)
	if phrase == nil {
		return false
	}
	_, ok := p.seen[phrase.String()]
	return ok
}

// MatchAt returns the word length of the longest phrase occurring in words at
// position i, or 0 when none does.
func (p Phrases) MatchAt(words []string, i int) int {
	best := 0
	for _, phrase := range p.list {
		if len(phrase) > best && phrase.matches(words, i) {
			best = len(phrase)
		}
	}
	return best
}

// Find returns the earliest position at or after from where a phrase occurs,
// together with the length of the longest phrase there.
func (p Phrases) Find(words []string, from int) (pos, length int, ok bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(words); i++ {
		if n := p.MatchAt(words, i); n > 0 {
			return i, n, true
		}
	}
	return -1, 0, false
}
