package keywords

import (
	"fmt"
	"sort"
)

// Category names one keyword vocabulary. The names double as the keys of the
// manifest's keywords section.
type Category string

const (
	ToBe                 Category = "to_be"
	PositiveAdjectives   Category = "positive_adjectives"
	NegativeAdjectives   Category = "negative_adjectives"
	Said                 Category = "said"
	Goto                 Category = "goto"
	PositiveComparatives Category = "positive_comparatives"
	NegativeComparatives Category = "negative_comparatives"
	Identity             Category = "identity"
	Pronouns             Category = "pronouns"
	Input                Category = "input"
	Exit                 Category = "exit"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		ToBe,
		PositiveAdjectives,
		NegativeAdjectives,
		Said,
		Goto,
		PositiveComparatives,
		NegativeComparatives,
		Identity,
		Pronouns,
		Input,
		Exit,
	}
}

// Set holds the vocabularies the grammar anchors on. A Set is read-only once
// handed to a parser; use Clone before extending a shared one.
type Set struct {
	phrases map[Category]Phrases
}

// Default returns the built-in vocabularies.
func Default() *Set {
	s := &Set{phrases: make(map[Category]Phrases, len(defaultVocabulary))}
	for cat, texts := range defaultVocabulary {
		s.phrases[cat] = NewPhrases(texts...)
	}
	return s
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	out := &Set{phrases: make(map[Category]Phrases, len(s.phrases))}
	for cat, p := range s.phrases {
		out.phrases[cat] = p.clone()
	}
	return out
}

// Phrases returns the vocabulary for cat.
func (s *Set) Phrases(cat Category) Phrases {
	if s == nil {
		return Phrases{}
	}
	return s.phrases[cat]
}

// Extend adds phrases to a category in place.
func (s *Set) Extend(cat Category, texts ...string) error {
	if !IsCategory(cat) {
		return fmt.Errorf("keywords: unknown category %q", cat)
	}
	s.add(cat, texts...)
	return nil
}

func (s *Set) add(cat Category, texts ...string) {
	p := s.phrases[cat]
	p.add(texts...)
	s.phrases[cat] = p
}

// ExtendAll applies a category -> phrases map, as found in a manifest. Unknown
// categories are reported together after every known one is applied.
func (s *Set) ExtendAll(extra map[string][]string) error {
	var unknown []string
	for name, texts := range extra {
		cat := Category(name)
		if !IsCategory(cat) {
			unknown = append(unknown, name)
			continue
		}
		s.add(cat, texts...)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("keywords: unknown categories %v", unknown)
	}
	return nil
}

// IsCategory reports whether cat names a known vocabulary.
func IsCategory(cat Category) bool {
	_, ok := defaultVocabulary[cat]
	return ok
}

var defaultVocabulary = map[Category][]string{
	ToBe: {"was", "were", "is", "are", "wanted to be like", "wants to be like"},
	PositiveAdjectives: {
		"good", "great", "awesome", "amazing", "fantastic", "wonderful", "incredible", "nice",
		"cool", "happy", "joyful", "joyous", "glad", "delighted", "pleased", "satisfied",
		"content", "cheerful", "merry", "jolly", "jovial", "gleeful", "carefree", "sunny",
		"elated", "exhilarated", "ecstatic", "euphoric", "overjoyed", "exultant", "rapturous",
		"blissful", "radiant", "thrilled", "ravished",
	},
	NegativeAdjectives: {
		"bad", "terrible", "awful", "horrible", "dreadful", "unpleasant", "unlucky", "displeased",
		"miserable", "sad", "sorrowful", "dejected", "regretful", "depressed", "downcast",
		"despondent", "disconsolate", "desolate", "glum", "gloomy", "melancholic", "mournful",
		"forlorn", "crestfallen", "broken-hearted", "heartbroken", "grief-stricken",
		"disheartened", "dismayed", "dispirited", "discouraged", "hopeless",
	},
	Said: {
		"said", "stated", "exclaimed", "whispered", "shouted", "mumbled", "replied", "responded",
		"declared", "announced", "asserted", "acknowledged", "conveyed", "uttered", "ventured",
		"suggested", "disclosed", "protested", "objected", "interjected", "speculated",
		"greeted", "quoted", "noted", "mentioned", "alledged", "insisted", "confessed",
		"recited", "pleaded", "concluded", "inquired", "muttered", "will say",
	},
	Goto:                 {"go to", "goes to", "went to", "gone to", "going to"},
	PositiveComparatives: {"better", "greater", "stronger", "larger"},
	NegativeComparatives: {"worse", "less", "fewer", "smaller"},
	Identity:             {"the same as", "equal to", "identical to", "just like", "like"},
	Pronouns: {
		"he", "she", "they", "him", "her", "them",
		"himself", "herself", "themself", "themselves",
	},
	Input: {
		"looked up to the skies beyond waiting for an answer",
		"looks up to the skies beyond waiting for an answer",
	},
	Exit: {"end"},
}
