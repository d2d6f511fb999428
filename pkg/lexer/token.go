package lexer

import "strings"

// Kind identifies the token category.
type Kind int

const (
	Word Kind = iota
	Comma
	Quote
	SentenceEnd
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Comma:
		return "Comma"
	case Quote:
		return "Quote"
	case SentenceEnd:
		return "SentenceEnd"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Token is a single lexeme. Text is the source spelling; for Word tokens it is
// lower-cased by Normalize.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	if t.Kind == Word {
		return t.Text
	}
	return t.Kind.String() + "(" + t.Text + ")"
}

// Block holds the tokens of one paragraph.
type Block []Token

// Words returns the text of every Word token in order.
func (b Block) Words() []string {
	words := make([]string, 0, len(b))
	for _, tok := range b {
		if tok.Kind == Word {
			words = append(words, tok.Text)
		}
	}
	return words
}

func (b Block) String() string {
	parts := make([]string, 0, len(b))
	for _, tok := range b {
		parts = append(parts, tok.String())
	}
	return strings.Join(parts, " ")
}
