package parser

import (
	"strings"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/lexer"
)

// sentence indexes the words of one token group while keeping the positions
// of commas and quotes available to the rules.
type sentence struct {
	tokens  []lexer.Token
	words   []string
	wordTok []int
	quoted  []bool
}

func newSentence(tokens []lexer.Token) *sentence {
	s := &sentence{tokens: tokens}
	inQuote := false
	for i, tok := range tokens {
		switch tok.Kind {
		case lexer.Quote:
			inQuote = !inQuote
		case lexer.Word:
			s.words = append(s.words, tok.Text)
			s.wordTok = append(s.wordTok, i)
			s.quoted = append(s.quoted, inQuote)
		}
	}
	return s
}

// valueAfter returns the words following an anchor that ends just before word
// index end, stopping at the first comma after the anchor.
func (s *sentence) valueAfter(end int) []string {
	if end <= 0 || end > len(s.words) {
		return nil
	}
	var out []string
	for i := s.wordTok[end-1] + 1; i < len(s.tokens); i++ {
		tok := s.tokens[i]
		if tok.Kind == lexer.Comma {
			break
		}
		if tok.Kind == lexer.Word {
			out = append(out, tok.Text)
		}
	}
	return out
}

// tokensAfterWord returns the raw tokens that follow word index i.
func (s *sentence) tokensAfterWord(i int) []lexer.Token {
	return s.tokens[s.wordTok[i]+1:]
}

// firstComma returns the token index of the first comma, or -1.
func (s *sentence) firstComma() int {
	for i, tok := range s.tokens {
		if tok.Kind == lexer.Comma {
			return i
		}
	}
	return -1
}

// wordsBeforeToken counts the words that precede token index tok.
func (s *sentence) wordsBeforeToken(tok int) int {
	n := 0
	for n < len(s.wordTok) && s.wordTok[n] < tok {
		n++
	}
	return n
}

func variable(words []string) ast.Variable {
	return ast.NormalizeName(strings.Join(words, " "))
}

func value(words []string) ast.Value {
	return ast.Value(strings.Join(words, " "))
}
