package parser

import (
	"strings"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/keywords"
	"github.com/dhruvjimulia-sys/storyteller/pkg/lexer"
)

type statementRule struct {
	name  string
	match func(p *Parser, s *sentence) (ast.Statement, bool)
}

// Order matters: the first rule that accepts a sentence decides its meaning.
// The table is filled in init because matchIf parses its consequent through
// the same table.
var statementRules []statementRule

func init() {
	statementRules = []statementRule{
		{"if", (*Parser).matchIf},
		{"input", (*Parser).matchInput},
		{"print text", (*Parser).matchPrintText},
		{"print number", (*Parser).matchPrintNumber},
		{"assign", (*Parser).matchAssign},
		{"add or subtract", (*Parser).matchAddSub},
		{"goto", (*Parser).matchGoto},
		{"exit", (*Parser).matchExit},
	}
}

func (p *Parser) matchIf(s *sentence) (ast.Statement, bool) {
	if len(s.words) == 0 || s.words[0] != "if" {
		return nil, false
	}
	comma := s.firstComma()
	if comma < 0 {
		return nil, false
	}
	then := s.wordsBeforeToken(comma)
	if then >= len(s.words) || s.words[then] != "then" {
		return nil, false
	}
	cond := p.parseCondition(s.words[1:then])
	if cond == nil {
		return nil, false
	}
	consequent := p.ParseStatement(s.tokensAfterWord(then))
	return ast.NewIfStatement(cond, consequent), true
}

func (p *Parser) matchInput(s *sentence) (ast.Statement, bool) {
	pos, _, ok := p.kw.Phrases(keywords.Input).Find(s.words, 0)
	if !ok || pos == 0 {
		return nil, false
	}
	return ast.NewInputStatement(variable(s.words[:pos])), true
}

func (p *Parser) matchPrintText(s *sentence) (ast.Statement, bool) {
	subject, adverb, ok := p.parseSpeech(s)
	if !ok || !adverb {
		return nil, false
	}
	return ast.NewPrintTextStatement(variable(subject)), true
}

func (p *Parser) matchPrintNumber(s *sentence) (ast.Statement, bool) {
	subject, _, ok := p.parseSpeech(s)
	if !ok {
		return nil, false
	}
	return ast.NewPrintNumberStatement(variable(subject)), true
}

func (p *Parser) matchAssign(s *sentence) (ast.Statement, bool) {
	pos, n, ok := p.kw.Phrases(keywords.ToBe).Find(s.words, 0)
	if !ok || pos == 0 {
		return nil, false
	}
	return ast.NewAssignStatement(variable(s.words[:pos]), value(s.valueAfter(pos+n))), true
}

func (p *Parser) matchAddSub(s *sentence) (ast.Statement, bool) {
	positive := p.kw.Phrases(keywords.PositiveAdjectives)
	negative := p.kw.Phrases(keywords.NegativeAdjectives)
	for i := 1; i+1 < len(s.words); i++ {
		if s.words[i] != "felt" || s.words[i+1] != "as" {
			continue
		}
		adj := i + 2
		if k := positive.MatchAt(s.words, adj); k > 0 && adj+k < len(s.words) && s.words[adj+k] == "as" {
			return ast.NewAddStatement(variable(s.words[:i]), value(s.valueAfter(adj+k+1))), true
		}
		if k := negative.MatchAt(s.words, adj); k > 0 && adj+k < len(s.words) && s.words[adj+k] == "as" {
			return ast.NewSubStatement(variable(s.words[:i]), value(s.valueAfter(adj+k+1))), true
		}
	}
	return nil, false
}

func (p *Parser) matchGoto(s *sentence) (ast.Statement, bool) {
	pos, n, ok := p.kw.Phrases(keywords.Goto).Find(s.words, 0)
	if !ok {
		return nil, false
	}
	return ast.NewGotoStatement(value(s.valueAfter(pos + n))), true
}

func (p *Parser) matchExit(s *sentence) (ast.Statement, bool) {
	if _, _, ok := p.kw.Phrases(keywords.Exit).Find(s.words, 0); !ok {
		return nil, false
	}
	return ast.NewExitStatement(), true
}

// parseSpeech recognises the three dialogue shapes:
//
//	"..." subject said [adverb]
//	"..." said subject [adverb]
//	subject said [adverb][,] "..."
//
// It returns the speaker's words and whether an -ly adverb follows the verb.
func (p *Parser) parseSpeech(s *sentence) (subject []string, adverb bool, ok bool) {
	openTok, closeTok := quoteSpan(s.tokens)
	if openTok < 0 || closeTok < 0 {
		return nil, false, false
	}
	said := p.kw.Phrases(keywords.Said)

	var before, after []string
	for i, w := range s.words {
		switch tok := s.wordTok[i]; {
		case tok < openTok:
			before = append(before, w)
		case tok > closeTok && !s.quoted[i]:
			after = append(after, w)
		}
	}

	if pos, n, found := said.Find(before, 0); found && pos > 0 {
		return before[:pos], pos+n < len(before) && isAdverb(before[pos+n]), true
	}

	pos, n, found := said.Find(after, 0)
	if !found {
		return nil, false, false
	}
	if pos > 0 {
		return after[:pos], pos+n < len(after) && isAdverb(after[pos+n]), true
	}
	rest := after[n:]
	switch {
	case len(rest) == 0:
		return nil, false, false
	case len(rest) > 1 && isAdverb(rest[len(rest)-1]):
		return rest[:len(rest)-1], true, true
	default:
		return rest, false, true
	}
}

// quoteSpan returns the token indices of the first opening and closing quote.
func quoteSpan(tokens []lexer.Token) (openTok, closeTok int) {
	openTok, closeTok = -1, -1
	for i, tok := range tokens {
		if tok.Kind != lexer.Quote {
			continue
		}
		if openTok < 0 {
			openTok = i
			continue
		}
		closeTok = i
		break
	}
	return openTok, closeTok
}

func isAdverb(word string) bool {
	return len(word) > 2 && strings.HasSuffix(word, "ly")
}
