package parser

import (
	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/keywords"
)

// parseCondition matches the words between "if" and the comma. It returns nil
// when the words contain no to-be phrase.
func (p *Parser) parseCondition(words []string) *ast.Condition {
	pos, n, ok := p.kw.Phrases(keywords.ToBe).Find(words, 0)
	if !ok {
		return nil
	}
	left := value(words[:pos])
	rest := words[pos+n:]

	identity := p.kw.Phrases(keywords.Identity)
	greater := p.kw.Phrases(keywords.PositiveComparatives)
	lesser := p.kw.Phrases(keywords.NegativeComparatives)

	if k := identity.MatchAt(rest, 0); k > 0 {
		return ast.NewCondition(ast.EqualTo, left, value(rest[k:]))
	}
	if len(rest) > 0 && rest[0] == "not" {
		negated := rest[1:]
		if right, ok := comparative(lesser, negated); ok {
			return ast.NewCondition(ast.GreaterOrEqual, left, value(right))
		}
		if right, ok := comparative(greater, negated); ok {
			return ast.NewCondition(ast.LessOrEqual, left, value(right))
		}
		if k := identity.MatchAt(negated, 0); k > 0 {
			negated = negated[k:]
		}
		return ast.NewCondition(ast.NotEqualTo, left, value(negated))
	}
	if right, ok := comparative(greater, rest); ok {
		return ast.NewCondition(ast.GreaterThan, left, value(right))
	}
	if right, ok := comparative(lesser, rest); ok {
		return ast.NewCondition(ast.LessThan, left, value(right))
	}
	return ast.NewCondition(ast.EqualTo, left, value(rest))
}

// comparative matches "<comparative> than <rest>" at the start of words.
func comparative(set keywords.Phrases, words []string) ([]string, bool) {
	k := set.MatchAt(words, 0)
	if k == 0 || k >= len(words) || words[k] != "than" {
		return nil, false
	}
	return words[k+1:], true
}
