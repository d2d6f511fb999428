package parser

import (
	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/keywords"
	"github.com/dhruvjimulia-sys/storyteller/pkg/lexer"
)

// Parser turns normalized token blocks into statements.
type Parser struct {
	kw *keywords.Set
}

// New constructs a parser over the given vocabularies; nil selects the
// built-in ones.
func New(kw *keywords.Set) *Parser {
	if kw == nil {
		kw = keywords.Default()
	}
	return &Parser{kw: kw}
}

// ParseProgram parses every block. A block that fails segmentation
// contributes an empty statement list so block indices stay aligned with
// labels; its diagnostic is collected and parsing continues.
func (p *Parser) ParseProgram(blocks []lexer.Block) (*ast.Program, diagnostics.List) {
	var diags diagnostics.List
	out := make([]*ast.Block, 0, len(blocks))
	for i, block := range blocks {
		statements, diag := p.ParseBlock(block)
		if diag != nil {
			diags = append(diags, diag.At(i, diag.Sentence))
			statements = nil
		}
		out = append(out, ast.NewBlock(statements))
	}
	return ast.NewProgram(out), diags
}

// ParseBlock segments one block into sentences and parses each. The returned
// diagnostic carries the index of the offending sentence.
func (p *Parser) ParseBlock(block lexer.Block) ([]ast.Statement, *diagnostics.Diagnostic) {
	groups, ok := segment(block)
	if !ok {
		return nil, diagnostics.UnfinishedThought().At(diagnostics.NoPosition, len(groups))
	}
	statements := make([]ast.Statement, 0, len(groups))
	for _, group := range groups {
		statements = append(statements, p.ParseStatement(group))
	}
	return statements, nil
}

// ParseStatement parses the tokens of a single sentence, without its
// terminator. It always produces a statement; unmatched prose is a Comment.
func (p *Parser) ParseStatement(tokens []lexer.Token) ast.Statement {
	s := newSentence(tokens)
	for _, rule := range statementRules {
		if stmt, ok := rule.match(p, s); ok {
			return stmt
		}
	}
	return ast.NewComment()
}

// segment splits a block at sentence terminators. Groups without words are
// dropped; a trailing group with words but no terminator fails.
func segment(block lexer.Block) ([][]lexer.Token, bool) {
	var (
		groups  [][]lexer.Token
		current []lexer.Token
	)
	for _, tok := range block {
		if tok.Kind == lexer.SentenceEnd {
			if hasWord(current) {
				groups = append(groups, current)
			}
			current = nil
			continue
		}
		current = append(current, tok)
	}
	if hasWord(current) {
		return groups, false
	}
	return groups, true
}

func hasWord(tokens []lexer.Token) bool {
	for _, tok := range tokens {
		if tok.Kind == lexer.Word {
			return true
		}
	}
	return false
}
