package lexer

import (
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Rule order is significant: the first alternative that matches wins, and
// Unknown catches every remaining non-newline character so lexing never fails.
var storyLexer = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[^\S\n]+`},
	{Name: "Word", Pattern: `[\p{L}\p{N}'’]+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Quote", Pattern: `["“”]`},
	{Name: "SentenceEnd", Pattern: `[.?!]`},
	{Name: "Unknown", Pattern: `.`},
})

var (
	symbols       = storyLexer.Symbols()
	symNewline    = symbols["Newline"]
	symWhitespace = symbols["Whitespace"]
	symWord       = symbols["Word"]
	symComma      = symbols["Comma"]
	symQuote      = symbols["Quote"]
	symEnd        = symbols["SentenceEnd"]
)

// Tokenize splits source into paragraph blocks. A block ends at a line break
// followed by at least one blank line; blank-only paragraphs produce no block.
// Tokenize accepts any input; invalid UTF-8 sequences are replaced before
// lexing and surface as Unknown tokens.
func Tokenize(source string) []Block {
	source = strings.ToValidUTF8(source, "\uFFFD")
	lex, err := storyLexer.LexString("", source)
	if err != nil {
		return nil
	}

	var (
		blocks   []Block
		current  Block
		newlines int
	)
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			break
		}
		switch tok.Type {
		case symNewline:
			newlines++
			continue
		case symWhitespace:
			continue
		}
		if newlines >= 2 && len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
		newlines = 0
		current = append(current, convertToken(tok))
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func convertToken(tok plexer.Token) Token {
	switch tok.Type {
	case symWord:
		return Token{Kind: Word, Text: tok.Value}
	case symComma:
		return Token{Kind: Comma, Text: tok.Value}
	case symQuote:
		return Token{Kind: Quote, Text: tok.Value}
	case symEnd:
		return Token{Kind: SentenceEnd, Text: tok.Value}
	default:
		return Token{Kind: Unknown, Text: tok.Value}
	}
}
