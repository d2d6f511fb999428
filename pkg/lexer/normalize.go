package lexer

import "strings"

// Normalize lower-cases words and drops sentence terminators that appear
// inside quoted speech, so dialogue never ends a statement. The input is not
// modified.
func Normalize(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, normalizeBlock(block))
	}
	return out
}

func normalizeBlock(block Block) Block {
	inQuote := false
	updated := make(Block, 0, len(block))
	for _, tok := range block {
		switch tok.Kind {
		case Word:
			tok.Text = strings.ToLower(tok.Text)
		case Quote:
			inQuote = !inQuote
		case SentenceEnd:
			if inQuote {
				continue
			}
		}
		updated = append(updated, tok)
	}
	return updated
}
