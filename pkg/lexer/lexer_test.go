package lexer

import (
	"reflect"
	"testing"
)

func TestTokenizeRecognisesTokenKinds(t *testing.T) {
	blocks := Tokenize(`"Hi, Bob." Alice said! Who's there? #`)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	want := Block{
		{Kind: Quote, Text: `"`},
		{Kind: Word, Text: "Hi"},
		{Kind: Comma, Text: ","},
		{Kind: Word, Text: "Bob"},
		{Kind: SentenceEnd, Text: "."},
		{Kind: Quote, Text: `"`},
		{Kind: Word, Text: "Alice"},
		{Kind: Word, Text: "said"},
		{Kind: SentenceEnd, Text: "!"},
		{Kind: Word, Text: "Who's"},
		{Kind: Word, Text: "there"},
		{Kind: SentenceEnd, Text: "?"},
		{Kind: Unknown, Text: "#"},
	}
	if !reflect.DeepEqual(blocks[0], want) {
		t.Fatalf("tokens = %v, want %v", blocks[0], want)
	}
}

func TestTokenizeCurlyQuotesAndApostrophes(t *testing.T) {
	blocks := Tokenize("“Bob’s here” said Ann.")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	got := blocks[0]
	if got[0].Kind != Quote || got[2].Kind != Word || got[2].Text != "here" || got[3].Kind != Quote {
		t.Fatalf("unexpected tokens %v", got)
	}
	if got[1].Kind != Word || got[1].Text != "Bob’s" {
		t.Fatalf("expected curly apostrophe to stay inside the word, got %v", got[1])
	}
}

func TestTokenizeSplitsBlocksOnBlankLines(t *testing.T) {
	source := "\n\nBob was here.\nAnn was there.\n\n\n   \nTom was gone.\n\n"
	blocks := Tokenize(source)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %v", len(blocks), blocks)
	}
	if words := blocks[0].Words(); !reflect.DeepEqual(words, []string{"Bob", "was", "here", "Ann", "was", "there"}) {
		t.Fatalf("first block words = %v", words)
	}
	if words := blocks[1].Words(); !reflect.DeepEqual(words, []string{"Tom", "was", "gone"}) {
		t.Fatalf("second block words = %v", words)
	}
}

func TestTokenizeWindowsLineEndings(t *testing.T) {
	blocks := Tokenize("Bob was here.\r\n\r\nAnn was there.\r\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	for _, source := range []string{"", "\n\n\n", "   \t  "} {
		if blocks := Tokenize(source); len(blocks) != 0 {
			t.Fatalf("Tokenize(%q) = %v, want no blocks", source, blocks)
		}
	}
}

func TestTokenizeNeverFails(t *testing.T) {
	blocks := Tokenize("Bob \xff\xfe was ~ 5 §\x00.")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	words := blocks[0].Words()
	if !reflect.DeepEqual(words, []string{"Bob", "was", "5"}) {
		t.Fatalf("words = %v", words)
	}
}

func TestNormalizeLowercasesAndDropsQuotedTerminators(t *testing.T) {
	blocks := Normalize(Tokenize(`"Wait. Stop!" Alice said. Bob WAS here.`))
	got := blocks[0]
	terminators := 0
	for _, tok := range got {
		if tok.Kind == SentenceEnd {
			terminators++
		}
		if tok.Kind == Word && tok.Text != toLower(tok.Text) {
			t.Fatalf("word %q was not lower-cased", tok.Text)
		}
	}
	if terminators != 2 {
		t.Fatalf("expected 2 terminators outside quotes, got %d in %v", terminators, got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	source := "\"One. Two?\" Ann said slyly! \"Three\n\nFour.\" Bob said.\nCharlie WAS a Wizard."
	once := Normalize(Tokenize(source))
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent:\n%v\n%v", once, twice)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	blocks := Tokenize(`"A. B." Ann said.`)
	before := len(blocks[0])
	_ = Normalize(blocks)
	if len(blocks[0]) != before || blocks[0][1].Text != "A" {
		t.Fatalf("input block was modified: %v", blocks[0])
	}
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}
