package diagnostics

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDiagnosticErrorIncludesPosition(t *testing.T) {
	d := UnfinishedThought().At(2, 0)
	got := d.Error()
	if !strings.HasPrefix(got, "Unfinished Thought Error (paragraph 3, sentence 1)\n") {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestDiagnosticErrorWithoutPosition(t *testing.T) {
	got := PlaceNotFound("7").Error()
	if !strings.HasPrefix(got, "Place Not Found Error\n") {
		t.Fatalf("unexpected header: %q", got)
	}
	if !strings.HasSuffix(got, "no paragraph is labelled 7") {
		t.Fatalf("missing detail: %q", got)
	}
}

func TestAtReturnsCopy(t *testing.T) {
	base := LonelyPronoun("he")
	moved := base.At(1, NoPosition)
	if base.Block != NoPosition {
		t.Fatalf("At modified the receiver")
	}
	if moved.Block != 1 || moved.Sentence != NoPosition {
		t.Fatalf("unexpected position %d/%d", moved.Block, moved.Sentence)
	}
	if got := moved.Error(); !strings.Contains(got, "(paragraph 2)") {
		t.Fatalf("expected block-only position, got %q", got)
	}
}

func TestListUnwrapsToDiagnostics(t *testing.T) {
	list := List{UnfinishedThought().At(0, NoPosition), UnrulySpectator(io.ErrUnexpectedEOF)}
	err := list.Err()
	if err == nil {
		t.Fatalf("expected non-nil error")
	}
	var diag *Diagnostic
	if !errors.As(err, &diag) || diag.Kind != KindUnfinishedThought {
		t.Fatalf("errors.As did not find the first diagnostic: %v", diag)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if !list.HasKind(KindUnrulySpectator) || list.HasKind(KindVanishingInk) {
		t.Fatalf("HasKind mismatch")
	}
	if strings.Count(list.Error(), "\n\n") != 1 {
		t.Fatalf("expected diagnostics separated by a blank line: %q", list.Error())
	}
}

func TestEmptyListIsNotAnError(t *testing.T) {
	var list List
	if list.Err() != nil {
		t.Fatalf("expected nil error for empty list")
	}
}

func TestExistentialCrisisSuggestion(t *testing.T) {
	d := ExistentialCrisis("the knight", "knight")
	if !strings.Contains(d.Message, "The Knight") {
		t.Fatalf("expected title-cased name in %q", d.Message)
	}
	if d.Detail != "did you mean Knight?" {
		t.Fatalf("unexpected detail %q", d.Detail)
	}
	if ExistentialCrisis("bob", "").Detail != "" {
		t.Fatalf("expected no detail without suggestion")
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"bob":          "Bob",
		"the OLD king": "The Old King",
		"":             "",
		"o'neil":       "O'neil",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Fatalf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
