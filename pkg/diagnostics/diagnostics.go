package diagnostics

import (
	"fmt"
	"strings"
)

// Kind identifies a diagnostic category.
type Kind string

const (
	KindPlotNotFound      Kind = "Plot Not Found Error"
	KindUnfinishedThought Kind = "Unfinished Thought Error"
	KindLonelyPronoun     Kind = "Lonely Pronoun Error"
	KindEnigmaticWhispers Kind = "Enigmatic Whispers Error"
	KindExistentialCrisis Kind = "Existential Crisis Error"
	KindPlaceNotFound     Kind = "Place Not Found Error"
	KindUnrulySpectator   Kind = "Unruly Spectator Error"
	KindVanishingInk      Kind = "Vanishing Ink Error"
	KindNegativeFeelings  Kind = "Negative Feelings Error"
)

// NoPosition marks a diagnostic that is not tied to a block or sentence.
const NoPosition = -1

// Diagnostic is a user-facing compile or runtime error.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Block    int
	Sentence int
	Detail   string
	Err      error
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(string(d.Kind))
	if d.Block != NoPosition {
		fmt.Fprintf(&b, " (paragraph %d", d.Block+1)
		if d.Sentence != NoPosition {
			fmt.Fprintf(&b, ", sentence %d", d.Sentence+1)
		}
		b.WriteString(")")
	}
	b.WriteString("\n")
	b.WriteString(d.Message)
	if d.Detail != "" {
		b.WriteString("\n")
		b.WriteString(d.Detail)
	}
	return b.String()
}

func (d *Diagnostic) Unwrap() error {
	if d == nil {
		return nil
	}
	return d.Err
}

// At returns a copy of d anchored to the given block and sentence.
func (d *Diagnostic) At(block, sentence int) *Diagnostic {
	out := *d
	out.Block = block
	out.Sentence = sentence
	return &out
}

// List accumulates diagnostics; a non-empty List is an error.
type List []*Diagnostic

func (l List) Error() string {
	parts := make([]string, 0, len(l))
	for _, d := range l {
		parts = append(parts, d.Error())
	}
	return strings.Join(parts, "\n\n")
}

func (l List) Unwrap() []error {
	errs := make([]error, 0, len(l))
	for _, d := range l {
		errs = append(errs, d)
	}
	return errs
}

// Err returns nil for an empty list.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// HasKind reports whether any diagnostic in the list has the given kind.
func (l List) HasKind(kind Kind) bool {
	for _, d := range l {
		if d != nil && d.Kind == kind {
			return true
		}
	}
	return false
}

func newDiagnostic(kind Kind, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Block: NoPosition, Sentence: NoPosition}
}
