package diagnostics

import (
	"fmt"
	"strings"
	"unicode"
)

func UnfinishedThought() *Diagnostic {
	return newDiagnostic(KindUnfinishedThought,
		"A good story deserves an ending, and so does your statement! Make sure you conclude all your thoughts with a period, question mark, or exclamation mark.")
}

func PlotNotFound(path string, err error) *Diagnostic {
	d := newDiagnostic(KindPlotNotFound,
		"In the vast library of tales, you rummage through the bookshelves but fail to find the chapter you seek. Perhaps it slipped through the cracks of existence or became entangled in the quantum flux. Seek it elsewhere, fearless adventurer, for it eludes us here.")
	if path != "" {
		d.Detail = path
	}
	if err != nil {
		if d.Detail != "" {
			d.Detail += ": "
		}
		d.Detail += err.Error()
	}
	d.Err = err
	return d
}

func EnigmaticWhispers(detail string) *Diagnostic {
	d := newDiagnostic(KindEnigmaticWhispers,
		"Listen closely, brave programmer, for the cryptic whispers of your command-line summons are incomprehensible even to the wise compiler. Invoke your commands with precision to unravel the mysteries your story can offer.")
	d.Detail = detail
	return d
}

func LonelyPronoun(pronoun string) *Diagnostic {
	d := newDiagnostic(KindLonelyPronoun,
		"Oh, the tragedy that has befallen us! A forlorn pronoun meanders aimlessly, searching for its lost noun companion. Alas, it finds itself adrift in a sea of ambiguity, yearning for connection.")
	if pronoun != "" {
		d.Detail = fmt.Sprintf("pronoun %q has no antecedent", pronoun)
	}
	return d
}

// ExistentialCrisis reports a variable read before anything was assigned to it.
// suggestion may be empty.
func ExistentialCrisis(variable, suggestion string) *Diagnostic {
	d := newDiagnostic(KindExistentialCrisis, fmt.Sprintf(
		"The character %s stands in the shadows, uncertain of their identity. Try giving them an introduction before peeking into their world.",
		TitleCase(variable)))
	if suggestion != "" {
		d.Detail = fmt.Sprintf("did you mean %s?", TitleCase(suggestion))
	}
	return d
}

func PlaceNotFound(label string) *Diagnostic {
	d := newDiagnostic(KindPlaceNotFound,
		"One of your characters, in a wave of fiery determination and unyielding defiance, attempted to go to a place that doesn't exist. You hear their final screams as they get consumed by nothingness.")
	if label != "" {
		d.Detail = fmt.Sprintf("no paragraph is labelled %s", label)
	}
	return d
}

func UnrulySpectator(err error) *Diagnostic {
	d := newDiagnostic(KindUnrulySpectator,
		"A mischievous sprite sneaked into the narrative! It's tampering with your input. Halt the mischief by providing valid data or use a charm to banish the sprite.")
	d.Err = err
	if err != nil {
		d.Detail = err.Error()
	}
	return d
}

func VanishingInk(err error) *Diagnostic {
	d := newDiagnostic(KindVanishingInk,
		"Your message was etched onto the fabric of reality, but the ink quickly fades into the void. Fear not, for proper encoding and clarity will grant permanence to your words.")
	d.Err = err
	if err != nil {
		d.Detail = err.Error()
	}
	return d
}

func NegativeFeelings(variable string) *Diagnostic {
	return newDiagnostic(KindNegativeFeelings, fmt.Sprintf(
		"%s sank so low that they fell below nothing at all. Stories only count upwards from zero; cheer them up before bringing them down.",
		TitleCase(variable)))
}

// TitleCase capitalizes the first letter of each word.
func TitleCase(input string) string {
	var b strings.Builder
	capitalizeNext := true
	for _, r := range input {
		if unicode.IsLetter(r) {
			if capitalizeNext {
				b.WriteRune(unicode.ToUpper(r))
				capitalizeNext = false
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			continue
		}
		b.WriteRune(r)
		capitalizeNext = unicode.IsSpace(r)
	}
	return b.String()
}
