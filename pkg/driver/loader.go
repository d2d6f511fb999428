package driver

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
)

// Loader reads story files from disk and compiles them.
type Loader struct {
	Options Options
}

// NewLoader constructs a loader that compiles with opts.
func NewLoader(opts Options) *Loader {
	return &Loader{Options: opts}
}

// Load reads and compiles the story at path. Read failures and undecodable
// text are reported as a *diagnostics.Diagnostic.
func (l *Loader) Load(path string) (*Compilation, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.PlotNotFound(path, err)
	}
	comp, err := Compile(source, l.Options)
	if err != nil {
		var diag *diagnostics.Diagnostic
		if errors.As(err, &diag) && diag.Kind == diagnostics.KindPlotNotFound {
			return nil, diagnostics.PlotNotFound(path, diag.Err)
		}
		return nil, err
	}
	return comp, nil
}

// StoryName derives a name from a story path, without directory or extension.
func StoryName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
