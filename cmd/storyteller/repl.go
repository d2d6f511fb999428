package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/driver"
	"github.com/dhruvjimulia-sys/storyteller/pkg/interpreter"
)

const (
	historyFileName = "history"
	promptMain      = "story> "
	promptCont      = "  ...> "
	promptInput     = "    ? "
	replBanner      = "Storyteller REPL\nEnd a paragraph with an empty line. Ctrl+C discards it, Ctrl+D exits. Type :quit to exit."
)

// lineReader is the part of *liner.State the REPL reads through.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func runRepl(args []string) int {
	if len(args) > 0 {
		return misuse(fmt.Sprintf("storyteller repl takes no arguments, got %s", strings.Join(args, " ")))
	}

	opts := driver.Options{}
	manifest, err := loadManifestFrom(".")
	switch {
	case err == nil:
		if opts, err = manifest.Options(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	case errors.Is(err, errManifestNotFound):
	default:
		fmt.Fprintf(stderr, "warning: unable to load manifest (%v); using built-in keywords\n", err)
	}

	fmt.Fprintln(stdout, replBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := resolveStorytellerHome(); err == nil {
		histPath := filepath.Join(home, historyFileName)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(home, 0o755); err != nil {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	} else {
		fmt.Fprintf(stderr, "warning: history disabled: %v\n", err)
	}

	s := newSession(opts, &promptReader{lines: ln, prompt: promptInput}, stdout)
	for {
		source, ok := readParagraph(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			default:
				fmt.Fprintln(stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := s.eval(ctx, source)
		stop()
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
	}
}

// readParagraph collects lines until an empty line. ok is false once input
// is exhausted with nothing collected; an aborted prompt discards the
// paragraph.
func readParagraph(r lineReader) (string, bool) {
	var lines []string
	for {
		prompt := promptMain
		if len(lines) > 0 {
			prompt = promptCont
		}
		line, err := r.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			if len(lines) == 0 {
				return "", false
			}
			return strings.Join(lines, "\n"), true
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true
		case err != nil:
			return "", false
		}
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				continue
			}
			return strings.Join(lines, "\n"), true
		}
		if len(lines) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		lines = append(lines, line)
	}
}

// session runs paragraphs against one interpreter so variables carry over.
type session struct {
	opts   driver.Options
	interp *interpreter.Interpreter
	out    *trackingWriter
}

func newSession(opts driver.Options, in io.Reader, out io.Writer) *session {
	tw := &trackingWriter{w: out}
	return &session{opts: opts, interp: interpreter.New(in, tw), out: tw}
}

// eval compiles one paragraph, treating every variable bound so far as
// declared, and executes it. Output that does not end in a newline is
// terminated so the next prompt starts on its own line.
func (s *session) eval(ctx context.Context, source string) error {
	opts := s.opts
	opts.KnownVariables = append(append([]ast.Variable(nil), s.opts.KnownVariables...), s.interp.Environment().Keys()...)

	comp, err := driver.Compile([]byte(source), opts)
	if err != nil {
		return err
	}
	if err := comp.Err(); err != nil {
		return err
	}

	s.out.dirty = false
	runErr := s.interp.Run(ctx, comp.Program)
	if s.out.dirty {
		_, _ = io.WriteString(s.out.w, "\n")
	}
	return runErr
}

type trackingWriter struct {
	w     io.Writer
	dirty bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.dirty = p[n-1] != '\n'
	}
	return n, err
}

// promptReader feeds story input statements from interactive prompts. An
// aborted or exhausted prompt reads as end of input.
type promptReader struct {
	lines   lineReader
	prompt  string
	pending string
}

func (p *promptReader) Read(buf []byte) (int, error) {
	if p.pending == "" {
		line, err := p.lines.Prompt(p.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return 0, io.EOF
			}
			return 0, err
		}
		p.pending = line + "\n"
	}
	n := copy(buf, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}
