package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/dhruvjimulia-sys/storyteller/pkg/compiler"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/driver"
	"github.com/dhruvjimulia-sys/storyteller/pkg/interpreter"
)

const cliToolVersion = "storyteller 0.1.0-dev"

var errManifestNotFound = errors.New(driver.ManifestFileName + " not found")

// Replaced by tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runStory(args[1:])
	case "check":
		return checkStory(args[1:])
	case "ir":
		return printIR(args[1:])
	case "build":
		return buildStory(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		if looksLikePathCandidate(args[0]) {
			return runStory(args)
		}
		return misuse(fmt.Sprintf("unknown command %q", args[0]))
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: storyteller <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  run [file.story]     compile and tell a story (default when given a path)")
	fmt.Fprintln(w, "  check [file.story]   report problems without running")
	fmt.Fprintln(w, "  ir [file.story]      print the lowered instruction listing")
	fmt.Fprintln(w, "  build [flags] [file.story]")
	fmt.Fprintln(w, "                       emit Go source for a story")
	fmt.Fprintln(w, "  repl                 tell a story one paragraph at a time")
	fmt.Fprintln(w, "  version              print the tool version")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Without a file argument, the entry of the nearest %s is used.\n", driver.ManifestFileName)
}

func misuse(detail string) int {
	fmt.Fprintln(stderr, diagnostics.EnigmaticWhispers(detail))
	return 1
}

// target is the story selected by a command line, together with the manifest
// that governs it, if one was found.
type target struct {
	entry    string
	manifest *driver.Manifest
}

func resolveTarget(command string, args []string) (*target, int) {
	if len(args) > 1 {
		return nil, misuse(fmt.Sprintf("unexpected arguments: %s", strings.Join(args[1:], " ")))
	}

	if len(args) == 0 {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, errManifestNotFound) {
				return nil, misuse(fmt.Sprintf("storyteller %s requires a story file (%s not found)", command, driver.ManifestFileName))
			}
			fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
			return nil, 1
		}
		if manifest.Entry == "" {
			fmt.Fprintf(stderr, "manifest %s does not name an entry story\n", manifest.Path)
			return nil, 1
		}
		return &target{entry: manifest.Entry, manifest: manifest}, 0
	}

	entry := strings.TrimSpace(args[0])
	if entry == "" {
		return nil, misuse(fmt.Sprintf("storyteller %s requires a story file", command))
	}
	t := &target{entry: entry}
	if abs, err := filepath.Abs(entry); err == nil {
		manifest, err := loadManifestFrom(filepath.Dir(abs))
		switch {
		case err == nil:
			t.manifest = manifest
		case errors.Is(err, errManifestNotFound):
		default:
			fmt.Fprintf(stderr, "warning: unable to load manifest (%v); using built-in keywords\n", err)
		}
	}
	return t, 0
}

// compileTarget loads and compiles the target story. Diagnostics are printed
// to stderr and reported through ok; the compilation is returned either way.
func compileTarget(t *target) (comp *driver.Compilation, ok bool) {
	opts, err := t.manifest.Options()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, false
	}
	comp, err = driver.NewLoader(opts).Load(t.entry)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, false
	}
	if len(comp.Diagnostics) > 0 {
		fmt.Fprintln(stderr, comp.Diagnostics.Error())
		return comp, false
	}
	return comp, true
}

func runStory(args []string) int {
	t, code := resolveTarget("run", args)
	if t == nil {
		return code
	}
	comp, ok := compileTarget(t)
	if !ok {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interp := interpreter.New(stdin, stdout)
	if err := interp.Run(ctx, comp.Program); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func checkStory(args []string) int {
	t, code := resolveTarget("check", args)
	if t == nil {
		return code
	}
	comp, ok := compileTarget(t)
	if !ok {
		return 1
	}
	fmt.Fprintf(stdout, "%s: %d paragraphs, %d variables, no problems found\n",
		t.entry, len(comp.Tree.Blocks), comp.Variables.Len())
	return 0
}

func printIR(args []string) int {
	t, code := resolveTarget("ir", args)
	if t == nil {
		return code
	}
	comp, ok := compileTarget(t)
	if !ok {
		return 1
	}
	fmt.Fprint(stdout, comp.Program.String())
	return 0
}

func buildStory(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outDir := fs.String("o", "", "output directory for generated Go files")
	pkgName := fs.String("pkg", "", "Go package name (default story, or main with -main)")
	emitMain := fs.Bool("main", false, "emit a main package that reads stdin and writes stdout")
	modulePath := fs.String("module", "", "write a go.mod declaring this module path")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: storyteller build [flags] [file.story]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	t, code := resolveTarget("build", fs.Args())
	if t == nil {
		return code
	}
	if m := t.manifest; m != nil {
		if *outDir == "" {
			*outDir = m.Build.Output
		}
		if *pkgName == "" {
			*pkgName = m.Build.Package
		}
		if !*emitMain {
			*emitMain = m.Build.Main
		}
	}
	if *outDir == "" {
		*outDir = driver.StoryName(t.entry)
	}

	comp, ok := compileTarget(t)
	if !ok {
		return 1
	}
	result, err := compiler.New(compiler.Options{
		PackageName: *pkgName,
		EmitMain:    *emitMain,
		ModulePath:  *modulePath,
	}).Compile(comp.Program, comp.Variables)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", warning)
	}
	if err := result.Write(*outDir); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d files to %s\n", len(result.Files), *outDir)
	return 0
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.Contains(arg, "/") || strings.Contains(arg, "\\") {
		return true
	}
	if filepath.Ext(arg) == ".story" {
		return true
	}
	return strings.HasPrefix(arg, ".")
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := findManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", driver.ManifestFileName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

func resolveStorytellerHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("STORYTELLER_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve STORYTELLER_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".storyteller"), nil
}
