// Package fixtures loads story programs paired with expected transcripts.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Story is one fixture: a .story program and the sibling .txt transcript
// holding its "Input:" and "Output:" sections.
type Story struct {
	Name   string
	Path   string
	Input  string
	Output string
}

// Load returns every story fixture under dir, sorted by name.
func Load(dir string) ([]Story, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.story"))
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	sort.Strings(paths)
	stories := make([]Story, 0, len(paths))
	for _, path := range paths {
		transcript := strings.TrimSuffix(path, ".story") + ".txt"
		contents, err := os.ReadFile(transcript)
		if err != nil {
			return nil, fmt.Errorf("fixtures: read %s: %w", transcript, err)
		}
		input, output := ParseTranscript(string(contents))
		stories = append(stories, Story{
			Name:   strings.TrimSuffix(filepath.Base(path), ".story"),
			Path:   path,
			Input:  input,
			Output: output,
		})
	}
	return stories, nil
}

// ParseTranscript splits a transcript into its input and output sections.
// Lines before the first marker are ignored and a single trailing newline at
// the end of the file is not part of either section.
func ParseTranscript(contents string) (input, output string) {
	var (
		in, out []string
		section *[]string
	)
	for _, line := range strings.Split(strings.TrimSuffix(contents, "\n"), "\n") {
		switch line {
		case "Input:":
			section = &in
		case "Output:":
			section = &out
		default:
			if section != nil {
				*section = append(*section, line)
			}
		}
	}
	return strings.Join(in, "\n"), strings.Join(out, "\n")
}
