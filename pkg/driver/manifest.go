package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhruvjimulia-sys/storyteller/pkg/keywords"
)

// ManifestFileName is the project file looked up by the CLI.
const ManifestFileName = "story.yml"

// Manifest represents the parsed contents of story.yml.
type Manifest struct {
	Path     string
	Name     string
	Entry    string
	Keywords map[string][]string
	Build    BuildSpec
}

// BuildSpec configures Go source emission.
type BuildSpec struct {
	Package string
	Output  string
	Main    bool
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses story.yml from disk, returning a validated manifest.
// Relative entry and output paths are resolved against the manifest's
// directory.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Options builds compile options with the manifest's keyword extensions
// applied on top of the built-in vocabularies.
func (m *Manifest) Options() (Options, error) {
	kw := keywords.Default()
	if m == nil || len(m.Keywords) == 0 {
		return Options{Keywords: kw}, nil
	}
	if err := kw.ExtendAll(m.Keywords); err != nil {
		return Options{}, fmt.Errorf("manifest: %w", err)
	}
	return Options{Keywords: kw}, nil
}

var packageNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry != "" && filepath.Ext(m.Entry) != ".story" {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a .story file", filepath.Base(m.Entry)))
	}

	categories := make([]string, 0, len(m.Keywords))
	for name := range m.Keywords {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	for _, name := range categories {
		if !keywords.IsCategory(keywords.Category(name)) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("keywords.%s is not a known category", name))
			continue
		}
		for i, phrase := range m.Keywords[name] {
			if keywords.ParsePhrase(phrase) == nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("keywords.%s[%d] must contain a word", name, i))
			}
		}
	}

	if m.Build.Package != "" && !packageNamePattern.MatchString(m.Build.Package) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("build.package %q is not a valid Go package name", m.Build.Package))
	}
	if m.Build.Main && m.Build.Package != "" && m.Build.Package != "main" {
		errs.Issues = append(errs.Issues, "build.main requires build.package to be main or unset")
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name     string     `yaml:"name"`
	Entry    string     `yaml:"entry"`
	Keywords keywordMap `yaml:"keywords"`
	Build    buildYAML  `yaml:"build"`
}

type buildYAML struct {
	Package string `yaml:"package"`
	Output  string `yaml:"output"`
	Main    bool   `yaml:"main"`
}

type keywordMap map[string]stringList

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	dir := filepath.Dir(path)
	result := &Manifest{
		Path:     path,
		Name:     strings.TrimSpace(mf.Name),
		Entry:    resolvePath(dir, mf.Entry),
		Keywords: make(map[string][]string, len(mf.Keywords)),
		Build: BuildSpec{
			Package: strings.TrimSpace(mf.Build.Package),
			Output:  resolvePath(dir, mf.Build.Output),
			Main:    mf.Build.Main,
		},
	}
	for name, phrases := range mf.Keywords {
		result.Keywords[name] = phrases.Clone()
	}
	return result
}

func resolvePath(dir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (km *keywordMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		*km = make(keywordMap)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: keywords must be a mapping")
	}
	result := make(keywordMap, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: keyword categories must be non-empty")
		}
		var phrases stringList
		if err := phrases.UnmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("manifest: keywords %q: %w", key, err)
		}
		result[key] = append(result[key], phrases...)
	}
	*km = result
	return nil
}
