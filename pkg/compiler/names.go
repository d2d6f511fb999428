package compiler

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

var goKeywords = map[string]struct{}{
	"break": {}, "default": {}, "func": {}, "interface": {}, "select": {},
	"case": {}, "defer": {}, "go": {}, "map": {}, "struct": {},
	"chan": {}, "else": {}, "goto": {}, "package": {}, "switch": {},
	"const": {}, "fallthrough": {}, "if": {}, "range": {}, "type": {},
	"continue": {}, "for": {}, "import": {}, "return": {}, "var": {},
}

var packageNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func sanitizeIdent(name string) string {
	out := identChars(name)
	if _, ok := goKeywords[out]; ok {
		return "_" + out
	}
	return out
}

// identChars replaces every rune that cannot appear in a Go identifier.
func identChars(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		if r < unicode.MaxASCII && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if i == 0 && unicode.IsDigit(r) {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// variableIdent maps a story variable to its Go identifier stem. The prefix
// keeps the result clear of Go keywords.
func variableIdent(name ast.Variable) string {
	return "v_" + identChars(string(name))
}

func labelIdent(label int) string {
	return "label_" + strconv.Itoa(label)
}

type nameMangler struct {
	seen map[string]int
	used map[string]struct{}
}

func newNameMangler() *nameMangler {
	return &nameMangler{seen: make(map[string]int), used: make(map[string]struct{})}
}

// unique returns base, or base with a numeric suffix when base (or an earlier
// suffixed form) is already taken.
func (m *nameMangler) unique(base string) string {
	if m == nil {
		return base
	}
	if base == "" {
		base = "_"
	}
	for n := m.seen[base]; ; n++ {
		name := base
		if n > 0 {
			name = base + "_" + strconv.Itoa(n)
		}
		if _, taken := m.used[name]; taken {
			continue
		}
		m.seen[base] = n + 1
		m.used[name] = struct{}{}
		return name
	}
}
