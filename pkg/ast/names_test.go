package ast

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want Variable
	}{
		{"Bob", "bob"},
		{"the  Old   King", "old king"},
		{"the", "the"},
		{"a cat", "cat"},
		{"An", "an"},
		{"bob's", "bob"},
		{"the knights'", "knights"},
		{"Ann’s", "ann"},
		{"'s", "'s"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValueNormalized(t *testing.T) {
	if got := Value("The Dragon's").Normalized(); got != "dragon" {
		t.Fatalf("Normalized = %q", got)
	}
}

func TestConstructorsSetNodeType(t *testing.T) {
	nodes := []struct {
		node Node
		want NodeType
	}{
		{NewAssignStatement("a", "b"), NodeAssignStatement},
		{NewIfStatement(NewCondition(EqualTo, "a", "b"), NewExitStatement()), NodeIfStatement},
		{NewComment(), NodeComment},
		{NewProgram(nil), NodeProgram},
	}
	for _, tc := range nodes {
		if tc.node.NodeType() != tc.want {
			t.Fatalf("NodeType = %s, want %s", tc.node.NodeType(), tc.want)
		}
	}
}
