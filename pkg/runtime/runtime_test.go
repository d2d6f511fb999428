package runtime

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

func TestEnvironmentCopiesValues(t *testing.T) {
	env := NewEnvironment()
	v := big.NewInt(7)
	env.Define("bob", v)
	v.SetInt64(99)
	got, ok := env.Lookup("bob")
	if !ok || got.Int64() != 7 {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	got.SetInt64(1)
	again, _ := env.Lookup("bob")
	if again.Int64() != 7 {
		t.Fatalf("Lookup exposed stored value")
	}
	if _, ok := env.Lookup("alice"); ok {
		t.Fatalf("expected missing binding")
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	env := NewEnvironment()
	env.Define("zed", big.NewInt(1))
	env.Define("amy", big.NewInt(2))
	if got := env.Keys(); !reflect.DeepEqual(got, []ast.Variable{"amy", "zed"}) {
		t.Fatalf("Keys = %v", got)
	}
	snap := env.Snapshot()
	snap["amy"].SetInt64(50)
	if v, _ := env.Lookup("amy"); v.Int64() != 2 {
		t.Fatalf("Snapshot aliased environment values")
	}
}

func TestPackText(t *testing.T) {
	if got := PackText("hi").String(); got != "104105" {
		t.Fatalf("PackText(hi) = %s", got)
	}
	if got := PackText("").Sign(); got != 0 {
		t.Fatalf("PackText of empty string should be zero")
	}
	if got := PackText("é").Int64(); got != 233 {
		t.Fatalf("PackText(é) = %d", got)
	}
	if got := PackText("€").Int64(); got != '?' {
		t.Fatalf("expected replacement for wide character, got %d", got)
	}
}

func TestUnpackText(t *testing.T) {
	n, _ := new(big.Int).SetString("72101108108111", 10)
	if got := UnpackText(n); got != "Hello" {
		t.Fatalf("UnpackText = %q", got)
	}
	if got := UnpackText(big.NewInt(0)); got != "" {
		t.Fatalf("UnpackText(0) = %q", got)
	}
	for _, s := range []string{"a", "Storyteller!", "tab\there"} {
		if got := UnpackText(PackText(s)); got != s {
			t.Fatalf("round trip %q -> %q", s, got)
		}
	}
}
