package fixtures

import "testing"

func TestParseTranscript(t *testing.T) {
	input, output := ParseTranscript("ignored\nInput:\nhi\nthere\nOutput:\nhi\n")
	if input != "hi\nthere" || output != "hi" {
		t.Fatalf("got %q / %q", input, output)
	}
	input, output = ParseTranscript("Input:\nOutput:\n153\n")
	if input != "" || output != "153" {
		t.Fatalf("got %q / %q", input, output)
	}
}

func TestLoadRepositoryFixtures(t *testing.T) {
	stories, err := Load("../../testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(stories) == 0 {
		t.Fatalf("expected fixtures")
	}
	for i := 1; i < len(stories); i++ {
		if stories[i-1].Name >= stories[i].Name {
			t.Fatalf("fixtures not sorted: %s before %s", stories[i-1].Name, stories[i].Name)
		}
	}
}
