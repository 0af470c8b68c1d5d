package buildinfo

import (
	"strings"
	"testing"
)

func TestResolvedPrefersLdflags(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := Resolved(); got != "v1.2.3" {
		t.Errorf("Resolved() = %q, want v1.2.3", got)
	}
}

func TestTemplate(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v0.1.0", "abc123", "2024-01-01"
	got := Template()
	for _, want := range []string{"{{.Name}} version v0.1.0", "commit: abc123", "built: 2024-01-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}
