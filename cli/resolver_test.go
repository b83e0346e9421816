package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestResolve_Flat(t *testing.T) {
	doc := `
log-level: debug
log_format: text
log-caller: true
compile-indent: 4
check-file:
  - a.txt
  - b.txt
`

	r, err := resolve(baseConfig)(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log-caller", true},
		{"compile-indent", "4"},
		{"log-time-layout", nil},
	}

	for _, tt := range tests {
		if got := resolveFlag(t, r, tt.flag); got != tt.want {
			t.Errorf("%s = %#v, want %#v", tt.flag, got, tt.want)
		}
	}

	files, ok := resolveFlag(t, r, "check-file").([]any)
	if !ok || len(files) != 2 || files[0] != "a.txt" {
		t.Errorf("check-file = %#v", resolveFlag(t, r, "check-file"))
	}
}

func TestResolve_Nested(t *testing.T) {
	doc := `
log:
  level: warn
  time_layout: Kitchen
pprof:
  mode: cpu
`

	r, err := resolve(baseConfig)(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if got := resolveFlag(t, r, "log-level"); got != "warn" {
		t.Errorf("log-level = %#v", got)
	}

	if got := resolveFlag(t, r, "log-time-layout"); got != "Kitchen" {
		t.Errorf("log-time-layout = %#v", got)
	}

	if got := resolveFlag(t, r, "pprof-mode"); got != "cpu" {
		t.Errorf("pprof-mode = %#v", got)
	}
}

func TestResolve_Namespace(t *testing.T) {
	doc := `
config:
  log-level: error
other:
  log-level: debug
`

	r, err := resolve(baseConfig)(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if got := resolveFlag(t, r, "log-level"); got != "error" {
		t.Errorf("log-level = %#v, want error", got)
	}
}

func TestResolve_EmptyAndInvalid(t *testing.T) {
	for _, doc := range []string{"", "{ unterminated: [", "- just\n- a\n- list\n"} {
		r, err := resolve(baseConfig)(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("resolve(%q) failed: %v", doc, err)
		}

		if got := resolveFlag(t, r, "log-level"); got != nil {
			t.Errorf("resolve(%q): log-level = %#v, want nil", doc, got)
		}
	}
}
