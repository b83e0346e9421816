package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/dice/lang"
	"github.com/ardnew/dice/pkg"
)

func run(t *testing.T, fn func(context.Context) error) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	err := fn(WithOutput(context.Background(), &buf))

	return buf.String(), err
}

func TestCompile_Formats(t *testing.T) {
	out, err := run(t, (&Compile{Format: "native", Notation: "2d20kH+4"}).Run)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if out != "2d20kH+4\n" {
		t.Errorf("native = %q", out)
	}

	out, err = run(t, (&Compile{Format: "json", Notation: "d6+1"}).Run)
	if err != nil {
		t.Fatalf("compile json failed: %v", err)
	}

	if !strings.Contains(out, `"notation":"d6+1"`) {
		t.Errorf("json = %q", out)
	}

	out, err = run(t, (&Compile{Format: "yaml", Indent: 2, Notation: "d6+1"}).Run)
	if err != nil {
		t.Fatalf("compile yaml failed: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("yaml output does not parse: %v\n%s", err, out)
	}

	if doc["notation"] != "d6+1" {
		t.Errorf("yaml notation = %v", doc["notation"])
	}
}

func TestCompile_Invalid(t *testing.T) {
	_, err := run(t, (&Compile{Format: "native", Notation: "2d6+"}).Run)
	if !errors.Is(err, lang.ErrInvalidNotation) {
		t.Errorf("error = %v, want ErrInvalidNotation", err)
	}
}

func TestList(t *testing.T) {
	out, err := run(t, (&List{Notation: "2d20kH+d4+d20"}).Run)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if out != "d20 d20 d4 d20\n" {
		t.Errorf("list = %q", out)
	}

	out, err = run(t, (&List{Count: true, Notation: "2d20kH+d4+d20"}).Run)
	if err != nil {
		t.Fatalf("list --count failed: %v", err)
	}

	if out != "3d20\n1d4\n" {
		t.Errorf("list --count = %q", out)
	}
}

func TestCheck_Arguments(t *testing.T) {
	out, err := run(t, (&Check{Notation: []string{"d6", "2d6+"}}).Run)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out)
	}

	if lines[0] != "ok\td6" {
		t.Errorf("line 0 = %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "invalid\t2d6+\t") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestCheck_Files(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rolls.txt")

	content := "# attack rolls\n2d20kH+4\n\nd8+d6\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(path, link); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, (&Check{File: []string{path, link, path}}).Run)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}

	if want := "ok\t2d20kH+4\nok\td8+d6\n"; out != want {
		t.Errorf("check = %q, want %q", out, want)
	}

	_, err = run(t, (&Check{File: []string{filepath.Join(dir, "missing")}}).Run)
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("missing file error = %v, want ErrReadInput", err)
	}
}

func TestCheck_Quiet(t *testing.T) {
	out, err := run(t, (&Check{Quiet: true, Notation: []string{"d6", "d20"}}).Run)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if out != "" {
		t.Errorf("quiet output = %q", out)
	}
}

func TestEachLine(t *testing.T) {
	var got []int

	err := eachLine(strings.NewReader("d6\n  # c\n\n d8 \n"), func(num int, line string) error {
		got = append(got, num)

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("line numbers = %v, want [1 4]", got)
	}
}

func TestRoll(t *testing.T) {
	tests := []struct {
		name    string
		roll    Roll
		want    string
		wantErr error
	}{
		{
			name: "advantage",
			roll: Roll{Notation: "2d20kH+4", Outcomes: []int{8, 15}},
			want: "19\n",
		},
		{
			name: "expect pass",
			roll: Roll{Expect: "total >= 15", Notation: "2d20kH+4", Outcomes: []int{8, 15}},
			want: "19\n",
		},
		{
			name:    "expect fail",
			roll:    Roll{Expect: "total >= 20", Notation: "2d20kH+4", Outcomes: []int{8, 15}},
			want:    "19\n",
			wantErr: ErrExpectationFailed,
		},
		{
			name:    "bad expectation",
			roll:    Roll{Expect: "total +", Notation: "d6", Outcomes: []int{1}},
			wantErr: lang.ErrExpectation,
		},
		{
			name:    "too few outcomes",
			roll:    Roll{Notation: "2d6", Outcomes: []int{1}},
			wantErr: lang.ErrLengthMismatch,
		},
		{
			name: "no dice",
			roll: Roll{Notation: "7+3"},
			want: "10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.roll.Run)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("roll failed: %v", err)
			}

			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, Version{}.Run)
	if err != nil {
		t.Fatal(err)
	}

	if out != pkg.String()+"\n" {
		t.Errorf("version = %q", out)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var cli struct {
		Level string `default:"info"`
		Init  Init   `cmd:""`
	}

	parser, err := kong.New(&cli,
		kong.Name("dice"),
		kong.Vars{ConfigIdentifier: path},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse([]string{"init"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), ktx)

	if err := cli.Init.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if doc["level"] != "info" {
		t.Errorf("level = %v in\n%s", doc["level"], data)
	}

	if _, ok := doc["help"]; ok {
		t.Error("help flag written to config")
	}

	if err := cli.Init.Run(ctx); !errors.Is(err, ErrWriteConfig) {
		t.Errorf("second init error = %v, want ErrWriteConfig", err)
	}

	cli.Init.Force = true
	if err := cli.Init.Run(ctx); err != nil {
		t.Errorf("forced init failed: %v", err)
	}
}

func TestCommands_BypassCache(t *testing.T) {
	lang.ClearCache()
	t.Cleanup(lang.ClearCache)

	path := filepath.Join(t.TempDir(), "rolls.txt")
	if err := os.WriteFile(path, []byte("d4\nd6+\n3d8\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _ = run(t, (&Check{File: []string{path}, Notation: []string{"d10"}}).Run)
	_, _ = run(t, (&Roll{Notation: "d12", Outcomes: []int{5}}).Run)
	_, _ = run(t, (&List{Notation: "2d20"}).Run)
	_, _ = run(t, (&Compile{Format: "native", Notation: "d100"}).Run)

	if n := lang.CacheLen(); n != 0 {
		t.Errorf("compile cache holds %d entries, want 0", n)
	}
}
