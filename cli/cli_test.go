package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/dice/cli/cmd"
	"github.com/ardnew/dice/lang"
)

// TestRun exercises the whole command line. It is a single test because the
// configuration and cache directories are resolved once per process.
func TestRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }
	ctx := context.Background()

	if err := Run(ctx, exit, "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	if _, err := os.Stat(configDir()); err != nil {
		t.Errorf("config directory not created: %v", err)
	}

	if err := Run(ctx, exit, "d6", "3"); err != nil {
		t.Errorf("default roll failed: %v", err)
	}

	if err := Run(ctx, exit, "roll", "d6", "7"); !errors.Is(err, lang.ErrInvalidRoll) {
		t.Errorf("roll error = %v, want ErrInvalidRoll", err)
	}

	if err := Run(ctx, exit, "check", "d6", "d"); !errors.Is(err, cmd.ErrInvalidInput) {
		t.Errorf("check error = %v, want ErrInvalidInput", err)
	}

	if err := Run(ctx, exit, "--log-level=warn", "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(configPath(baseConfig + ".yaml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if len(data) == 0 {
		t.Error("config file is empty")
	}

	// The written config must load back.
	if err := Run(ctx, exit, "list", "2d20kH+4"); err != nil {
		t.Errorf("list with config failed: %v", err)
	}
}
