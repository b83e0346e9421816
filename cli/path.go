package cli

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ardnew/dice/pkg"
)

// baseConfig is the base name of the configuration file and of the
// optional namespace within it.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// userDir returns the program's subdirectory of the directory reported by
// base, falling back to ~/fallback and then to the working directory.
func userDir(base func() (string, error), fallback string) func() string {
	return func() string {
		dir, err := base()
		if err != nil {
			if home, herr := os.UserHomeDir(); herr == nil {
				dir = filepath.Join(home, fallback)
			} else if dir, err = os.Getwd(); err != nil {
				dir = "."
			}
		}

		return filepath.Join(dir, pkg.Name)
	}
}

var (
	// configDir returns the configuration directory path.
	configDir = sync.OnceValue(userDir(os.UserConfigDir, ".config"))

	// cacheDir returns the directory for the REPL history and profiles.
	cacheDir = sync.OnceValue(userDir(os.UserCacheDir, ".cache"))
)

// configPath joins the configuration directory with elem.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
