package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dice/lang"
	"github.com/ardnew/dice/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// langOptions returns the compile options shared by all commands. Each
// command compiles a notation once, so the process-wide compile cache is
// bypassed.
func langOptions() []lang.Option {
	return []lang.Option{lang.WithLogger(log.Default()), lang.WithCache(false)}
}

// source is a named input stream.
type source struct {
	name string
	io.Reader
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSources opens each of the given paths once.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader,
// placed last so it reads after all regular files. Paths that cannot be
// opened are returned in failed.
func openSources(paths []string) (srcs []source, failed []string) {
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, path := range paths {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, dup, ok := openUniqueFile(path, seen)
		if dup {
			continue
		}

		if !ok {
			failed = append(failed, path)

			continue
		}

		srcs = append(srcs, source{name: path, Reader: reader})
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		srcs = append(srcs, source{name: stdinSource, Reader: os.Stdin})
	}

	return srcs, failed
}

// closeSources closes every regular file in srcs.
func closeSources(srcs []source) {
	for _, src := range srcs {
		if f, ok := src.Reader.(*os.File); ok && f != os.Stdin {
			_ = f.Close()
		}
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (r io.Reader, dup, ok bool) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, false
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false, false
	}

	if _, exists := seen[key]; exists {
		return nil, true, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false, false
	}

	return file, false, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
